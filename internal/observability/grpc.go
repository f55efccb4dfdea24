package observability

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// readMethods are engine calls that never change the game.
var readMethods = map[string]bool{
	"GetGame": true,
	"Roll":    true,
	"Check":   true,
	"Watch":   true,
}

// UnaryServerInterceptor logs every unary call with its method, kind, status
// code and duration. Successful reads log at debug, successful commands at
// info, client faults at warn and server faults at error.
func UnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	logger = logger.Named("rpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		method := path.Base(info.FullMethod)
		kind := "command"
		if readMethods[method] {
			kind = "read"
		}
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("kind", kind),
			zap.String("code", code.String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if ce := logger.Check(callLevel(kind, code), "rpc"); ce != nil {
			ce.Write(fields...)
		}
		return resp, err
	}
}

func callLevel(kind string, code codes.Code) zapcore.Level {
	switch code {
	case codes.OK:
		if kind == "read" {
			return zapcore.DebugLevel
		}
		return zapcore.InfoLevel
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
