package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor(t *testing.T) {
	tests := []struct {
		name   string
		method string
		err    error
		level  zapcore.Level
		kind   string
	}{
		{"read ok", "/initiative.engine.v1.Engine/GetGame", nil, zapcore.DebugLevel, "read"},
		{"command ok", "/initiative.engine.v1.Engine/NextTurn", nil, zapcore.InfoLevel, "command"},
		{"client fault", "/initiative.engine.v1.Engine/Undo", status.Error(codes.FailedPrecondition, "nothing to undo"), zapcore.WarnLevel, "command"},
		{"server fault", "/initiative.engine.v1.Engine/Damage", status.Error(codes.Internal, "boom"), zapcore.ErrorLevel, "command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			intercept := UnaryServerInterceptor(zap.New(core))

			resp, err := intercept(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: tt.method},
				func(context.Context, any) (any, error) { return "resp", tt.err })
			assert.Equal(t, "resp", resp)
			assert.Equal(t, tt.err, err)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.kind, fields["kind"])
			assert.Equal(t, status.Code(tt.err).String(), fields["code"])
		})
	}
}

func TestUnaryServerInterceptor_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	intercept := UnaryServerInterceptor(zap.New(core))
	_, _ = intercept(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/initiative.engine.v1.Engine/Roll"},
		func(context.Context, any) (any, error) { return nil, nil })
	assert.Zero(t, logs.Len())
}
