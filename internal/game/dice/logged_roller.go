package dice

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Roller rolls expressions against a Source and records every roll at debug
// level. The encounter engine and roster spawning share one Roller so the log
// holds the full audit trail of an encounter.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller returns a Roller over src.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger.Named("dice")}
}

// Roll evaluates a parsed expression.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll", zap.Object("roll", result))
	return result, nil
}

// RollExpr parses expr and rolls it.
//
// Postcondition: Returns a RollResult or the parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		r.logger.Debug("rejected dice expression", zap.String("expression", expr), zap.Error(err))
		return RollResult{}, err
	}
	return r.Roll(e)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r RollResult) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("expression", r.Expression)
	enc.AddInt("rolled", len(r.Dice))
	if err := enc.AddArray("kept", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, k := range r.Kept() {
			arr.AppendInt(k)
		}
		return nil
	})); err != nil {
		return err
	}
	enc.AddInt("modifier", r.Modifier)
	enc.AddInt("value", r.Value())
	return nil
}
