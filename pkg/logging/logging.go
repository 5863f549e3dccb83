package logging

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// New builds a JSON logger writing to stdout. When file is set, records are
// also written to a rotating file.
func New(level, file string) *zap.SugaredLogger {
	lvl := zap.NewAtomicLevel()
	switch strings.ToLower(level) {
	case "debug":
		lvl.SetLevel(zapcore.DebugLevel)
	case "warn":
		lvl.SetLevel(zapcore.WarnLevel)
	case "error":
		lvl.SetLevel(zapcore.ErrorLevel)
	default:
		lvl.SetLevel(zapcore.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(os.Stdout), lvl),
	}
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), lvl))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger.Sugar()
}

func IntoContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*zap.SugaredLogger); ok {
			return l
		}
	}
	return zap.S()
}
