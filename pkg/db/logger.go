package db

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/printshop/pkg/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapLogger sends gorm's messages to the zap logger carried by the statement
// context, so SQL errors and slow queries land in the same sinks as the rest
// of the service.
type zapLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newZapLogger(level logger.LogLevel) logger.Interface {
	return &zapLogger{level: level, slow: slowQueryThreshold}
}

func (z *zapLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *z
	c.level = level
	return &c
}

func (z *zapLogger) from(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.FromContext(ctx).With("component", "gorm")
}

func (z *zapLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Info {
		z.from(ctx).Infof(msg, args...)
	}
}

func (z *zapLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Warn {
		z.from(ctx).Warnf(msg, args...)
	}
}

func (z *zapLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Error {
		z.from(ctx).Errorf(msg, args...)
	}
}

func (z *zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if z.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && z.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		z.from(ctx).Errorw("gorm_query_error", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case z.slow > 0 && elapsed > z.slow && z.level >= logger.Warn:
		sql, rows := fc()
		z.from(ctx).Warnw("gorm_slow_query", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", z.slow)
	case z.level >= logger.Info:
		sql, rows := fc()
		z.from(ctx).Debugw("gorm_query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
