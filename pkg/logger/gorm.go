package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query log through the global slog logger so SQL
// shows up in the same stream, with the same format, as everything else.
type GormLogger struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: level, slow: slowThreshold}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		Info(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		Error(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}

	switch {
	case err != nil && g.level >= gormlogger.Error:
		Error("query failed", append(attrs, slog.String("error", err.Error()))...)
	case g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn:
		Warn("slow query", attrs...)
	case g.level >= gormlogger.Info:
		Info("query", attrs...)
	}
}
