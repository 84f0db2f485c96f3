package resultstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fmf-tmt/tmtcore/internal/tmtlog"
	"gorm.io/gorm/logger"
)

// slogGormLogger routes GORM's logging through log/slog, same as every other package in this
// module; SQL statements are only emitted at TRACE level so they don't clutter normal output.
type slogGormLogger struct{}

func newSlogGormLogger() logger.Interface {
	return &slogGormLogger{}
}

func (l *slogGormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...any) {
	slog.InfoContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	slog.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...any) {
	slog.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if !slog.Default().Enabled(ctx, tmtlog.LevelTrace.Level()) {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []slog.Attr{slog.Duration("elapsed", elapsed), slog.String("sql", sql), slog.Int64("rows", rows)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		slog.LogAttrs(ctx, tmtlog.LevelTrace.Level(), "SQL query failed", attrs...)
		return
	}
	slog.LogAttrs(ctx, tmtlog.LevelTrace.Level(), "SQL query", attrs...)
}
