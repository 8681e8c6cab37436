package tracing

import (
	"context"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime    = "exe_time"
	InnerError       = "inner_error"
	CatalogUrl       = "catalog_url"
	CatalogStatus    = "catalog_status"
	CatalogAttempt   = "catalog_attempt"
	CatalogBackoff   = "catalog_backoff"
	ProxyUrl         = "proxy_url"
	ProxyRes         = "proxy_res"
	RunId            = "run_id"
	ModelId          = "model_id"
	ModelVendor      = "model_vendor"
	SkipReason       = "skip_reason"
	QuadrantKey      = "quadrant"
	RecordsFetched   = "records_fetched"
	RecordsFiltered  = "records_filtered"
	RecordsSkipped   = "records_skipped"
	RecordsReported  = "records_reported"
	FreeExcluded     = "free_excluded"
	SnapshotPath     = "snapshot_path"
	ArtifactPath     = "artifact_path"
	ContextThreshold = "context_threshold"
	PriceThreshold   = "price_threshold"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.InfoContext(ctx, "Initializing logger")
	return &Logger{log: logger, ctx: ctx}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
