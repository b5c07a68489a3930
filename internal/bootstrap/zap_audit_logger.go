package bootstrap

import (
	"context"

	"go-tracking/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit entries as structured log lines on the
// "audit" logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &ZapAuditLogger{logger: l.Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := make([]zap.Field, 0, len(entry.Meta)+3)
	fields = append(fields, zap.String("action", entry.Action))
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	for k, v := range entry.Meta {
		fields = append(fields, zap.Any(k, v))
	}
	l.logger.Info(entry.Message, fields...)
}
