package cmd

import (
	"context"

	"go.uber.org/zap"

	"tasnim.dev/lbcheck/internal/inventory"
	"tasnim.dev/lbcheck/internal/logger"
)

func validateDebug(level int) error {
	if level < 0 || level > logger.MaxVerbosity {
		return configErrorf("--debug must be between 0 and %d, got %d", logger.MaxVerbosity, level)
	}
	return nil
}

func logFetchError(log *zap.Logger, err error) {
	fields := []zap.Field{zap.Error(err)}
	if code := inventory.APIErrorCode(err); code != "" {
		fields = append(fields, zap.String("code", code))
	}
	log.Error("fetching inventory failed", fields...)
}

type accountLooker interface {
	AccountID(ctx context.Context) (string, error)
}

// accountID returns the caller's account for log context. A failed lookup
// is logged and does not stop the run.
func accountID(ctx context.Context, log *zap.Logger, src accountLooker) string {
	id, err := src.AccountID(ctx)
	if err != nil {
		log.Debug("account lookup failed", zap.Error(err))
		return ""
	}
	return id
}
