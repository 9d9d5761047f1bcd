package chainstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrIsolationLevelTooWeak  = errors.New("transaction isolation level is weaker than required")
	ErrUnknownIsolationLevel  = errors.New("unknown transaction isolation level")
	ErrFailedToCheckIsolation = errors.New("failed to check transaction isolation level")
)

const DefaultRequiredIsolationLevel = "repeatable read"

var isolationLevelRank = map[string]int{
	"read uncommitted": 0,
	"read committed":   1,
	"repeatable read":  2,
	"serializable":     3,
}

type IsolationLevelSource interface {
	IsolationLevel(ctx context.Context) (string, error)
}

// CheckIsolationLevel compares the isolation level the store's transactions run at with the required one.
// Concurrent handlers rely on at least snapshot isolation to avoid write skew on shared transaction rows. A
// weaker level is logged as a warning, or returned as ErrIsolationLevelTooWeak when enforce is set.
func CheckIsolationLevel(ctx context.Context, logger *slog.Logger, s IsolationLevelSource, required string, enforce bool) error {
	requiredRank, found := isolationLevelRank[normalizeIsolationLevel(required)]
	if !found {
		return errors.Join(ErrUnknownIsolationLevel, fmt.Errorf("required level %q", required))
	}

	actual, err := s.IsolationLevel(ctx)
	if err != nil {
		return errors.Join(ErrFailedToCheckIsolation, err)
	}

	actualRank, found := isolationLevelRank[normalizeIsolationLevel(actual)]
	if found && actualRank >= requiredRank {
		return nil
	}

	if enforce {
		return errors.Join(ErrIsolationLevelTooWeak, fmt.Errorf("actual %q, required %q", actual, required))
	}

	logger.Warn("Transaction isolation level is weaker than required, concurrent handlers may produce write skew",
		slog.String("actual", actual),
		slog.String("required", required),
	)

	return nil
}

func normalizeIsolationLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
