package repository

import (
	"time"

	"github.com/wb-go/wbf/retry"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

// defaultStrategy is used for reads and for writes that are safe to repeat.
func defaultStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}
