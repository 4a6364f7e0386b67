package docgen

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrExhausted = errors.New("all sources failed")

// Attempt is one candidate in an ordered fallback chain.
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// FirstOf runs the attempts in order, each exactly once, and returns the first success together
// with the name of the attempt that produced it. When every attempt fails the returned error
// wraps ErrExhausted and each individual failure.
func FirstOf[T any](ctx context.Context, attempts ...Attempt[T]) (T, string, error) {
	var zero T
	errs := []error{ErrExhausted}
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		value, err := a.Run(ctx)
		if err == nil {
			return value, a.Name, nil
		}
		log.Debugf("Source %s failed: %v", a.Name, err)
		errs = append(errs, fmt.Errorf("%s: %w", a.Name, err))
	}
	return zero, "", errors.Join(errs...)
}
