package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUndelivered is returned by Deliver when no step succeeded.
var ErrUndelivered = errors.New("menu was not delivered")

// Step is one way of presenting a view.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
}

// Deliver runs steps in order until one succeeds and returns its name.
// Failed steps are logged. When every step fails the joined step errors are
// returned wrapped in ErrUndelivered.
func Deliver(ctx context.Context, log *slog.Logger, steps ...Step) (string, error) {
	var errs []error
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		err := step.Do(ctx)
		if err == nil {
			if i > 0 {
				log.InfoContext(ctx, "Menu delivered by fallback", "step", step.Name, "attempt", i+1)
			}
			return step.Name, nil
		}

		log.ErrorContext(ctx, "Menu delivery step failed", "step", step.Name, "attempt", i+1, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
	}
	if len(errs) == 0 {
		return "", ErrUndelivered
	}
	return "", fmt.Errorf("%w: %w", ErrUndelivered, errors.Join(errs...))
}
