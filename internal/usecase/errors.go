package usecase

import (
	"errors"
	"fmt"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/storage"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflicting concurrent write")
	ErrNotImplemented        = errors.New("not implemented")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// validationErrors are the domain failures a caller causes by sending a malformed record.
var validationErrors = []error{
	wire.ErrLength,
	wire.ErrRange,
	wire.ErrTimestamp,
	gts.ErrUnknownGeneration,
	facility.ErrUnknownGeneration,
	facility.ErrBattlesWonOutOfRange,
	terminal.ErrUnknownKind,
	terminal.ErrSerialRange,
}

// classify attaches the usecase sentinel matching err, keeping err in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
		}
	}
	if storage.IsConflict(err) {
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	}
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func errorIsClientFault(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}
