package usecase

import (
	"context"
	"fmt"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
)

type ProfileService struct {
	repo profile.Repository
}

func NewProfileService(repo profile.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// SetProfile decodes the 100-byte profile blob and stores it for the PID it carries.
func (s *ProfileService) SetProfile(ctx context.Context, gen generation.Generation, data []byte) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.SetProfile")
	defer span.End()

	if !gen.Valid() {
		return false, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	p, err := profile.Decode(gen, data)
	if err != nil {
		return false, classify("decode profile", err)
	}
	ok, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return false, classify("upsert profile", err)
	}
	return ok, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, gen generation.Generation, pid int32) (profile.TrainerProfile, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	defer span.End()

	if !gen.Valid() {
		return profile.TrainerProfile{}, false, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	p, found, err := s.repo.Get(ctx, gen, pid)
	if err != nil {
		return profile.TrainerProfile{}, false, classify("get profile", err)
	}
	return p, found, nil
}
