package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

// Profiles manages user interest profiles.
type Profiles struct {
	repo   ports.ProfileRepository
	logger *slog.Logger
}

// NewProfiles wires the profile use case.
func NewProfiles(repo ports.ProfileRepository, log *slog.Logger) *Profiles {
	return &Profiles{repo: repo, logger: log}
}

// SetProfile fully replaces the user's interests; tags are trimmed and
// empty ones dropped.
func (p *Profiles) SetProfile(ctx context.Context, userID string, interests []string) error {
	userID = domain.NormalizeUserID(userID)
	if userID == "" {
		return domain.ErrMissingUserID
	}

	profile := domain.UserProfile{UserID: userID, Interests: domain.CleanInterests(interests)}
	if err := p.repo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("profile stored", "user_id", userID, "interests", len(profile.Interests))
	}
	return nil
}

// GetProfile loads the user's interests or returns domain.ErrProfileNotFound.
func (p *Profiles) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	profile, found, err := p.repo.Get(ctx, domain.NormalizeUserID(userID))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}
