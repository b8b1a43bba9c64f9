package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const profilesTable = "user_profiles"

// ProfileRepository persists one interest list per user id.
type ProfileRepository struct {
	*DB
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository wires the repository to an open store.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// Upsert creates the profile or fully replaces its interests.
func (r *ProfileRepository) Upsert(ctx context.Context, profile domain.UserProfile) error {
	query, args, err := r.builder.Insert(profilesTable).
		Columns("user_id", "interests").
		Values(profile.UserID, domain.JoinInterests(profile.Interests)).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET interests = EXCLUDED.interests").
		ToSql()
	if err != nil {
		return fmt.Errorf("storage: build upsert profile: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("storage: upsert profile %q: %w", profile.UserID, err)
	}
	return nil
}

// Get loads a profile; found is false when the user has none.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (domain.UserProfile, bool, error) {
	query, args, err := r.builder.Select("interests").
		From(profilesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("storage: build get profile: %w", err)
	}

	var interests string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&interests)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserProfile{}, false, nil
	}
	if err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("storage: get profile %q: %w", userID, err)
	}

	return domain.UserProfile{UserID: userID, Interests: domain.SplitInterests(interests)}, true, nil
}
