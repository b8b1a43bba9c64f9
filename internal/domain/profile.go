package domain

import (
	"errors"
	"strings"
)

var (
	// ErrProfileNotFound is returned when no profile exists for a user id.
	ErrProfileNotFound = errors.New("profile not found")
	ErrMissingUserID   = errors.New("user id is empty")
)

const interestSeparator = ","

// UserProfile holds the declared interests of one user.
type UserProfile struct {
	UserID    string   `json:"user_id"`
	Interests []string `json:"interests"`
}

// NormalizeUserID is the canonical form of a user id for storage and lookup.
func NormalizeUserID(userID string) string {
	return strings.TrimSpace(userID)
}

// JoinInterests encodes interests into their persisted delimited form.
func JoinInterests(interests []string) string {
	return strings.Join(interests, interestSeparator)
}

// SplitInterests decodes the persisted form, trimming every tag and dropping
// empty ones while keeping the original order.
func SplitInterests(raw string) []string {
	pieces := strings.Split(raw, interestSeparator)
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, piece)
	}
	return out
}

// CleanInterests trims tags and drops empty ones, preserving order.
func CleanInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, tag := range interests {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
