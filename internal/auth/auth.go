// Package auth resolves bearer tokens to user IDs against Supabase Auth.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"notepilot/internal/config"
)

// ErrUnauthorized covers every verification failure; callers do not learn the cause.
var ErrUnauthorized = errors.New("invalid token or user")

// Verifier resolves a bearer token to the owning user's ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// userFetcher returns the user owning token.
type userFetcher func(token string) (*types.UserResponse, error)

// SupabaseVerifier asks the Supabase Auth API who owns a token.
type SupabaseVerifier struct {
	fetch userFetcher
}

// NewSupabaseVerifier builds a verifier for the project at cfg.URL.
// A nil httpClient uses http.DefaultClient.
func NewSupabaseVerifier(cfg config.SupabaseConfig, httpClient *http.Client) (*SupabaseVerifier, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	client := gotrue.New("", cfg.Key).WithCustomGoTrueURL(cfg.URL + "/auth/v1")
	if httpClient != nil {
		client = client.WithClient(*httpClient)
	}
	return &SupabaseVerifier{
		fetch: func(token string) (*types.UserResponse, error) {
			return client.WithToken(token).GetUser()
		},
	}, nil
}

// Verify returns the user ID for token or an error wrapping ErrUnauthorized.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	user, err := v.fetch(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if user == nil || user.ID == uuid.Nil {
		return "", ErrUnauthorized
	}
	return user.ID.String(), nil
}
