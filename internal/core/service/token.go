package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/just-nibble/repo-dashboard/internal/adapters/db"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

// Tokens shorter than this are rejected locally; the platform itself is
// never called to verify validity.
const minTokenLength = 10

// TokenService stores per-platform access tokens
type TokenService struct {
	tokens db.TokenStore
}

func NewTokenService(tokens db.TokenStore) *TokenService {
	return &TokenService{tokens: tokens}
}

// SaveToken validates the token length locally and upserts it on the
// (user, platform) key, overwriting any previous token for that platform.
func (s *TokenService) SaveToken(ctx context.Context, userID uuid.UUID, platform entities.Platform, accessToken string) (*entities.PlatformToken, error) {
	if !platform.Valid() {
		return nil, ErrUnsupportedPlatform
	}
	if len(accessToken) < minTokenLength {
		return nil, ErrInvalidToken
	}

	token := &entities.PlatformToken{
		UserID:      userID,
		Platform:    platform,
		AccessToken: accessToken,
		TokenType:   "bearer",
	}
	if err := s.tokens.UpsertToken(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}
