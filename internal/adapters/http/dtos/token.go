package dtos

import "github.com/just-nibble/repo-dashboard/internal/core/domain/entities"

// SaveTokenInput is the body of POST /api/tokens
type SaveTokenInput struct {
	Platform    entities.Platform `json:"platform"`
	AccessToken string            `json:"access_token"`
}

// SaveTokenOutput echoes the stored token row without the credential itself
type SaveTokenOutput struct {
	Platform  entities.Platform `json:"platform"`
	TokenType string            `json:"token_type"`
}
