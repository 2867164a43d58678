package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/just-nibble/repo-dashboard/internal/adapters/http/dtos"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/middleware"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"github.com/just-nibble/repo-dashboard/internal/core/service"
	"github.com/just-nibble/repo-dashboard/pkg/response"
)

// TokenService is the slice of the core service the token handler depends on
type TokenService interface {
	SaveToken(ctx context.Context, userID uuid.UUID, platform entities.Platform, accessToken string) (*entities.PlatformToken, error)
}

type TokenHandler struct {
	tokenService TokenService
}

func NewTokenHandler(tokenService TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

// Save handles POST /api/tokens. Saving twice for the same platform keeps a
// single row holding the latest token.
func (h *TokenHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dtos.SaveTokenInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.tokenService.SaveToken(r.Context(), userID, req.Platform, req.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnsupportedPlatform):
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("token save failed")
			response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.SuccessResponse(w, http.StatusCreated, dtos.SaveTokenOutput{
		Platform:  token.Platform,
		TokenType: token.TokenType,
	})
}
