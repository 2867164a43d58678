package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/just-nibble/repo-dashboard/internal/adapters/http/middleware"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"github.com/just-nibble/repo-dashboard/internal/core/service"
	"github.com/just-nibble/repo-dashboard/pkg/response"
)

// ProfileService is the slice of the core service the profile handler
// depends on.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
}

type ProfileHandler struct {
	profileService ProfileService
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.ErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Msg("profile lookup failed")
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusOK, profile)
}
