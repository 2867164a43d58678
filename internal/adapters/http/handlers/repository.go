package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/just-nibble/repo-dashboard/internal/adapters/api"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/dtos"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/middleware"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"github.com/just-nibble/repo-dashboard/internal/core/service"
	"github.com/just-nibble/repo-dashboard/pkg/response"
)

// RepositoryService is the slice of the core service the repository
// handler depends on.
type RepositoryService interface {
	ConnectRepository(ctx context.Context, userID uuid.UUID, platform entities.Platform, repoURL string) (*entities.Repository, error)
	FetchMetadata(ctx context.Context, userID uuid.UUID, platform entities.Platform, owner, repo string) (entities.Metadata, bool, error)
	RefreshRepository(ctx context.Context, userID, id uuid.UUID) (*entities.Repository, error)
	DisconnectRepository(ctx context.Context, userID, id uuid.UUID) error
	ListRepositories(ctx context.Context, userID uuid.UUID, query string, platform entities.Platform) ([]entities.Repository, error)
	Stats(ctx context.Context, userID uuid.UUID) (*service.RepositoryStats, error)
}

type RepositoryHandler struct {
	repoService RepositoryService
}

func NewRepositoryHandler(repoService RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{repoService: repoService}
}

// List handles GET /api/repositories
func (h *RepositoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query().Get("q")
	platform := entities.Platform(r.URL.Query().Get("platform"))

	repos, err := h.repoService.ListRepositories(r.Context(), userID, query, platform)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if repos == nil {
		repos = []entities.Repository{}
	}
	response.SuccessResponse(w, http.StatusOK, repos)
}

// Connect handles POST /api/repositories, the connection workflow
func (h *RepositoryHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dtos.ConnectRepositoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Platform == "" || req.RepoURL == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	repo, err := h.repoService.ConnectRepository(r.Context(), userID, req.Platform, req.RepoURL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, repo)
}

// FetchMetadata handles POST /api/repositories/fetch-metadata. Classified
// adapter failures come back as 400 with the platform's message; anything
// unexpected is a generic 500.
func (h *RepositoryHandler) FetchMetadata(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dtos.FetchMetadataInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Platform == "" || req.Owner == "" || req.Repo == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	metadata, isPrivate, err := h.repoService.FetchMetadata(r.Context(), userID, req.Platform, req.Owner, req.Repo)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			out := dtos.FetchMetadataError{Error: apiErr.Message}
			if apiErr.IsPrivate {
				private := true
				out.IsPrivate = &private
			}
			response.JSON(w, http.StatusBadRequest, out)
			return
		}
		if errors.Is(err, service.ErrUnsupportedPlatform) {
			response.ErrorResponse(w, http.StatusBadRequest, "Unsupported platform")
			return
		}
		log.Error().Err(err).Msg("fetch-metadata failed")
		response.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.SuccessResponse(w, http.StatusOK, dtos.FetchMetadataOutput{
		Metadata:  metadata,
		IsPrivate: isPrivate,
	})
}

// Refresh handles POST /api/repositories/{id}/refresh
func (h *RepositoryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid repository id")
		return
	}

	repo, err := h.repoService.RefreshRepository(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, repo)
}

// Disconnect handles DELETE /api/repositories/{id}
func (h *RepositoryHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid repository id")
		return
	}

	if err := h.repoService.DisconnectRepository(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/repositories/stats
func (h *RepositoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.repoService.Stats(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, stats)
}

func (h *RepositoryHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRepoLimit),
		errors.Is(err, service.ErrUnsupportedPlatform),
		errors.Is(err, service.ErrInvalidRepoURL),
		errors.Is(err, service.ErrUnparsableRepoURL):
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateRepository):
		response.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRepositoryNotFound):
		response.ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("repository operation failed")
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
