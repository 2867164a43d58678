package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"github.com/just-nibble/repo-dashboard/pkg/response"
)

// OAuthHandler is the placeholder for the OAuth connect flow. It performs
// no network or store operation.
type OAuthHandler struct{}

func NewOAuthHandler() *OAuthHandler {
	return &OAuthHandler{}
}

var oauthProviderNames = map[entities.Platform]string{
	entities.PlatformGitHub: "GitHub",
	entities.PlatformGitLab: "GitLab",
}

// Start handles POST /api/oauth/{provider}
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	provider := entities.Platform(strings.ToLower(mux.Vars(r)["provider"]))
	name, ok := oauthProviderNames[provider]
	if !ok {
		response.ErrorResponse(w, http.StatusBadRequest, "Unsupported provider")
		return
	}
	response.ErrorResponse(w, http.StatusNotImplemented, name+" OAuth coming soon!")
}
