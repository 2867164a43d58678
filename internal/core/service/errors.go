package service

import "errors"

// Workflow failure classes. Handlers match these with errors.Is to pick a
// status code; the messages themselves are surfaced to the user.
var (
	ErrRepoLimit           = errors.New("repository limit reached")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidRepoURL      = errors.New("invalid repository URL for the selected platform")
	ErrUnparsableRepoURL   = errors.New("could not parse owner and repository name from URL")
	ErrDuplicateRepository = errors.New("repository already connected")
	ErrRepositoryNotFound  = errors.New("repository not found")
	ErrInvalidToken        = errors.New("access token must be at least 10 characters")
	ErrProfileNotFound     = errors.New("profile not found")
)
