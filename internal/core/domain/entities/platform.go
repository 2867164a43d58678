package entities

// Platform identifies the hosting platform a repository lives on
type Platform string

const (
	PlatformGitHub  Platform = "github"
	PlatformGitLab  Platform = "gitlab"
	PlatformReplit  Platform = "replit"
	PlatformLovable Platform = "lovable"
)

// Valid reports whether p is one of the supported platforms
func (p Platform) Valid() bool {
	switch p {
	case PlatformGitHub, PlatformGitLab, PlatformReplit, PlatformLovable:
		return true
	}
	return false
}

// ConnectionStatus is the lifecycle state of a connected repository
type ConnectionStatus string

const (
	StatusConnected ConnectionStatus = "connected"
	StatusFailed    ConnectionStatus = "failed"
	StatusPending   ConnectionStatus = "pending"
)
