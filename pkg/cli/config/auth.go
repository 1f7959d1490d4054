package config

import (
	"github.com/urfave/cli/v3"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
)

// Auth holds CLI flags for authentication configuration
type Auth struct {
	noAuthUID string
}

// Flags returns CLI flags for authentication configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID (development only). Example: --no-auth=dev-user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("AEGIS_NO_AUTH"),
			Destination: &a.noAuthUID,
		},
	}
}

// IsNoAuthMode reports whether authentication is disabled
func (a *Auth) IsNoAuthMode() bool {
	return a.noAuthUID != ""
}

// Configure builds the authentication use case: token validation against the
// repository, or a fixed identity when --no-auth is set.
func (a *Auth) Configure(repo interfaces.Repository) usecase.AuthUseCaseInterface {
	if a.noAuthUID != "" {
		return usecase.NewNoAuthnUseCase(repo, types.UserID(a.noAuthUID), a.noAuthUID+"@localhost", a.noAuthUID)
	}
	return usecase.NewAuthUseCase(repo)
}
