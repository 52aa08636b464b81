package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/service/authsvc"
	"github.com/forgelab/promptforge/pkg/usecase"
)

// Auth holds CLI flags for the external auth service
type Auth struct {
	serviceURL   string
	anonKey      string
	verifyTokens bool
	noAuthEmail  string
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-url",
			Usage:       "Base URL of the external auth service",
			Category:    "Authentication",
			Sources:     cli.EnvVars("PROMPTFORGE_AUTH_URL"),
			Destination: &a.serviceURL,
		},
		&cli.StringFlag{
			Name:        "auth-anon-key",
			Usage:       "Anonymous (public) API key of the auth service",
			Category:    "Authentication",
			Sources:     cli.EnvVars("PROMPTFORGE_AUTH_ANON_KEY"),
			Destination: &a.anonKey,
		},
		&cli.BoolFlag{
			Name:        "auth-verify-tokens",
			Usage:       "Verify provider access tokens against the service JWKS before minting a session",
			Category:    "Authentication",
			Sources:     cli.EnvVars("PROMPTFORGE_AUTH_VERIFY_TOKENS"),
			Destination: &a.verifyTokens,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the given email (development only). Example: --no-auth=dev@example.com",
			Category:    "Authentication",
			Sources:     cli.EnvVars("PROMPTFORGE_NO_AUTH"),
			Destination: &a.noAuthEmail,
		},
	}
}

// LogAttrs returns log attributes for the auth configuration
func (a *Auth) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("service_url", a.serviceURL),
		slog.Bool("anon_key_set", a.anonKey != ""),
		slog.Bool("verify_tokens", a.verifyTokens),
		slog.Bool("no_auth", a.noAuthEmail != ""),
	}
}

// IsConfigured reports whether the external auth service is set up
func (a *Auth) IsConfigured() bool {
	return a.serviceURL != "" && a.anonKey != ""
}

// IsNoAuthMode reports whether the dev no-auth mode is requested
func (a *Auth) IsNoAuthMode() bool {
	return a.noAuthEmail != ""
}

// Configure builds the auth use case. Returns nil when neither the
// external service nor no-auth mode is configured; the server then
// runs anonymously without auth routes.
func (a *Auth) Configure(repo interfaces.Repository) (usecase.AuthUseCaseInterface, error) {
	if a.noAuthEmail != "" {
		return usecase.NewNoAuthnUseCase(repo, a.noAuthEmail, a.noAuthEmail), nil
	}

	if !a.IsConfigured() {
		if a.serviceURL != "" || a.anonKey != "" {
			return nil, goerr.New("auth-url and auth-anon-key must be set together")
		}
		return nil, nil
	}

	client, err := authsvc.New(a.serviceURL, a.anonKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create auth service client")
	}

	var opts []usecase.AuthOption
	if a.verifyTokens {
		opts = append(opts, usecase.WithTokenVerification())
	}
	return usecase.NewAuthUseCase(repo, client, opts...), nil
}
