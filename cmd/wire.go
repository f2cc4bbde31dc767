package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	apiadapter "github.com/bnema/sc-console-cli/internal/adapters/api"
	tomlrepo "github.com/bnema/sc-console-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/sc-console-cli/internal/adapters/secrets/chain"
	streamadapter "github.com/bnema/sc-console-cli/internal/adapters/stream"
	"github.com/bnema/sc-console-cli/internal/application"
	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/bnema/sc-console-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	profiles   ports.ProfileRepository
	store      ports.CredentialStore
	httpClient *http.Client
	clock      ports.Clock
	now        func() time.Time

	// --profile on the root command; empty means the active profile.
	profileOverride string
}

func wireApp() (*app, error) {
	profiles, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	store, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".scconsole", "credentials"))
	if err != nil {
		return nil, fmt.Errorf("wire credential store chain: %w", err)
	}

	return &app{
		profiles:   profiles,
		store:      store,
		httpClient: http.DefaultClient,
		clock:      ports.SystemClock{},
		now:        time.Now,
	}, nil
}

// resolveProfile returns the profile commands should talk to: the --profile
// override when given, otherwise the active one. SCC_BASE_URL overrides the
// profile's base URL either way.
func (a *app) resolveProfile(ctx context.Context) (domain.Profile, error) {
	var profile domain.Profile
	var err error

	if a.profileOverride != "" {
		profile, err = a.profiles.GetByName(ctx, domain.ProfileName(a.profileOverride))
	} else {
		profile, err = a.profiles.Active(ctx)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("resolve profile (add one with %q): %w", "scc profile add", err)
	}

	if baseURL := os.Getenv("SCC_BASE_URL"); baseURL != "" {
		profile.BaseURL = baseURL
	}

	return profile, nil
}

func (a *app) sessionFor(profile domain.Profile) *application.SessionService {
	authAPI := apiadapter.NewAuthClient(profile.BaseURL, a.httpClient)
	return application.NewSessionService(a.store, authAPI, a.clock, credentialKey(profile.Name))
}

func (a *app) clientFor(profile domain.Profile, session *application.SessionService) *apiadapter.Client {
	return apiadapter.NewClient(profile.BaseURL, a.httpClient, session)
}

func (a *app) streamFor(profile domain.Profile) *streamadapter.Client {
	return streamadapter.NewClient(profile.BaseURL, a.httpClient, a.clock)
}

// connect resolves the profile and builds the session plus authenticated
// client in one step, for commands that require an open session.
func (a *app) connect(ctx context.Context) (domain.Profile, *application.SessionService, *apiadapter.Client, error) {
	profile, err := a.resolveProfile(ctx)
	if err != nil {
		return domain.Profile{}, nil, nil, err
	}

	session := a.sessionFor(profile)
	return profile, session, a.clientFor(profile, session), nil
}

func credentialKey(name domain.ProfileName) string {
	return fmt.Sprintf("scconsole/%s/auth_token", name)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
