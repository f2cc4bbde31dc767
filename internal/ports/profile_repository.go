package ports

import (
	"context"

	"github.com/bnema/sc-console-cli/internal/domain"
)

type ProfileRepository interface {
	GetByName(ctx context.Context, name domain.ProfileName) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	// Active returns the profile marked as the current backend target.
	Active(ctx context.Context) (domain.Profile, error)
	SetActive(ctx context.Context, name domain.ProfileName) error
}
