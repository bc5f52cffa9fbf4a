package ports

import (
	"context"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

// AuthRepository defines the interface for administrator account persistence.
type AuthRepository interface {
	// Create inserts a new account. Unique indexes on username and email
	// reject duplicates as domain.ErrAdminExists.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	// FindByUsername returns domain.ErrAdminNotFound on a miss.
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	// FindByUsernameOrEmail is the advisory duplicate pre-check used
	// during registration. Returns domain.ErrAdminNotFound on a miss.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Admin, error)
}
