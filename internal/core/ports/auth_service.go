package ports

import (
	"context"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.Admin, error)
	// Login returns a signed bearer token and the authenticated account.
	// Unknown username, inactive account, and password mismatch all
	// collapse to domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
}
