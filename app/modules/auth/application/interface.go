package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
)

// Service defines the admin authentication service interface.
type Service interface {
	// Login checks credentials and mints a session token.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	// ValidateSession validates a session token and returns the claims if valid.
	ValidateSession(ctx context.Context, token string) (*authdomain.Claims, error)

	// CreateAdmin adds a new admin account.
	CreateAdmin(ctx context.Context, email, password string) (*AdminInfo, error)

	// ListAdmins returns every admin account, the static admin first.
	ListAdmins(ctx context.Context) ([]AdminInfo, error)

	// DeleteAdmin removes an account other than the requester's own.
	DeleteAdmin(ctx context.Context, requester *authdomain.Claims, id int64) error
}

type LoginResponse struct {
	Token  string
	Claims *authdomain.Claims
}

// AdminInfo is the public view of an admin account.
type AdminInfo struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	Source    authdomain.Source `json:"source"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}
