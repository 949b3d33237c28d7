package auth

import (
	"context"
	"strings"

	"github.com/yigit/unishare/internal/app/models"
	pkgauth "github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/logger"
)

// fallbackName is used when neither the token nor the users table carries a name
const fallbackName = "Someone"

// UserLookup is the part of the user repository the resolver needs
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ActorResolver turns the authenticated caller into the name shown to other users
type ActorResolver struct {
	users UserLookup
}

// NewActorResolver creates a new ActorResolver
func NewActorResolver(users UserLookup) *ActorResolver {
	return &ActorResolver{users: users}
}

// DisplayName returns "First Last" of the caller. Names carried in the token win;
// otherwise the users table is consulted.
func (r *ActorResolver) DisplayName(ctx context.Context, user *pkgauth.CurrentUser) string {
	if user == nil {
		return fallbackName
	}
	if name := user.DisplayName(); name != "" {
		return name
	}
	if r.users == nil {
		return fallbackName
	}

	u, err := r.users.GetByID(ctx, user.ID)
	if err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not resolve user name")
		return fallbackName
	}
	if name := strings.TrimSpace(u.DisplayName()); name != "" {
		return name
	}
	return fallbackName
}

// IsOwner reports whether the caller uploaded the resource
func IsOwner(owner *models.ResourceOwner, user *pkgauth.CurrentUser) bool {
	return owner != nil && user != nil && owner.OwnerID == user.ID
}
