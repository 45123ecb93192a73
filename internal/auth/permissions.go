package auth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// Permission names checked by the route guards.
const (
	PermissionDeleteUser  = "canDeleteUser"
	PermissionEditAnyUser = "canEditAnyUser"
	PermissionClassifyBug = "canClassifyBug"
)

// RoleNames splits a user's role field into its comma separated role names.
func RoleNames(role string) []string {
	var names []string
	for _, name := range strings.Split(role, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MergePermissions unions the permissions of every role into a set.
func MergePermissions(roles ...*models.Role) map[string]bool {
	permissions := map[string]bool{}
	for _, role := range roles {
		if role == nil {
			continue
		}
		for _, p := range role.Permissions {
			permissions[p] = true
		}
	}
	return permissions
}

// TokenIssuer signs session tokens carrying the user's merged role permissions.
type TokenIssuer struct {
	roles      *RoleCache
	privateKey *ecdsa.PrivateKey
	ttl        time.Duration
	logger     interfaces.Logger
}

func NewTokenIssuer(roles *RoleCache, privateKey *ecdsa.PrivateKey, ttl time.Duration, logger interfaces.Logger) (*TokenIssuer, error) {
	if roles == nil || privateKey == nil {
		return nil, fmt.Errorf("role cache and private key are required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{roles: roles, privateKey: privateKey, ttl: ttl, logger: logger}, nil
}

// IssueAuthToken fetches the user's roles and signs a token for the user.
// Roles that do not exist contribute no permissions.
func (i *TokenIssuer) IssueAuthToken(ctx context.Context, user *models.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is required")
	}

	var roles []*models.Role
	for _, name := range RoleNames(user.Role) {
		role, err := i.roles.GetRole(ctx, name)
		if err != nil {
			return "", fmt.Errorf("failed to fetch role %q: %w", name, err)
		}
		if role == nil {
			i.logger.Warn("user has unknown role", "userId", user.ID, "role", name)
			continue
		}
		roles = append(roles, role)
	}

	return CreateToken(Identity{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: MergePermissions(roles...),
	}, i.ttl, i.privateKey)
}

// PublicKey returns the key tokens are verified with.
func (i *TokenIssuer) PublicKey() *ecdsa.PublicKey {
	return &i.privateKey.PublicKey
}

// TTL is the lifetime of issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
