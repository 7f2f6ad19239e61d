// Package registry owns role membership and the rules for assigning roles.
package registry

import (
	"context"
	"fmt"
	"sync"

	"ledger_system/internal/domain" // Domain models
	"ledger_system/internal/events" // Notifications

	"github.com/sirupsen/logrus" // Structured logging
)

// Store holds the three membership sets
type Store interface {
	HasRole(ctx context.Context, account domain.AccountID, role domain.Role) (bool, error)
	GrantRole(ctx context.Context, account domain.AccountID, role domain.Role) error
	// BootstrapAdmin grants creator the Admin role only if no bootstrap has ever
	// happened, and reports whether it did. Check and grant are one atomic step.
	BootstrapAdmin(ctx context.Context, creator domain.AccountID) (bool, error)
}

// Registry enforces role assignment rules. Every operation runs under one lock,
// so checks and the mutation that follows them are atomic.
type Registry struct {
	mu    sync.Mutex
	store Store
	sink  events.Sink
}

// New bootstraps a registry with creator as its only admin. On a store that
// was bootstrapped before the creator must already be an admin and nothing is
// granted.
func New(ctx context.Context, store Store, sink events.Sink, creator domain.AccountID) (*Registry, error) {
	r := &Registry{store: store, sink: sink}
	granted, err := store.BootstrapAdmin(ctx, creator) // Atomic first-admin grant
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}
	if granted {
		logrus.WithField("creator", creator).Info("Registry bootstrapped")
		return r, nil
	}
	ok, err := store.HasRole(ctx, creator, domain.RoleAdmin) // Restart: creator must still be an admin
	if err != nil {
		return nil, fmt.Errorf("check creator: %w", err)
	}
	if !ok {
		logrus.WithField("creator", creator).Warn("Registry bootstrapped by another account")
		return nil, &domain.UnauthorizedError{Caller: creator, Required: domain.RoleAdmin}
	}
	logrus.WithField("creator", creator).Info("Registry already bootstrapped")
	return r, nil
}

// AssignAdminRole makes target an admin. Re-assigning an admin succeeds and
// still emits a notification.
func (r *Registry) AssignAdminRole(ctx context.Context, caller, target domain.AccountID) error {
	return r.assign(ctx, caller, target, func() (domain.Role, error) {
		return domain.RoleAdmin, nil
	})
}

// AssignOtherRole grants target the Supporter or Member role. Authorization is
// checked before the role name, so a non-admin always gets Unauthorized.
func (r *Registry) AssignOtherRole(ctx context.Context, caller, target domain.AccountID, roleName string) error {
	return r.assign(ctx, caller, target, func() (domain.Role, error) {
		return parseOtherRole(roleName)
	})
}

// assign runs the admin check, then resolves the role and grants it
func (r *Registry) assign(ctx context.Context, caller, target domain.AccountID, resolve func() (domain.Role, error)) error {
	r.mu.Lock()         // One operation at a time
	defer r.mu.Unlock() // Release after notify

	// Authorization short-circuits before the role name is looked at
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	role, err := resolve() // Admin, or a parsed non-admin role
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"caller": caller,      // Calling admin
			"target": target,      // Intended target
			"error":  err.Error(), // Error message
		}).Warn("Role assignment rejected")
		return err
	}
	// Insert target into the role set; granting twice is a no-op
	if err := r.store.GrantRole(ctx, target, role); err != nil {
		logrus.WithFields(logrus.Fields{
			"caller": caller,
			"target": target,
			"role":   role,
			"error":  err.Error(),
		}).Error("Role assignment failed")
		return fmt.Errorf("grant %s: %w", role, err)
	}
	logrus.WithFields(logrus.Fields{
		"caller": caller, // Calling admin
		"target": target, // Account receiving the role
		"role":   role,   // Role granted
	}).Info("Role assigned")
	events.Emit(ctx, r.sink, events.RoleAssigned(target, role)) // Notify after commit
	return nil
}

func (r *Registry) requireAdmin(ctx context.Context, caller domain.AccountID) error {
	ok, err := r.store.HasRole(ctx, caller, domain.RoleAdmin) // Look up caller in the admin set
	if err != nil {
		return fmt.Errorf("check caller: %w", err)
	}
	if !ok {
		logrus.WithField("caller", caller).Warn("Caller is not an admin")
		return &domain.UnauthorizedError{Caller: caller, Required: domain.RoleAdmin}
	}
	return nil
}

// parseOtherRole accepts only the non-admin roles
func parseOtherRole(name string) (domain.Role, error) {
	role, err := domain.ParseRole(name) // Exact match against the closed set
	if err != nil || role == domain.RoleAdmin {
		return "", &domain.InvalidRoleError{Name: name}
	}
	return role, nil
}

// HasRole reports whether id holds role
func (r *Registry) HasRole(ctx context.Context, id domain.AccountID, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.HasRole(ctx, id, role)
}

func (r *Registry) IsAdmin(ctx context.Context, id domain.AccountID) (bool, error) {
	return r.HasRole(ctx, id, domain.RoleAdmin)
}

func (r *Registry) IsSupporter(ctx context.Context, id domain.AccountID) (bool, error) {
	return r.HasRole(ctx, id, domain.RoleSupporter)
}

func (r *Registry) IsMember(ctx context.Context, id domain.AccountID) (bool, error) {
	return r.HasRole(ctx, id, domain.RoleMember)
}

// Membership is the set of roles held by one account
type Membership struct {
	Account   domain.AccountID `json:"account"`
	Admin     bool             `json:"admin"`
	Supporter bool             `json:"supporter"`
	Member    bool             `json:"member"`
}

// Roles reads all three memberships of id in one consistent snapshot
func (r *Registry) Roles(ctx context.Context, id domain.AccountID) (Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := Membership{Account: id}
	for _, dst := range []struct {
		role domain.Role
		out  *bool
	}{
		{domain.RoleAdmin, &m.Admin},
		{domain.RoleSupporter, &m.Supporter},
		{domain.RoleMember, &m.Member},
	} {
		ok, err := r.store.HasRole(ctx, id, dst.role) // Read one membership set
		if err != nil {
			return Membership{}, err
		}
		*dst.out = ok
	}
	return m, nil
}
