package registry

import (
	"context"
	"sync"
	"testing"

	"ledger_system/internal/domain"
	"ledger_system/internal/events"
	"ledger_system/internal/store"

	"github.com/stretchr/testify/suite"
)

const (
	owner     domain.AccountID = "owner"
	admin     domain.AccountID = "admin"
	supporter domain.AccountID = "supporter"
	member    domain.AccountID = "member"
)

type RegistrySuite struct {
	suite.Suite
	ctx   context.Context
	store *store.Memory
	log   *events.Log
	reg   *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemory()
	s.log = events.NewLog()
	reg, err := New(s.ctx, s.store, s.log, owner)
	s.Require().NoError(err)
	s.reg = reg
}

func (s *RegistrySuite) roles(id domain.AccountID) Membership {
	m, err := s.reg.Roles(s.ctx, id)
	s.Require().NoError(err)
	return m
}

func (s *RegistrySuite) TestBootstrap() {
	s.Run("creator is the only admin", func() {
		s.Equal(Membership{Account: owner, Admin: true}, s.roles(owner))
		for _, id := range []domain.AccountID{admin, supporter, member} {
			s.Equal(Membership{Account: id}, s.roles(id))
		}
		n, err := s.store.CountRole(s.ctx, domain.RoleAdmin)
		s.Require().NoError(err)
		s.EqualValues(1, n)
	})

	s.Run("bootstrap emits nothing", func() {
		s.Zero(s.log.Len())
	})

	s.Run("restart with the same creator keeps state", func() {
		_, err := New(s.ctx, s.store, s.log, owner)
		s.Require().NoError(err)
		n, err := s.store.CountRole(s.ctx, domain.RoleAdmin)
		s.Require().NoError(err)
		s.EqualValues(1, n)
	})

	s.Run("restart with a different creator is refused", func() {
		_, err := New(s.ctx, s.store, s.log, admin)
		s.Require().ErrorIs(err, domain.ErrUnauthorized)
		ok, err := s.reg.IsAdmin(s.ctx, admin)
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *RegistrySuite) TestConcurrentBootstrapMintsOneAdmin() {
	fresh := store.NewMemory()
	creators := []domain.AccountID{"first", "second", "third", "fourth"}

	var wg sync.WaitGroup
	results := make([]error, len(creators))
	for i, c := range creators {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = New(s.ctx, fresh, s.log, c)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrUnauthorized)
	}
	s.Equal(1, succeeded)

	n, err := fresh.CountRole(s.ctx, domain.RoleAdmin)
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *RegistrySuite) TestAssignAdminRole() {
	ok, err := s.reg.IsAdmin(s.ctx, admin)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.reg.AssignAdminRole(s.ctx, owner, admin))

	ok, err = s.reg.IsAdmin(s.ctx, admin)
	s.Require().NoError(err)
	s.True(ok)

	e, found := s.log.Last()
	s.Require().True(found)
	s.Equal(domain.EventRoleAssigned, e.Kind)
	s.Equal(admin, e.Account)
	s.Equal(domain.RoleAdmin, e.Role)
	s.NotEmpty(e.ID)

	s.Run("new admin can assign roles", func() {
		s.Require().NoError(s.reg.AssignOtherRole(s.ctx, admin, member, "Member"))
		s.True(s.roles(member).Member)
	})

	s.Run("reassigning an admin succeeds and still notifies", func() {
		before := s.log.Len()
		s.Require().NoError(s.reg.AssignAdminRole(s.ctx, owner, admin))
		s.Equal(before+1, s.log.Len())
		n, err := s.store.CountRole(s.ctx, domain.RoleAdmin)
		s.Require().NoError(err)
		s.EqualValues(2, n)
	})
}

func (s *RegistrySuite) TestAssignOtherRole() {
	s.Run("supporter", func() {
		s.False(s.roles(supporter).Supporter)
		s.Require().NoError(s.reg.AssignOtherRole(s.ctx, owner, supporter, "Supporter"))
		s.True(s.roles(supporter).Supporter)

		e, _ := s.log.Last()
		s.Equal(supporter, e.Account)
		s.Equal(domain.RoleSupporter, e.Role)
	})

	s.Run("member", func() {
		s.False(s.roles(member).Member)
		s.Require().NoError(s.reg.AssignOtherRole(s.ctx, owner, member, "Member"))
		s.True(s.roles(member).Member)

		e, _ := s.log.Last()
		s.Equal(member, e.Account)
		s.Equal(domain.RoleMember, e.Role)
	})

	s.Run("roles are not mutually exclusive", func() {
		s.Require().NoError(s.reg.AssignOtherRole(s.ctx, owner, owner, "Supporter"))
		s.Require().NoError(s.reg.AssignOtherRole(s.ctx, owner, owner, "Member"))
		s.Equal(Membership{Account: owner, Admin: true, Supporter: true, Member: true}, s.roles(owner))
	})
}

func (s *RegistrySuite) TestInvalidRole() {
	for _, name := range []string{"Invalid role", "member", "SUPPORTER", "Admin", ""} {
		s.Run(name, func() {
			before := s.log.Len()
			err := s.reg.AssignOtherRole(s.ctx, owner, member, name)
			s.Require().ErrorIs(err, domain.ErrInvalidRole)
			s.EqualError(err, "role not recognized")
			s.Equal(Membership{Account: member}, s.roles(member))
			s.Equal(before, s.log.Len())
		})
	}
}

func (s *RegistrySuite) TestUnauthorized() {
	s.Require().NoError(s.reg.AssignOtherRole(s.ctx, owner, supporter, "Supporter"))
	before := s.log.Len()

	s.Run("non-admin cannot assign other roles", func() {
		err := s.reg.AssignOtherRole(s.ctx, supporter, member, "Member")
		s.Require().ErrorIs(err, domain.ErrUnauthorized)
		s.EqualError(err, "caller is not an admin")

		var unauthorized *domain.UnauthorizedError
		s.Require().ErrorAs(err, &unauthorized)
		s.Equal(supporter, unauthorized.Caller)
	})

	s.Run("non-admin cannot assign admin", func() {
		err := s.reg.AssignAdminRole(s.ctx, supporter, supporter)
		s.Require().ErrorIs(err, domain.ErrUnauthorized)
	})

	s.Run("authorization is checked before the role name", func() {
		err := s.reg.AssignOtherRole(s.ctx, member, member, "Invalid role")
		s.Require().ErrorIs(err, domain.ErrUnauthorized)
	})

	s.Equal(Membership{Account: supporter, Supporter: true}, s.roles(supporter))
	s.Equal(Membership{Account: member}, s.roles(member))
	s.Equal(before, s.log.Len())
}
