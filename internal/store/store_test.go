package store

import (
	"context"
	"path/filepath"
	"testing"

	"ledger_system/internal/domain"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// backend is the full surface shared by Memory and Gorm
type backend interface {
	HasRole(ctx context.Context, account domain.AccountID, role domain.Role) (bool, error)
	GrantRole(ctx context.Context, account domain.AccountID, role domain.Role) error
	CountRole(ctx context.Context, role domain.Role) (int64, error)
	BootstrapAdmin(ctx context.Context, creator domain.AccountID) (bool, error)
	Balance(ctx context.Context) (domain.Amount, error)
	Credit(ctx context.Context, amount domain.Amount) (domain.Amount, error)
	Debit(ctx context.Context, amount domain.Amount) (domain.Amount, error)
	CreateUser(ctx context.Context, u *domain.User) error
	FindUser(ctx context.Context, account domain.AccountID) (*domain.User, error)
}

type StoreSuite struct {
	suite.Suite
	ctx     context.Context
	newFunc func() backend
	store   backend
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newFunc()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newFunc: func() backend { return NewMemory() }})
}

func TestGormStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newFunc: func() backend {
		path := filepath.Join(t.TempDir(), "ledger.db")
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		if err := db.AutoMigrate(&domain.User{}, &domain.RoleGrant{}, &domain.RegistryBootstrap{}, &domain.LedgerState{}); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return NewGorm(db)
	}})
}

func (s *StoreSuite) TestRoles() {
	s.Run("grant is visible only for that role", func() {
		s.Require().NoError(s.store.GrantRole(s.ctx, "alice", domain.RoleSupporter))

		ok, err := s.store.HasRole(s.ctx, "alice", domain.RoleSupporter)
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.HasRole(s.ctx, "alice", domain.RoleMember)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("grant is idempotent", func() {
		s.Require().NoError(s.store.GrantRole(s.ctx, "bob", domain.RoleAdmin))
		s.Require().NoError(s.store.GrantRole(s.ctx, "bob", domain.RoleAdmin))

		n, err := s.store.CountRole(s.ctx, domain.RoleAdmin)
		s.Require().NoError(err)
		s.EqualValues(1, n)
	})
}

func (s *StoreSuite) TestBootstrapAdmin() {
	granted, err := s.store.BootstrapAdmin(s.ctx, "owner")
	s.Require().NoError(err)
	s.True(granted)

	s.Run("only the first bootstrap grants", func() {
		granted, err := s.store.BootstrapAdmin(s.ctx, "intruder")
		s.Require().NoError(err)
		s.False(granted)

		ok, err := s.store.HasRole(s.ctx, "intruder", domain.RoleAdmin)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("same creator again grants nothing new", func() {
		granted, err := s.store.BootstrapAdmin(s.ctx, "owner")
		s.Require().NoError(err)
		s.False(granted)
	})

	n, err := s.store.CountRole(s.ctx, domain.RoleAdmin)
	s.Require().NoError(err)
	s.EqualValues(1, n)

	ok, err := s.store.HasRole(s.ctx, "owner", domain.RoleAdmin)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreSuite) TestBalance() {
	b, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Zero(b)

	b, err = s.store.Credit(s.ctx, 3*domain.Unit)
	s.Require().NoError(err)
	s.Equal(3*domain.Unit, b)

	b, err = s.store.Debit(s.ctx, domain.Unit)
	s.Require().NoError(err)
	s.Equal(2*domain.Unit, b)

	_, err = s.store.Debit(s.ctx, 5*domain.Unit)
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)

	b, err = s.store.Debit(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(2*domain.Unit, b)

	b, err = s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Equal(2*domain.Unit, b)
}

func (s *StoreSuite) TestDebitOnEmptyLedger() {
	_, err := s.store.Debit(s.ctx, 1)
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *StoreSuite) TestUsers() {
	u := &domain.User{Account: "carol", Password: "hash"}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	s.NotZero(u.ID)

	found, err := s.store.FindUser(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal("hash", found.Password)

	err = s.store.CreateUser(s.ctx, &domain.User{Account: "carol", Password: "other"})
	s.Require().ErrorIs(err, ErrConflict)

	_, err = s.store.FindUser(s.ctx, "nobody")
	s.Require().ErrorIs(err, ErrNotFound)
}
