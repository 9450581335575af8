package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/rbac"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// Register stores u unless a user with the same email exists, in which case
// ErrUserExists is returned. Any client-supplied role is dropped: accounts
// start as guests and are promoted explicitly.
func (s *UserService) Register(ctx context.Context, u models.User) (models.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Role = ""

	existing, err := s.users.FindByEmail(ctx, u.Email)
	if err != nil {
		return models.InsertResult{}, err
	}
	if existing != nil {
		return models.InsertResult{}, ErrUserExists
	}

	res, err := s.users.Insert(ctx, &u)
	if errors.Is(err, models.ErrDuplicate) {
		return models.InsertResult{}, ErrUserExists
	}
	return res, err
}

// RoleOf reports the stored role for email. Unknown emails are guests.
func (s *UserService) RoleOf(ctx context.Context, email string) (rbac.Role, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return rbac.Guest, err
	}
	if u == nil {
		return rbac.Guest, nil
	}
	return u.AccessRole(), nil
}

// IsAdmin answers the "am I an admin" check. A caller asking about another
// email always gets false.
func (s *UserService) IsAdmin(ctx context.Context, caller, email string) (bool, error) {
	if caller != email {
		return false, nil
	}
	role, err := s.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return role == rbac.Admin, nil
}

// Promote grants the admin role to the user with the given id.
func (s *UserService) Promote(ctx context.Context, idHex string) (models.UpdateResult, error) {
	id, err := parseID(idHex)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return s.users.SetRole(ctx, id, rbac.Admin)
}
