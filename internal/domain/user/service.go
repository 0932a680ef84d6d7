package user

import (
	"context"
	"errors"
)

// Service contains the business logic for users
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SignIn finds the user owning the identity's email or registers a new one.
// A concurrent first sign-in for the same email resolves to the row that won.
func (s *Service) SignIn(ctx context.Context, identity Identity) (*User, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return s.linkIdentity(ctx, u, identity)
	}

	params := CreateUserParams{
		Email:       identity.Email,
		Name:        identity.Name,
		FirebaseUID: &identity.SubjectID,
	}
	if identity.AvatarURL != "" {
		params.AvatarURL = &identity.AvatarURL
	}

	u, err = s.repo.Create(ctx, params)
	if errors.Is(err, ErrEmailTaken) {
		u, err = s.repo.GetByEmail(ctx, identity.Email)
		if err == nil && u == nil {
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// ListUsers lists every user, used by the admin CLI
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// linkIdentity stores the provider subject on users created before it was known.
func (s *Service) linkIdentity(ctx context.Context, u *User, identity Identity) (*User, error) {
	if u.FirebaseUID != nil && *u.FirebaseUID == identity.SubjectID {
		return u, nil
	}

	params := UpdateUserParams{FirebaseUID: &identity.SubjectID}
	if u.Name == "" && identity.Name != "" {
		params.Name = &identity.Name
	}
	return s.repo.Update(ctx, u.ID, params)
}
