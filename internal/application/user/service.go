package user

import (
	"context"
	"fmt"

	"github.com/lms-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName      = "name"
	fieldRole      = "role"
	fieldAvatarURL = "avatar_url"
	fieldPhone     = "phone"
	fieldLocale    = "locale"
	fieldPoints    = "points"
)

type UserStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
	List(ctx context.Context, role string, limit int32) ([]domain.User, error)
}

type Service interface {
	List(ctx context.Context, role string) ([]domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	// Update applies a partial update to the account at email. Callers may
	// only modify their own account unless they are admins, and role
	// changes are admin-only either way.
	Update(ctx context.Context, caller *domain.User, email string, req domain.UpdateUserRequest) (*domain.User, error)
}

type ServiceDeps struct {
	UserRepo UserStore
}

type service struct {
	userRepo UserStore
}

func NewService(deps ServiceDeps) Service {
	return &service{userRepo: deps.UserRepo}
}

const listLimit = 100

func (s *service) List(ctx context.Context, role string) ([]domain.User, error) {
	return s.userRepo.List(ctx, role, listLimit)
}

func (s *service) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.Get(ctx, email)
}

func (s *service) Update(ctx context.Context, caller *domain.User, email string, req domain.UpdateUserRequest) (*domain.User, error) {
	isAdmin := caller.Role == domain.RoleAdmin
	if caller.Email != email && !isAdmin {
		return nil, fmt.Errorf("update user: %w", domain.ErrForbidden)
	}
	if req.Role != nil && !isAdmin {
		return nil, fmt.Errorf("change role: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Role != nil {
		updates[fieldRole] = *req.Role
	}
	if req.AvatarURL != nil {
		updates[fieldAvatarURL] = *req.AvatarURL
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Locale != nil {
		updates[fieldLocale] = *req.Locale
	}
	if req.Points != nil {
		updates[fieldPoints] = *req.Points
	}
	if len(updates) == 0 {
		return s.userRepo.Get(ctx, email)
	}
	if err := s.userRepo.Update(ctx, email, updates); err != nil {
		return nil, err
	}
	return s.userRepo.Get(ctx, email)
}
