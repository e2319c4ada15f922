package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type UserService interface {
	Create(req dto.CreateUserDTO) (*dto.UserResponse, error)
	GetByUsername(username string) (*dto.UserResponse, error)
	// Update applies the non-nil fields. allowRoleChange is false on
	// self-service updates so a user cannot promote themselves.
	Update(ctx context.Context, username string, req dto.UpdateUserDTO, allowRoleChange bool) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
	List(search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)
}

type userService struct {
	userRepo         repository.UserRepository
	confirmationRepo repository.ConfirmationRepository
}

func NewUserService(userRepo repository.UserRepository, confirmationRepo repository.ConfirmationRepository) UserService {
	return &userService{
		userRepo:         userRepo,
		confirmationRepo: confirmationRepo,
	}
}

func (s *userService) Create(req dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := s.checkUnique(req.Username, req.Email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return dto.UserFromModel(user), nil
}

func (s *userService) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO, allowRoleChange bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		if err := s.checkUnique(*req.Username, "", user.ID); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkUnique("", *req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRoleChange {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// The user's state changed, so outstanding confirmation codes stop
	// working.
	if err := s.confirmationRepo.Invalidate(ctx, user.ID); err != nil {
		return nil, err
	}

	return dto.UserFromModel(user), nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	return s.confirmationRepo.Invalidate(ctx, user.ID)
}

func (s *userService) List(search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.UserFromModel(&users[i]))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}

// checkUnique rejects username/email values already held by another user.
// excludeID skips the user being updated.
func (s *userService) checkUnique(username, email, excludeID string) error {
	if username != "" {
		existing, err := s.userRepo.FindByUsername(username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return ErrNameInUse
		}
	}
	if email != "" {
		existing, err := s.userRepo.FindByEmail(email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return ErrEmailInUse
		}
	}
	return nil
}
