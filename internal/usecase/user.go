package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/pkg/utils"
)

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(ur domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: ur}
}

func (uc *userUsecase) GetAll(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound("users not found")
	}
	return users, nil
}

func (uc *userUsecase) Get(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrAuthorization("access denied: user not authorized")
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUsecase) Update(ctx context.Context, actor domain.Actor, id uint, update *domain.User) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrAuthorization("access denied: user not authorized")
	}

	if update.Level != "" {
		if !domain.ValidLevel(update.Level) {
			return nil, domain.ErrValidation("level: %s is not a valid level value", update.Level)
		}
		user.Level = update.Level
	}
	if update.Role != "" {
		// Role is an admin-only field, and nobody becomes admin this way.
		if !actor.IsAdmin() {
			return nil, domain.ErrAuthorization("access denied: only admin can change roles")
		}
		if update.Role != domain.RoleStudent && update.Role != domain.RoleTeacher {
			return nil, domain.ErrValidation("role: %s is not a valid role value", update.Role)
		}
		user.Role = update.Role
	}
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Password != "" {
		hashed, err := utils.HashPassword(update.Password)
		if err != nil {
			return nil, domain.ErrDependency("password hashing failed: %v", err)
		}
		user.Password = hashed
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUsecase) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.ID != id {
		return domain.ErrAuthorization("access denied: user not authorized")
	}
	return uc.userRepo.Delete(ctx, id)
}
