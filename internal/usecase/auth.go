package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/pkg/utils"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(ur domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: ur}
}

func (uc *authUsecase) Register(ctx context.Context, user *domain.User) error {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return domain.ErrValidation("input all fields")
	}
	if user.Level == "" {
		user.Level = domain.LevelBeginner
	}
	if !domain.ValidLevel(user.Level) {
		return domain.ErrValidation("level: %s is not a valid level value", user.Level)
	}
	switch user.Role {
	case "":
		user.Role = domain.RoleStudent
	case domain.RoleStudent, domain.RoleTeacher:
	default:
		// Admins are provisioned out of band, never via registration.
		return domain.ErrValidation("role: %s is not a valid role value", user.Role)
	}

	if existing, _ := uc.userRepo.GetByEmail(ctx, user.Email); existing != nil {
		return domain.ErrConflict("user with this email already exists")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return domain.ErrDependency("password hashing failed: %v", err)
	}
	user.Password = hashed
	user.Provider = domain.ProviderEmail

	return uc.userRepo.Create(ctx, user)
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user.Provider != domain.ProviderEmail {
		return "", nil, domain.ErrAuthentication("invalid credentials")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, domain.ErrAuthentication("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), string(user.Level))
	if err != nil {
		return "", nil, domain.ErrDependency("token generation failed: %v", err)
	}
	return token, user, nil
}

func (uc *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil
	}
	token := utils.GenerateResetToken()
	go utils.SendEmail(user.Email, "Password Reset Request", "Here is your password reset token: "+token)
	return nil
}

func (uc *authUsecase) FindOrCreateOAuth(ctx context.Context, provider domain.AuthProvider, externalID, name, email string) (string, *domain.User, error) {
	if provider != domain.ProviderGoogle && provider != domain.ProviderFacebook {
		return "", nil, domain.ErrValidation("provider: %s is not a valid oauth provider", provider)
	}
	if externalID == "" || email == "" {
		return "", nil, domain.ErrValidation("oauth profile is missing required fields")
	}

	user, err := uc.userRepo.GetByProvider(ctx, provider, externalID)
	if domain.IsKind(err, domain.KindNotFound) {
		user = &domain.User{
			Name:     name,
			Email:    email,
			Role:     domain.RoleStudent,
			Level:    domain.LevelBeginner,
			Provider: provider,
		}
		if provider == domain.ProviderGoogle {
			user.GoogleID = externalID
		} else {
			user.FacebookID = externalID
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), string(user.Level))
	if err != nil {
		return "", nil, domain.ErrDependency("token generation failed: %v", err)
	}
	return token, user, nil
}

func (uc *authUsecase) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
