package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
)

type announcementUsecase struct {
	repo domain.AnnouncementRepository
}

func NewAnnouncementUsecase(ar domain.AnnouncementRepository) domain.AnnouncementUsecase {
	return &announcementUsecase{repo: ar}
}

func validateAnnouncementFields(a *domain.Announcement) error {
	if a.Title == "" || a.Content == "" {
		return domain.ErrValidation("input all fields")
	}
	if !domain.ValidLevel(a.Level) {
		return domain.ErrValidation("level: %s is not a valid level value", a.Level)
	}
	return nil
}

func (uc *announcementUsecase) Create(ctx context.Context, actor domain.Actor, a *domain.Announcement) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return err
	}
	if err := validateAnnouncementFields(a); err != nil {
		return err
	}
	a.CreatedBy = actor.ID
	return uc.repo.Create(ctx, a)
}

func (uc *announcementUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.Announcement, error) {
	scope, err := domain.ScopeFor(actor, false)
	if err != nil {
		return nil, err
	}
	announcements, err := uc.repo.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, domain.ErrNotFound("announcements are yet to be made")
	}
	return announcements, nil
}

func (uc *announcementUsecase) Update(ctx context.Context, actor domain.Actor, id string, update *domain.Announcement) (*domain.Announcement, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsTeacher() {
		if err := domain.RequireOwner(actor, a.CreatedBy); err != nil {
			return nil, err
		}
	}
	if err := validateAnnouncementFields(update); err != nil {
		return nil, err
	}

	a.Title = update.Title
	a.Content = update.Content
	a.Level = update.Level
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *announcementUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsTeacher() {
		if err := domain.RequireOwner(actor, a.CreatedBy); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, a.ID)
}
