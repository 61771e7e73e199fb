package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
)

type lessonUsecase struct {
	lessonRepo domain.LessonRepository
}

func NewLessonUsecase(lr domain.LessonRepository) domain.LessonUsecase {
	return &lessonUsecase{lessonRepo: lr}
}

func validateLessonFields(l *domain.Lesson) error {
	if l.Title == "" || l.Category == "" || l.URL == "" {
		return domain.ErrValidation("input all fields")
	}
	if !domain.ValidLevel(l.Level) {
		return domain.ErrValidation("level: %s is not a valid level value", l.Level)
	}
	if !domain.ValidCategory(l.Category) {
		return domain.ErrValidation("category: %s is not a valid category value", l.Category)
	}
	if len(l.Description) > 200 {
		return domain.ErrValidation("description must be at most 200 characters")
	}
	return nil
}

func (uc *lessonUsecase) Create(ctx context.Context, actor domain.Actor, lesson *domain.Lesson) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return err
	}
	if err := validateLessonFields(lesson); err != nil {
		return err
	}
	lesson.CreatedBy = actor.ID
	return uc.lessonRepo.Create(ctx, lesson)
}

func (uc *lessonUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.Lesson, error) {
	scope, err := domain.ScopeFor(actor, false)
	if err != nil {
		return nil, err
	}
	lessons, err := uc.lessonRepo.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		if actor.IsTeacher() {
			return nil, domain.ErrNotFound("you have not created any lesson yet")
		}
		return nil, domain.ErrNotFound("lessons not found")
	}
	return lessons, nil
}

func (uc *lessonUsecase) Update(ctx context.Context, actor domain.Actor, id string, update *domain.Lesson) (*domain.Lesson, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return nil, err
	}
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Teachers may only touch their own lessons; admins moderate any.
	if actor.IsTeacher() {
		if err := domain.RequireOwner(actor, lesson.CreatedBy); err != nil {
			return nil, err
		}
	}
	if err := validateLessonFields(update); err != nil {
		return nil, err
	}

	lesson.Title = update.Title
	lesson.Description = update.Description
	lesson.Level = update.Level
	lesson.Category = update.Category
	lesson.URL = update.URL
	if err := uc.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (uc *lessonUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return err
	}
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsTeacher() {
		if err := domain.RequireOwner(actor, lesson.CreatedBy); err != nil {
			return err
		}
	}
	return uc.lessonRepo.Delete(ctx, lesson.ID)
}
