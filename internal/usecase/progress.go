package usecase

import (
	"context"
	"log"

	"lingolearn-backend/internal/domain"
)

type progressUsecase struct {
	lessonRepo domain.LessonRepository
	tracker    *ProgressTracker
	events     domain.EventPublisher
}

func NewProgressUsecase(lr domain.LessonRepository, tracker *ProgressTracker, events domain.EventPublisher) domain.ProgressUsecase {
	return &progressUsecase{lessonRepo: lr, tracker: tracker, events: events}
}

func (uc *progressUsecase) MarkLessonWatched(ctx context.Context, actor domain.Actor, lessonID string) (*domain.Progress, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}

	lesson, err := uc.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	progress, err := uc.tracker.GetOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if progress.HasCompleted(lesson.ID) {
		return nil, domain.ErrConflict("you have already watched this lesson")
	}

	progress.CompletedLessons = append(progress.CompletedLessons, lesson.ID)
	progress.PermanentPoints += lessonWatchPoints
	if err := uc.tracker.repo.Save(ctx, progress); err != nil {
		return nil, err
	}

	publish(uc.events, domain.EventLessonWatched, map[string]any{
		"user":   actor.ID,
		"lesson": lesson.ID,
	})
	return progress, nil
}

func (uc *progressUsecase) GetOwn(ctx context.Context, actor domain.Actor) (*domain.Progress, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	return uc.tracker.GetOrCreate(ctx, actor.ID)
}

func (uc *progressUsecase) Leaderboard(ctx context.Context, limit int) ([]domain.Progress, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.tracker.repo.Leaderboard(ctx, limit)
}

func (uc *progressUsecase) ResetWeekly(ctx context.Context, actor domain.Actor) error {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	return uc.tracker.repo.ResetWeekly(ctx)
}

// publish pushes a domain event and only logs on failure; no workflow
// depends on the broker being up.
func publish(events domain.EventPublisher, eventType string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s: %v", eventType, err)
	}
}
