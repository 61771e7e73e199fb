package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
)

const (
	// Points awarded to the permanent bucket for each watched lesson.
	lessonWatchPoints = 3
	// Graded marks are scaled into weekly points.
	weeklyScale = 5
)

// ProgressTracker owns the per-student ledger used by every workflow that
// awards or adjusts points, and evaluates prerequisite gates against it.
type ProgressTracker struct {
	repo domain.ProgressRepository
}

func NewProgressTracker(repo domain.ProgressRepository) *ProgressTracker {
	return &ProgressTracker{repo: repo}
}

// GetOrCreate lazily creates a zero-point ledger on first need.
func (t *ProgressTracker) GetOrCreate(ctx context.Context, userID uint) (*domain.Progress, error) {
	progress, err := t.repo.GetByUser(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	progress = &domain.Progress{User: userID}
	if err := t.repo.Create(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CheckPrerequisite blocks the actor unless the prerequisite lesson (when
// set) is part of their completed set. A brand-new student gets a ledger and
// is blocked: they cannot have watched anything yet.
func (t *ProgressTracker) CheckPrerequisite(ctx context.Context, actor domain.Actor, prerequisiteLesson string) error {
	if prerequisiteLesson == "" {
		return nil
	}
	progress, err := t.GetOrCreate(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !progress.HasCompleted(prerequisiteLesson) {
		return domain.ErrAuthorization("complete the prerequisite lesson first")
	}
	return nil
}

// ApplyWeeklyDelta adjusts the weekly bucket by delta, clamping at zero as a
// safety net against drift.
func (t *ProgressTracker) ApplyWeeklyDelta(ctx context.Context, userID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	progress, err := t.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	progress.WeeklyPoints += delta
	if progress.WeeklyPoints < 0 {
		progress.WeeklyPoints = 0
	}
	return t.repo.Save(ctx, progress)
}
