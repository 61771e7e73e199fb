package usecase

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/pkg/sanitize"

	"github.com/google/uuid"
)

const maxFeedbackLength = 1000

type feedbackUsecase struct {
	feedbackRepo domain.FeedbackRepository
	lessonRepo   domain.LessonRepository
}

func NewFeedbackUsecase(fr domain.FeedbackRepository, lr domain.LessonRepository) domain.FeedbackUsecase {
	return &feedbackUsecase{feedbackRepo: fr, lessonRepo: lr}
}

func cleanComment(content string) (string, error) {
	safe := sanitize.HTML(content)
	if safe == "" {
		return "", domain.ErrValidation("comment cannot be empty")
	}
	if len(safe) > maxFeedbackLength {
		return "", domain.ErrValidation("comment must be at most %d characters", maxFeedbackLength)
	}
	return safe, nil
}

func (uc *feedbackUsecase) Create(ctx context.Context, actor domain.Actor, lessonID, content string) (*domain.Feedback, error) {
	safe, err := cleanComment(content)
	if err != nil {
		return nil, err
	}
	lesson, err := uc.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, domain.ErrNotFound("the lesson you are trying to comment on does not exist")
	}

	feedback := &domain.Feedback{
		Lesson:  lesson.ID,
		User:    actor.ID,
		Content: safe,
	}
	if err := uc.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	// Denormalized back-reference so lesson reads can populate comments.
	if err := uc.lessonRepo.PushFeedback(ctx, lesson.ID, feedback.ID); err != nil {
		if derr := uc.feedbackRepo.Delete(ctx, feedback.ID); derr != nil {
			return nil, domain.ErrDependency("lesson update failed and feedback rollback failed: %v", derr)
		}
		return nil, err
	}
	return feedback, nil
}

func (uc *feedbackUsecase) ListByLesson(ctx context.Context, lessonID string) ([]domain.Feedback, error) {
	if _, err := uc.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}
	return uc.feedbackRepo.GetByLesson(ctx, lessonID)
}

func (uc *feedbackUsecase) Update(ctx context.Context, actor domain.Actor, id, content string) (*domain.Feedback, error) {
	feedback, err := uc.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback.User != actor.ID {
		return nil, domain.ErrAuthorization("access denied: users can only update their own comments")
	}
	safe, err := cleanComment(content)
	if err != nil {
		return nil, err
	}

	feedback.Content = safe
	if err := uc.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (uc *feedbackUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	feedback, err := uc.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Authors delete their own; teachers and admins moderate.
	if actor.IsStudent() && feedback.User != actor.ID {
		return domain.ErrAuthorization("access denied: students can only delete their own comments")
	}
	return uc.feedbackRepo.Delete(ctx, feedback.ID)
}

func (uc *feedbackUsecase) CreateReply(ctx context.Context, actor domain.Actor, feedbackID, content string) (*domain.Feedback, error) {
	safe, err := cleanComment(content)
	if err != nil {
		return nil, err
	}
	feedback, err := uc.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, domain.ErrNotFound("the comment you are trying to reply to does not exist")
	}

	feedback.Replies = append(feedback.Replies, domain.Reply{
		ID:       uuid.NewString(),
		User:     actor.ID,
		Content:  safe,
		PostedAt: time.Now(),
	})
	if err := uc.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (uc *feedbackUsecase) UpdateReply(ctx context.Context, actor domain.Actor, feedbackID, replyID, content string) (*domain.Feedback, error) {
	feedback, err := uc.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	idx := replyIndex(feedback, replyID)
	if idx < 0 {
		return nil, domain.ErrNotFound("reply not found")
	}
	if feedback.Replies[idx].User != actor.ID {
		return nil, domain.ErrAuthorization("access denied: users can only update their own replies")
	}
	safe, err := cleanComment(content)
	if err != nil {
		return nil, err
	}

	feedback.Replies[idx].Content = safe
	if err := uc.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (uc *feedbackUsecase) DeleteReply(ctx context.Context, actor domain.Actor, feedbackID, replyID string) error {
	feedback, err := uc.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	idx := replyIndex(feedback, replyID)
	if idx < 0 {
		return domain.ErrNotFound("reply not found")
	}
	if actor.IsStudent() && feedback.Replies[idx].User != actor.ID {
		return domain.ErrAuthorization("access denied: students can only delete their own replies")
	}

	feedback.Replies = append(feedback.Replies[:idx], feedback.Replies[idx+1:]...)
	return uc.feedbackRepo.Update(ctx, feedback)
}

func replyIndex(f *domain.Feedback, replyID string) int {
	for i := range f.Replies {
		if f.Replies[i].ID == replyID {
			return i
		}
	}
	return -1
}
