package usecase_test

import (
	"context"
	"strings"
	"testing"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackFixture struct {
	uc       domain.FeedbackUsecase
	feedback *fakeFeedbackRepo
	lessons  *fakeLessonRepo
	lesson   *domain.Lesson
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	f := &feedbackFixture{
		feedback: newFakeFeedbackRepo(),
		lessons:  newFakeLessonRepo(),
	}
	f.uc = usecase.NewFeedbackUsecase(f.feedback, f.lessons)
	f.lesson = &domain.Lesson{Title: "Basics", Level: domain.LevelBeginner, Category: domain.CategoryGrammar, URL: "https://videos/1"}
	require.NoError(t, f.lessons.Create(context.Background(), f.lesson))
	return f
}

func TestCreateFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("comment is sanitized and linked to the lesson", func(t *testing.T) {
		f := newFeedbackFixture(t)
		fb, err := f.uc.Create(ctx, beginner, f.lesson.ID, `<img src=x onerror=alert(1)>Great lesson!`)
		require.NoError(t, err)
		assert.Equal(t, "Great lesson!", fb.Content)
		assert.Equal(t, beginner.ID, fb.User)

		lesson, err := f.lessons.GetByID(ctx, f.lesson.ID)
		require.NoError(t, err)
		assert.Contains(t, lesson.Feedbacks, fb.ID)
	})

	t.Run("empty after sanitization", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.uc.Create(ctx, beginner, f.lesson.ID, `<script>alert(1)</script>`)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("too long", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.uc.Create(ctx, beginner, f.lesson.ID, strings.Repeat("a", 1001))
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("missing lesson", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.uc.Create(ctx, beginner, "missing", "Great lesson!")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestUpdateFeedback(t *testing.T) {
	ctx := context.Background()
	f := newFeedbackFixture(t)
	fb, err := f.uc.Create(ctx, beginner, f.lesson.ID, "First impression")
	require.NoError(t, err)

	t.Run("author edits", func(t *testing.T) {
		updated, err := f.uc.Update(ctx, beginner, fb.ID, "Second impression")
		require.NoError(t, err)
		assert.Equal(t, "Second impression", updated.Content)
	})

	t.Run("others cannot edit", func(t *testing.T) {
		_, err := f.uc.Update(ctx, intermediate, fb.ID, "Hijacked")
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})
}

func TestDeleteFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("students only delete their own", func(t *testing.T) {
		f := newFeedbackFixture(t)
		fb, err := f.uc.Create(ctx, beginner, f.lesson.ID, "First impression")
		require.NoError(t, err)
		err = f.uc.Delete(ctx, intermediate, fb.ID)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
		assert.NoError(t, f.uc.Delete(ctx, beginner, fb.ID))
	})

	t.Run("teachers moderate any comment", func(t *testing.T) {
		f := newFeedbackFixture(t)
		fb, err := f.uc.Create(ctx, beginner, f.lesson.ID, "First impression")
		require.NoError(t, err)
		assert.NoError(t, f.uc.Delete(ctx, teacher, fb.ID))
	})
}

func TestReplies(t *testing.T) {
	ctx := context.Background()
	f := newFeedbackFixture(t)
	fb, err := f.uc.Create(ctx, beginner, f.lesson.ID, "Is the past tense covered?")
	require.NoError(t, err)

	t.Run("reply is appended with an id", func(t *testing.T) {
		updated, err := f.uc.CreateReply(ctx, teacher, fb.ID, "Yes, from minute ten.")
		require.NoError(t, err)
		require.Len(t, updated.Replies, 1)
		assert.NotEmpty(t, updated.Replies[0].ID)
		assert.Equal(t, teacher.ID, updated.Replies[0].User)
	})

	t.Run("only the reply author edits it", func(t *testing.T) {
		stored, err := f.feedback.GetByID(ctx, fb.ID)
		require.NoError(t, err)
		replyID := stored.Replies[0].ID

		_, err = f.uc.UpdateReply(ctx, beginner, fb.ID, replyID, "Edited by someone else")
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))

		updated, err := f.uc.UpdateReply(ctx, teacher, fb.ID, replyID, "Yes, from minute twelve.")
		require.NoError(t, err)
		assert.Equal(t, "Yes, from minute twelve.", updated.Replies[0].Content)
	})

	t.Run("students cannot delete another user's reply", func(t *testing.T) {
		stored, err := f.feedback.GetByID(ctx, fb.ID)
		require.NoError(t, err)
		replyID := stored.Replies[0].ID

		err = f.uc.DeleteReply(ctx, beginner, fb.ID, replyID)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
		assert.NoError(t, f.uc.DeleteReply(ctx, teacher, fb.ID, replyID))
	})

	t.Run("unknown reply", func(t *testing.T) {
		_, err := f.uc.UpdateReply(ctx, teacher, fb.ID, "missing", "text")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
