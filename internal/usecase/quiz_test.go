package usecase_test

import (
	"context"
	"errors"
	"testing"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quizFixture struct {
	uc        domain.QuizUsecase
	quizzes   *fakeQuizRepo
	questions *fakeQuestionRepo
	subs      *fakeQuizSubRepo
	lessons   *fakeLessonRepo
	progress  *fakeProgressRepo
	events    *recordingPublisher
}

func newQuizFixture() *quizFixture {
	f := &quizFixture{
		quizzes:   newFakeQuizRepo(),
		questions: newFakeQuestionRepo(),
		subs:      newFakeQuizSubRepo(),
		lessons:   newFakeLessonRepo(),
		progress:  newFakeProgressRepo(),
		events:    &recordingPublisher{},
	}
	f.uc = usecase.NewQuizUsecase(
		f.quizzes, f.questions, f.subs, f.lessons,
		usecase.NewProgressTracker(f.progress), f.events,
	)
	return f
}

func validQuiz() *domain.Quiz {
	return &domain.Quiz{
		Title:    "Irregular verbs",
		Level:    domain.LevelBeginner,
		Category: domain.CategoryGrammar,
	}
}

func validQuestion(text, answer string, marks int) *domain.Question {
	return &domain.Question{
		Question: text,
		Options:  []string{answer, "wrong one", "wrong two"},
		Answer:   answer,
		Marks:    marks,
	}
}

func TestScoreQuiz(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Question: "Past of go?", Options: []string{"went", "goed"}, Answer: "went", Marks: 5},
		{ID: "q2", Question: "Past of eat?", Options: []string{"ate", "eated"}, Answer: "ate", Marks: 3},
		{ID: "q3", Question: "Past of see?", Options: []string{"saw", "seed"}, Answer: "saw", Marks: 2},
	}

	t.Run("partial credit, unanswered scores zero", func(t *testing.T) {
		graded, obtained := usecase.ScoreQuiz(questions, []domain.QuizAnswer{
			{QuestionID: "q1", SelectedOption: "went"},
			{QuestionID: "q3", SelectedOption: "saw"},
		})
		assert.Equal(t, 7, obtained)
		require.Len(t, graded, 3)
		assert.Equal(t, "went", graded[0].SelectedOption)
		assert.Empty(t, graded[1].SelectedOption)
	})

	t.Run("comparison trims whitespace", func(t *testing.T) {
		_, obtained := usecase.ScoreQuiz(questions, []domain.QuizAnswer{
			{QuestionID: "q2", SelectedOption: " ate "},
		})
		assert.Equal(t, 3, obtained)
	})

	t.Run("all wrong", func(t *testing.T) {
		graded, obtained := usecase.ScoreQuiz(questions, []domain.QuizAnswer{
			{QuestionID: "q1", SelectedOption: "goed"},
		})
		assert.Equal(t, 0, obtained)
		assert.Len(t, graded, 3)
	})
}

func TestAddQuestion(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*quizFixture, *domain.Quiz) {
		f := newQuizFixture()
		q := validQuiz()
		require.NoError(t, f.uc.Create(ctx, teacher, q))
		return f, q
	}

	t.Run("total marks accumulate", func(t *testing.T) {
		f, quiz := setup(t)
		require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("Past of go?", "went", 5)))
		require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("Past of eat?", "ate", 3)))

		stored, err := f.quizzes.GetByID(ctx, quiz.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, stored.TotalMarks)
		assert.Len(t, stored.Questions, 2)
	})

	t.Run("duplicate text conflicts case-insensitively", func(t *testing.T) {
		f, quiz := setup(t)
		require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("Past of go?", "went", 5)))
		err := f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("  past OF go?  ", "went", 5))
		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("answer must be listed", func(t *testing.T) {
		f, quiz := setup(t)
		q := validQuestion("Past of go?", "went", 5)
		q.Answer = "gone"
		err := f.uc.AddQuestion(ctx, teacher, quiz.ID, q)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("approved quiz is frozen", func(t *testing.T) {
		f, quiz := setup(t)
		_, err := f.uc.Approve(ctx, admin, quiz.ID)
		require.NoError(t, err)
		err = f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("Past of go?", "went", 5))
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})
}

func TestUpdateQuestionAdjustsTotalMarks(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture()
	quiz := validQuiz()
	require.NoError(t, f.uc.Create(ctx, teacher, quiz))

	q := validQuestion("Past of go?", "went", 5)
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q))

	update := validQuestion("Past of go?", "went", 8)
	_, err := f.uc.UpdateQuestion(ctx, teacher, q.ID, update)
	require.NoError(t, err)

	stored, err := f.quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.TotalMarks)
}

func TestDeleteQuestionAdjustsQuiz(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture()
	quiz := validQuiz()
	require.NoError(t, f.uc.Create(ctx, teacher, quiz))

	q1 := validQuestion("Past of go?", "went", 5)
	q2 := validQuestion("Past of eat?", "ate", 3)
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q1))
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q2))

	require.NoError(t, f.uc.DeleteQuestion(ctx, teacher, q1.ID))

	stored, err := f.quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalMarks)
	assert.Equal(t, []string{q2.ID}, stored.Questions)
}

func TestGetQuizRedactsAnswersForStudents(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture()
	quiz := validQuiz()
	require.NoError(t, f.uc.Create(ctx, teacher, quiz))
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, validQuestion("Past of go?", "went", 5)))
	_, err := f.uc.Approve(ctx, admin, quiz.ID)
	require.NoError(t, err)

	_, questions, err := f.uc.Get(ctx, beginner, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Empty(t, questions[0].Answer)
	assert.NotEmpty(t, questions[0].Options)

	_, questions, err = f.uc.Get(ctx, teacher, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "went", questions[0].Answer)
}

func TestSubmitQuiz(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*quizFixture, *domain.Quiz, *domain.Question) {
		f := newQuizFixture()
		quiz := validQuiz()
		require.NoError(t, f.uc.Create(ctx, teacher, quiz))
		q := validQuestion("Past of go?", "went", 5)
		require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q))
		_, err := f.uc.Approve(ctx, admin, quiz.ID)
		require.NoError(t, err)
		return f, quiz, q
	}

	t.Run("correct answers award scaled weekly points", func(t *testing.T) {
		f, quiz, q := setup(t)
		sub, err := f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{
			{QuestionID: q.ID, SelectedOption: "went"},
		})
		require.NoError(t, err)
		assert.Equal(t, 5, sub.Result)
		assert.Equal(t, 5, sub.TotalMarks)
		assert.True(t, f.events.published(domain.EventQuizSubmitted))

		p, err := f.progress.GetByUser(ctx, beginner.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, p.WeeklyPoints)
	})

	t.Run("pending quiz not open", func(t *testing.T) {
		f := newQuizFixture()
		quiz := validQuiz()
		require.NoError(t, f.uc.Create(ctx, teacher, quiz))
		_, err := f.uc.Submit(ctx, beginner, quiz.ID, nil)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})

	t.Run("level mismatch", func(t *testing.T) {
		f, quiz, q := setup(t)
		_, err := f.uc.Submit(ctx, intermediate, quiz.ID, []domain.QuizAnswer{
			{QuestionID: q.ID, SelectedOption: "went"},
		})
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})

	t.Run("duplicate submission conflicts", func(t *testing.T) {
		f, quiz, q := setup(t)
		_, err := f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{{QuestionID: q.ID, SelectedOption: "went"}})
		require.NoError(t, err)
		_, err = f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{{QuestionID: q.ID, SelectedOption: "went"}})
		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("more answers than questions", func(t *testing.T) {
		f, quiz, q := setup(t)
		_, err := f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{
			{QuestionID: q.ID, SelectedOption: "went"},
			{QuestionID: "bogus", SelectedOption: "x"},
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("ledger failure removes the submission", func(t *testing.T) {
		f, quiz, q := setup(t)
		f.progress.saveErr = errors.New("store offline")
		_, err := f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{{QuestionID: q.ID, SelectedOption: "went"}})
		require.Error(t, err)
		_, err = f.subs.GetByQuizAndStudent(ctx, quiz.ID, beginner.ID)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestDeleteQuizCascades(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture()
	quiz := validQuiz()
	require.NoError(t, f.uc.Create(ctx, teacher, quiz))
	q := validQuestion("Past of go?", "went", 5)
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q))
	_, err := f.uc.Approve(ctx, admin, quiz.ID)
	require.NoError(t, err)
	_, err = f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{{QuestionID: q.ID, SelectedOption: "went"}})
	require.NoError(t, err)

	t.Run("only the owner deletes", func(t *testing.T) {
		err := f.uc.Delete(ctx, otherTeacher, quiz.ID)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})

	t.Run("questions and submissions go with the quiz", func(t *testing.T) {
		require.NoError(t, f.uc.Delete(ctx, teacher, quiz.ID))
		questions, err := f.questions.GetByQuiz(ctx, quiz.ID)
		require.NoError(t, err)
		assert.Empty(t, questions)
		subs, err := f.subs.GetByQuiz(ctx, quiz.ID)
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}

func TestListQuizSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture()
	quiz := validQuiz()
	require.NoError(t, f.uc.Create(ctx, teacher, quiz))
	q := validQuestion("Past of go?", "went", 5)
	require.NoError(t, f.uc.AddQuestion(ctx, teacher, quiz.ID, q))
	_, err := f.uc.Approve(ctx, admin, quiz.ID)
	require.NoError(t, err)
	_, err = f.uc.Submit(ctx, beginner, quiz.ID, []domain.QuizAnswer{{QuestionID: q.ID, SelectedOption: "went"}})
	require.NoError(t, err)

	subs, err := f.uc.ListSubmissions(ctx, teacher, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	subs, err = f.uc.ListSubmissions(ctx, admin, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = f.uc.ListSubmissions(ctx, otherTeacher, quiz.ID)
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))

	_, err = f.uc.ListSubmissions(ctx, beginner, quiz.ID)
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))
}
