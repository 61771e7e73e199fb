package usecase

import (
	"context"
	"strings"

	"lingolearn-backend/internal/domain"
)

const (
	minQuizTitleLength       = 3
	maxQuizTitleLength       = 100
	maxQuizDescriptionLength = 200
	maxQuestionTextLength    = 500
	maxOptionLength          = 200
	minOptionCount           = 2
)

type quizUsecase struct {
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	quizSubRepo  domain.QuizSubmissionRepository
	lessonRepo   domain.LessonRepository
	tracker      *ProgressTracker
	events       domain.EventPublisher
}

func NewQuizUsecase(
	qr domain.QuizRepository,
	qnr domain.QuestionRepository,
	qsr domain.QuizSubmissionRepository,
	lr domain.LessonRepository,
	tracker *ProgressTracker,
	events domain.EventPublisher,
) domain.QuizUsecase {
	return &quizUsecase{
		quizRepo:     qr,
		questionRepo: qnr,
		quizSubRepo:  qsr,
		lessonRepo:   lr,
		tracker:      tracker,
		events:       events,
	}
}

func (uc *quizUsecase) validateFields(ctx context.Context, q *domain.Quiz) error {
	if q.Title == "" || q.Category == "" {
		return domain.ErrValidation("input all fields")
	}
	if len(q.Title) < minQuizTitleLength || len(q.Title) > maxQuizTitleLength {
		return domain.ErrValidation("title must be between %d and %d characters", minQuizTitleLength, maxQuizTitleLength)
	}
	if len(q.Description) > maxQuizDescriptionLength {
		return domain.ErrValidation("description must be at most %d characters", maxQuizDescriptionLength)
	}
	if !domain.ValidLevel(q.Level) {
		return domain.ErrValidation("level: %s is not a valid level value", q.Level)
	}
	if !domain.ValidCategory(q.Category) {
		return domain.ErrValidation("category: %s is not a valid category value", q.Category)
	}
	if q.PrerequisiteLesson != "" {
		lesson, err := uc.lessonRepo.GetByID(ctx, q.PrerequisiteLesson)
		if err != nil {
			return err
		}
		if lesson.Level != q.Level {
			return domain.ErrValidation("prerequisite lesson must share the quiz level")
		}
	}
	return nil
}

func validateQuestionFields(q *domain.Question) error {
	if q.Question == "" || len(q.Options) == 0 || q.Answer == "" {
		return domain.ErrValidation("input all fields")
	}
	if len(q.Question) > maxQuestionTextLength {
		return domain.ErrValidation("question must be at most %d characters", maxQuestionTextLength)
	}
	if q.Marks < 0 {
		return domain.ErrValidation("marks must be a non-negative integer")
	}
	if len(q.Options) < minOptionCount {
		return domain.ErrValidation("minimum %d options are required", minOptionCount)
	}
	seen := make(map[string]bool, len(q.Options))
	answerListed := false
	for _, opt := range q.Options {
		if opt == "" || len(opt) > maxOptionLength {
			return domain.ErrValidation("options must be between 1 and %d characters", maxOptionLength)
		}
		if seen[opt] {
			return domain.ErrValidation("options must be unique")
		}
		seen[opt] = true
		if opt == q.Answer {
			answerListed = true
		}
	}
	if !answerListed {
		return domain.ErrValidation("answer is not included in the options")
	}
	return nil
}

func (uc *quizUsecase) Create(ctx context.Context, actor domain.Actor, q *domain.Quiz) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	if err := uc.validateFields(ctx, q); err != nil {
		return err
	}
	q.Status = domain.StatusPending
	q.TotalMarks = 0
	q.Questions = nil
	q.CreatedBy = actor.ID
	return uc.quizRepo.Create(ctx, q)
}

func (uc *quizUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.Quiz, error) {
	scope, err := domain.ScopeFor(actor, true)
	if err != nil {
		return nil, err
	}
	quizzes, err := uc.quizRepo.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		if actor.IsTeacher() {
			return nil, domain.ErrNotFound("you have not created any quiz yet")
		}
		return nil, domain.ErrNotFound("quiz not found")
	}
	return quizzes, nil
}

func (uc *quizUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Quiz, []domain.Question, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	switch actor.Role {
	case domain.RoleStudent:
		if quiz.Status != domain.StatusApproved || quiz.Level != actor.Level {
			return nil, nil, domain.ErrNotFound("quiz not found")
		}
		// Viewing the questions is gated on the prerequisite lesson.
		if err := uc.tracker.CheckPrerequisite(ctx, actor, quiz.PrerequisiteLesson); err != nil {
			return nil, nil, err
		}
	case domain.RoleTeacher:
		if err := domain.RequireOwner(actor, quiz.CreatedBy); err != nil {
			return nil, nil, err
		}
	case domain.RoleAdmin:
	default:
		return nil, nil, domain.ErrAuthorization("access denied: %s role is not authorized", actor.Role)
	}

	questions, err := uc.questionRepo.GetByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, nil, err
	}
	if actor.IsStudent() {
		// Students never see the correct answers.
		redacted := make([]domain.Question, len(questions))
		for i, q := range questions {
			q.Answer = ""
			redacted[i] = q
		}
		questions = redacted
	}
	return quiz, questions, nil
}

func (uc *quizUsecase) Update(ctx context.Context, actor domain.Actor, id string, update *domain.Quiz) (*domain.Quiz, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return nil, err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, quiz.CreatedBy); err != nil {
		return nil, err
	}
	if err := domain.RequireEditable(quiz.Status); err != nil {
		return nil, err
	}
	if err := uc.validateFields(ctx, update); err != nil {
		return nil, err
	}

	quiz.Title = update.Title
	quiz.Description = update.Description
	quiz.Level = update.Level
	quiz.Category = update.Category
	quiz.PrerequisiteLesson = update.PrerequisiteLesson
	if err := uc.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (uc *quizUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, quiz.CreatedBy); err != nil {
		return err
	}
	if err := uc.quizRepo.Delete(ctx, quiz.ID); err != nil {
		return err
	}
	// Cascade: questions and graded submissions go with the quiz.
	if err := uc.questionRepo.DeleteByQuiz(ctx, quiz.ID); err != nil {
		return err
	}
	return uc.quizSubRepo.DeleteByQuiz(ctx, quiz.ID)
}

// resolveOwnedQuiz loads a quiz and applies the ownership and state gates
// shared by every question mutation.
func (uc *quizUsecase) resolveOwnedQuiz(ctx context.Context, actor domain.Actor, quizID string) (*domain.Quiz, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, quiz.CreatedBy); err != nil {
		return nil, err
	}
	if err := domain.RequireEditable(quiz.Status); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (uc *quizUsecase) AddQuestion(ctx context.Context, actor domain.Actor, quizID string, q *domain.Question) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	quiz, err := uc.resolveOwnedQuiz(ctx, actor, quizID)
	if err != nil {
		return err
	}
	if err := validateQuestionFields(q); err != nil {
		return err
	}
	existing, err := uc.questionRepo.GetByQuiz(ctx, quiz.ID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if strings.EqualFold(strings.TrimSpace(other.Question), strings.TrimSpace(q.Question)) {
			return domain.ErrConflict("this question already exists in the quiz")
		}
	}

	q.Quiz = quiz.ID
	if err := uc.questionRepo.Create(ctx, q); err != nil {
		return err
	}
	quiz.Questions = append(quiz.Questions, q.ID)
	quiz.TotalMarks += q.Marks
	if err := uc.quizRepo.Update(ctx, quiz); err != nil {
		// Compensate so the question list and totalMarks stay consistent.
		if derr := uc.questionRepo.Delete(ctx, q.ID); derr != nil {
			return domain.ErrDependency("quiz update failed and question rollback failed: %v", derr)
		}
		return err
	}
	return nil
}

func (uc *quizUsecase) UpdateQuestion(ctx context.Context, actor domain.Actor, questionID string, update *domain.Question) (*domain.Question, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return nil, err
	}
	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	quiz, err := uc.resolveOwnedQuiz(ctx, actor, question.Quiz)
	if err != nil {
		return nil, err
	}
	if err := validateQuestionFields(update); err != nil {
		return nil, err
	}

	oldMarks := question.Marks
	prev := *question
	question.Question = update.Question
	question.Options = update.Options
	question.Answer = update.Answer
	question.Marks = update.Marks
	if err := uc.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	if update.Marks != oldMarks {
		quiz.TotalMarks += update.Marks - oldMarks
		if err := uc.quizRepo.Update(ctx, quiz); err != nil {
			if rerr := uc.questionRepo.Update(ctx, &prev); rerr != nil {
				return nil, domain.ErrDependency("quiz update failed and question rollback failed: %v", rerr)
			}
			return nil, err
		}
	}
	return question, nil
}

func (uc *quizUsecase) DeleteQuestion(ctx context.Context, actor domain.Actor, questionID string) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	quiz, err := uc.resolveOwnedQuiz(ctx, actor, question.Quiz)
	if err != nil {
		return err
	}
	if err := uc.questionRepo.Delete(ctx, question.ID); err != nil {
		return err
	}

	remaining := quiz.Questions[:0]
	for _, id := range quiz.Questions {
		if id != question.ID {
			remaining = append(remaining, id)
		}
	}
	quiz.Questions = remaining
	quiz.TotalMarks -= question.Marks
	if quiz.TotalMarks < 0 {
		quiz.TotalMarks = 0
	}
	return uc.quizRepo.Update(ctx, quiz)
}

func (uc *quizUsecase) Approve(ctx context.Context, actor domain.Actor, id string) (*domain.Quiz, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Status == domain.StatusApproved {
		return nil, domain.ErrValidation("quiz is already approved")
	}
	quiz.Status = domain.StatusApproved
	if err := uc.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	publish(uc.events, domain.EventQuizApproved, map[string]any{"quiz": quiz.ID})
	return quiz, nil
}

func (uc *quizUsecase) Reject(ctx context.Context, actor domain.Actor, id string) (*domain.Quiz, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Status == domain.StatusRejected {
		return nil, domain.ErrValidation("quiz is already rejected")
	}
	quiz.Status = domain.StatusRejected
	if err := uc.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	publish(uc.events, domain.EventQuizRejected, map[string]any{"quiz": quiz.ID})
	return quiz, nil
}

// ScoreQuiz grades a submission against the quiz's questions. Unanswered
// questions score zero; comparison is on trimmed text.
func ScoreQuiz(questions []domain.Question, answers []domain.QuizAnswer) ([]domain.AnsweredQuestion, int) {
	selected := make(map[string]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOption
	}

	graded := make([]domain.AnsweredQuestion, 0, len(questions))
	obtained := 0
	for _, q := range questions {
		choice := selected[q.ID]
		if strings.TrimSpace(choice) == strings.TrimSpace(q.Answer) && strings.TrimSpace(choice) != "" {
			obtained += q.Marks
		}
		graded = append(graded, domain.AnsweredQuestion{
			QuestionID:     q.ID,
			Question:       q.Question,
			Options:        q.Options,
			SelectedOption: choice,
			Answer:         q.Answer,
			Marks:          q.Marks,
		})
	}
	return graded, obtained
}

func (uc *quizUsecase) Submit(ctx context.Context, actor domain.Actor, id string, answers []domain.QuizAnswer) (*domain.QuizSubmission, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Status != domain.StatusApproved {
		return nil, domain.ErrAuthorization("quiz is not open for submissions")
	}
	if quiz.Level != actor.Level {
		return nil, domain.ErrAuthorization("quiz is not available for your level")
	}
	if err := uc.tracker.CheckPrerequisite(ctx, actor, quiz.PrerequisiteLesson); err != nil {
		return nil, err
	}

	if existing, err := uc.quizSubRepo.GetByQuizAndStudent(ctx, quiz.ID, actor.ID); err == nil && existing != nil {
		return nil, domain.ErrConflict("you have already submitted this quiz")
	} else if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	questions, err := uc.questionRepo.GetByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	if len(answers) > len(questions) {
		return nil, domain.ErrValidation("more answers than questions")
	}

	graded, obtained := ScoreQuiz(questions, answers)
	submission := &domain.QuizSubmission{
		Quiz:       quiz.ID,
		Student:    actor.ID,
		Answers:    graded,
		Result:     obtained,
		TotalMarks: quiz.TotalMarks,
	}
	if err := uc.quizSubRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	if err := uc.tracker.ApplyWeeklyDelta(ctx, actor.ID, obtained*weeklyScale); err != nil {
		// Compensate: without the points the submission must not stand.
		if derr := uc.quizSubRepo.Delete(ctx, submission.ID); derr != nil {
			return nil, domain.ErrDependency("points update failed and submission rollback failed: %v", derr)
		}
		return nil, err
	}

	publish(uc.events, domain.EventQuizSubmitted, map[string]any{
		"quiz":    quiz.ID,
		"student": actor.ID,
		"result":  obtained,
	})
	return submission, nil
}

func (uc *quizUsecase) ListSubmissions(ctx context.Context, actor domain.Actor, id string) ([]domain.QuizSubmission, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return nil, err
	}
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsTeacher() {
		if err := domain.RequireOwner(actor, quiz.CreatedBy); err != nil {
			return nil, err
		}
	}
	return uc.quizSubRepo.GetByQuiz(ctx, quiz.ID)
}

func (uc *quizUsecase) GetOwnSubmission(ctx context.Context, actor domain.Actor, id string) (*domain.QuizSubmission, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	if _, err := uc.quizRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.quizSubRepo.GetByQuizAndStudent(ctx, id, actor.ID)
}
