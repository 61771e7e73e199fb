package usecase

import (
	"context"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/pkg/sanitize"
)

const (
	maxAssignmentMarks    = 25
	maxQuestionLength     = 250
	minSubmissionLength   = 10
	maxSubmissionLength   = 5000
	maxMarkFeedbackLength = 200
)

type assignmentUsecase struct {
	assignmentRepo domain.AssignmentRepository
	submissionRepo domain.SubmissionRepository
	lessonRepo     domain.LessonRepository
	tracker        *ProgressTracker
	events         domain.EventPublisher
}

func NewAssignmentUsecase(
	ar domain.AssignmentRepository,
	sr domain.SubmissionRepository,
	lr domain.LessonRepository,
	tracker *ProgressTracker,
	events domain.EventPublisher,
) domain.AssignmentUsecase {
	return &assignmentUsecase{
		assignmentRepo: ar,
		submissionRepo: sr,
		lessonRepo:     lr,
		tracker:        tracker,
		events:         events,
	}
}

func (uc *assignmentUsecase) validateFields(ctx context.Context, a *domain.Assignment) error {
	if a.Title == "" || a.Description == "" || a.Question == "" {
		return domain.ErrValidation("input all fields")
	}
	if !domain.ValidLevel(a.Level) {
		return domain.ErrValidation("level: %s is not a valid level value", a.Level)
	}
	if len(a.Question) > maxQuestionLength {
		return domain.ErrValidation("question must be at most %d characters", maxQuestionLength)
	}
	if a.Marks < 0 || a.Marks > maxAssignmentMarks {
		return domain.ErrValidation("marks must be between 0 and %d", maxAssignmentMarks)
	}
	if a.PrerequisiteLesson != "" {
		lesson, err := uc.lessonRepo.GetByID(ctx, a.PrerequisiteLesson)
		if err != nil {
			return err
		}
		if lesson.Level != a.Level {
			return domain.ErrValidation("prerequisite lesson must share the assignment level")
		}
	}
	return nil
}

func (uc *assignmentUsecase) Create(ctx context.Context, actor domain.Actor, a *domain.Assignment) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	if err := uc.validateFields(ctx, a); err != nil {
		return err
	}
	a.Status = domain.StatusPending
	a.CreatedBy = actor.ID
	return uc.assignmentRepo.Create(ctx, a)
}

func (uc *assignmentUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.Assignment, error) {
	scope, err := domain.ScopeFor(actor, true)
	if err != nil {
		return nil, err
	}
	assignments, err := uc.assignmentRepo.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		if actor.IsTeacher() {
			return nil, domain.ErrNotFound("you have not created any assignment yet")
		}
		return nil, domain.ErrNotFound("assignments not found")
	}
	return assignments, nil
}

func (uc *assignmentUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleStudent:
		// Outside the student's visibility bucket the assignment does not exist.
		if assignment.Status != domain.StatusApproved || assignment.Level != actor.Level {
			return nil, domain.ErrNotFound("assignment not found")
		}
	case domain.RoleTeacher:
		if err := domain.RequireOwner(actor, assignment.CreatedBy); err != nil {
			return nil, err
		}
	case domain.RoleAdmin:
	default:
		return nil, domain.ErrAuthorization("access denied: %s role is not authorized", actor.Role)
	}
	return assignment, nil
}

func (uc *assignmentUsecase) Update(ctx context.Context, actor domain.Actor, id string, update *domain.Assignment) (*domain.Assignment, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, assignment.CreatedBy); err != nil {
		return nil, err
	}
	if err := domain.RequireEditable(assignment.Status); err != nil {
		return nil, err
	}
	if err := uc.validateFields(ctx, update); err != nil {
		return nil, err
	}

	assignment.Title = update.Title
	assignment.Description = update.Description
	assignment.Level = update.Level
	assignment.Question = update.Question
	assignment.Marks = update.Marks
	assignment.PrerequisiteLesson = update.PrerequisiteLesson
	if err := uc.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (uc *assignmentUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, assignment.CreatedBy); err != nil {
		return err
	}
	if err := uc.assignmentRepo.Delete(ctx, assignment.ID); err != nil {
		return err
	}
	// Cascade: submissions referencing the assignment go with it.
	return uc.submissionRepo.DeleteByAssignment(ctx, assignment.ID)
}

func (uc *assignmentUsecase) Approve(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == domain.StatusApproved {
		return nil, domain.ErrValidation("assignment is already approved")
	}
	assignment.Status = domain.StatusApproved
	if err := uc.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	publish(uc.events, domain.EventAssignmentApproved, map[string]any{"assignment": assignment.ID})
	return assignment, nil
}

func (uc *assignmentUsecase) Reject(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == domain.StatusRejected {
		return nil, domain.ErrValidation("assignment is already rejected")
	}
	assignment.Status = domain.StatusRejected
	if err := uc.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	publish(uc.events, domain.EventAssignmentRejected, map[string]any{"assignment": assignment.ID})
	return assignment, nil
}

func (uc *assignmentUsecase) Submit(ctx context.Context, actor domain.Actor, id, content string) (*domain.Submission, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status != domain.StatusApproved {
		return nil, domain.ErrAuthorization("assignment is not open for submissions")
	}
	if err := uc.tracker.CheckPrerequisite(ctx, actor, assignment.PrerequisiteLesson); err != nil {
		return nil, err
	}

	safe := sanitize.HTML(content)
	// Falling under the minimum after sanitization means the input was
	// effectively empty or adversarial markup.
	if len(safe) < minSubmissionLength {
		return nil, domain.ErrValidation("submission content must be at least %d characters", minSubmissionLength)
	}
	if len(safe) > maxSubmissionLength {
		return nil, domain.ErrValidation("submission content must be at most %d characters", maxSubmissionLength)
	}

	if existing, err := uc.submissionRepo.GetByAssignmentAndStudent(ctx, assignment.ID, actor.ID); err == nil && existing != nil {
		return nil, domain.ErrConflict("you have already submitted this assignment")
	} else if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	submission := &domain.Submission{
		Assignment: assignment.ID,
		Student:    actor.ID,
		Content:    safe,
		Status:     domain.SubmissionSubmitted,
	}
	if err := uc.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (uc *assignmentUsecase) Mark(ctx context.Context, actor domain.Actor, submissionID string, marks int, feedback string) (*domain.Submission, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return nil, err
	}
	submission, err := uc.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, submission.Assignment)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, assignment.CreatedBy); err != nil {
		return nil, err
	}
	if marks < 0 || marks > assignment.Marks {
		return nil, domain.ErrValidation("marks must be between 0 and %d", assignment.Marks)
	}
	if len(feedback) > maxMarkFeedbackLength {
		return nil, domain.ErrValidation("feedback must be at most %d characters", maxMarkFeedbackLength)
	}

	// Re-marking replaces the prior result; the ledger moves by the delta
	// between the old and new scaled result so nothing double-counts.
	oldResult := 0
	if submission.Result != nil {
		oldResult = *submission.Result
	}
	prevFeedback, prevStatus, prevResult := submission.Feedback, submission.Status, submission.Result

	result := marks
	submission.Result = &result
	submission.Feedback = feedback
	submission.Status = domain.SubmissionMarked
	if err := uc.submissionRepo.Update(ctx, submission); err != nil {
		return nil, err
	}

	delta := (marks - oldResult) * weeklyScale
	if err := uc.tracker.ApplyWeeklyDelta(ctx, submission.Student, delta); err != nil {
		// Compensate: restore the submission so marks and points stay aligned.
		submission.Feedback = prevFeedback
		submission.Status = prevStatus
		submission.Result = prevResult
		if rerr := uc.submissionRepo.Update(ctx, submission); rerr != nil {
			return nil, domain.ErrDependency("points update failed and submission rollback failed: %v", rerr)
		}
		return nil, err
	}

	publish(uc.events, domain.EventSubmissionMarked, map[string]any{
		"submission": submission.ID,
		"student":    submission.Student,
		"result":     marks,
	})
	return submission, nil
}

func (uc *assignmentUsecase) ListSubmissions(ctx context.Context, actor domain.Actor, id string) ([]domain.Submission, error) {
	if err := domain.RequireRole(actor, domain.RoleTeacher); err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, assignment.CreatedBy); err != nil {
		return nil, err
	}
	return uc.submissionRepo.GetByAssignment(ctx, assignment.ID)
}

func (uc *assignmentUsecase) GetOwnSubmission(ctx context.Context, actor domain.Actor, id string) (*domain.Submission, error) {
	if err := domain.RequireRole(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	if _, err := uc.assignmentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.submissionRepo.GetByAssignmentAndStudent(ctx, id, actor.ID)
}
