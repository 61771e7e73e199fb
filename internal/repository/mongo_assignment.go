package repository

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ========== ASSIGNMENT REPOSITORY ==========

type assignmentRepo struct {
	col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) domain.AssignmentRepository {
	return &assignmentRepo{col: db.Collection("assignments")}
}

func (r *assignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, a)
	return wrapWrite(err, "assignment already exists")
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var a domain.Assignment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, wrapFind(err, "assignment not found")
	}
	return &a, nil
}

func (r *assignmentRepo) Find(ctx context.Context, scope domain.ContentScope) ([]domain.Assignment, error) {
	cur, err := r.col.Find(ctx, scopeFilter(scope))
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var assignments []domain.Assignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return assignments, nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	a.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return wrapWrite(err, "assignment already exists")
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}

// ========== SUBMISSION REPOSITORY ==========

type submissionRepo struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) domain.SubmissionRepository {
	return &submissionRepo{col: db.Collection("submissions")}
}

func (r *submissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = newID()
	}
	now := time.Now()
	s.SubmittedAt = now
	s.UpdatedAt = now
	// The unique (assignment, student) index is the idempotence boundary for
	// concurrent duplicate submissions.
	_, err := r.col.InsertOne(ctx, s)
	return wrapWrite(err, "you have already submitted this assignment")
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var s domain.Submission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, wrapFind(err, "submission not found")
	}
	return &s, nil
}

func (r *submissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID string, studentID uint) (*domain.Submission, error) {
	var s domain.Submission
	err := r.col.FindOne(ctx, bson.M{"assignment": assignmentID, "student": studentID}).Decode(&s)
	if err != nil {
		return nil, wrapFind(err, "submission not found")
	}
	return &s, nil
}

func (r *submissionRepo) GetByAssignment(ctx context.Context, assignmentID string) ([]domain.Submission, error) {
	cur, err := r.col.Find(ctx, bson.M{"assignment": assignmentID})
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var submissions []domain.Submission
	if err := cur.All(ctx, &submissions); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return submissions, nil
}

func (r *submissionRepo) Update(ctx context.Context, s *domain.Submission) error {
	s.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	return wrapWrite(err, "you have already submitted this assignment")
}

func (r *submissionRepo) DeleteByAssignment(ctx context.Context, assignmentID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"assignment": assignmentID})
	return wrapWrite(err, "")
}
