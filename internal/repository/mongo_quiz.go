package repository

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ========== QUIZ REPOSITORY ==========

type quizRepo struct {
	col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) domain.QuizRepository {
	return &quizRepo{col: db.Collection("quizzes")}
}

func (r *quizRepo) Create(ctx context.Context, q *domain.Quiz) error {
	if q.ID == "" {
		q.ID = newID()
	}
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Questions == nil {
		q.Questions = []string{}
	}
	_, err := r.col.InsertOne(ctx, q)
	return wrapWrite(err, "quiz already exists")
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var q domain.Quiz
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, wrapFind(err, "quiz not found")
	}
	return &q, nil
}

func (r *quizRepo) Find(ctx context.Context, scope domain.ContentScope) ([]domain.Quiz, error) {
	cur, err := r.col.Find(ctx, scopeFilter(scope))
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var quizzes []domain.Quiz
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return quizzes, nil
}

func (r *quizRepo) Update(ctx context.Context, q *domain.Quiz) error {
	q.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	return wrapWrite(err, "quiz already exists")
}

func (r *quizRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}

// ========== QUESTION REPOSITORY ==========

type questionRepo struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) domain.QuestionRepository {
	return &questionRepo{col: db.Collection("questions")}
}

func (r *questionRepo) Create(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		q.ID = newID()
	}
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, q)
	return wrapWrite(err, "question already exists")
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var q domain.Question
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, wrapFind(err, "question not found")
	}
	return &q, nil
}

func (r *questionRepo) GetByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	cur, err := r.col.Find(ctx, bson.M{"quiz": quizID})
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var questions []domain.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return questions, nil
}

func (r *questionRepo) Update(ctx context.Context, q *domain.Question) error {
	q.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	return wrapWrite(err, "question already exists")
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}

func (r *questionRepo) DeleteByQuiz(ctx context.Context, quizID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"quiz": quizID})
	return wrapWrite(err, "")
}

// ========== QUIZ SUBMISSION REPOSITORY ==========

type quizSubmissionRepo struct {
	col *mongo.Collection
}

func NewQuizSubmissionRepository(db *mongo.Database) domain.QuizSubmissionRepository {
	return &quizSubmissionRepo{col: db.Collection("quiz_submissions")}
}

func (r *quizSubmissionRepo) Create(ctx context.Context, s *domain.QuizSubmission) error {
	if s.ID == "" {
		s.ID = newID()
	}
	s.SubmittedAt = time.Now()
	// Unique (quiz, student) index rejects concurrent duplicates.
	_, err := r.col.InsertOne(ctx, s)
	return wrapWrite(err, "you have already submitted this quiz")
}

func (r *quizSubmissionRepo) GetByQuizAndStudent(ctx context.Context, quizID string, studentID uint) (*domain.QuizSubmission, error) {
	var s domain.QuizSubmission
	err := r.col.FindOne(ctx, bson.M{"quiz": quizID, "student": studentID}).Decode(&s)
	if err != nil {
		return nil, wrapFind(err, "quiz submission not found")
	}
	return &s, nil
}

func (r *quizSubmissionRepo) GetByQuiz(ctx context.Context, quizID string) ([]domain.QuizSubmission, error) {
	cur, err := r.col.Find(ctx, bson.M{"quiz": quizID})
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var submissions []domain.QuizSubmission
	if err := cur.All(ctx, &submissions); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return submissions, nil
}

func (r *quizSubmissionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}

func (r *quizSubmissionRepo) DeleteByQuiz(ctx context.Context, quizID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"quiz": quizID})
	return wrapWrite(err, "")
}
