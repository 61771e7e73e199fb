package repository

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ========== FEEDBACK REPOSITORY ==========

type feedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) domain.FeedbackRepository {
	return &feedbackRepo{col: db.Collection("feedbacks")}
}

func (r *feedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	if f.ID == "" {
		f.ID = newID()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Replies == nil {
		f.Replies = []domain.Reply{}
	}
	_, err := r.col.InsertOne(ctx, f)
	return wrapWrite(err, "feedback already exists")
}

func (r *feedbackRepo) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var f domain.Feedback
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, wrapFind(err, "comment not found")
	}
	return &f, nil
}

func (r *feedbackRepo) GetByLesson(ctx context.Context, lessonID string) ([]domain.Feedback, error) {
	cur, err := r.col.Find(ctx, bson.M{"lesson": lessonID})
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var feedbacks []domain.Feedback
	if err := cur.All(ctx, &feedbacks); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepo) Update(ctx context.Context, f *domain.Feedback) error {
	f.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	return wrapWrite(err, "")
}

func (r *feedbackRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}
