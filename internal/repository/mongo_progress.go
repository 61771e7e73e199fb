package repository

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ========== PROGRESS REPOSITORY ==========

type progressRepo struct {
	col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) domain.ProgressRepository {
	return &progressRepo{col: db.Collection("progress")}
}

func (r *progressRepo) Create(ctx context.Context, p *domain.Progress) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	p.Recompute()
	p.UpdatedAt = time.Now()
	_, err := r.col.InsertOne(ctx, p)
	return wrapWrite(err, "progress already exists for this user")
}

func (r *progressRepo) GetByUser(ctx context.Context, userID uint) (*domain.Progress, error) {
	var p domain.Progress
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		return nil, wrapFind(err, "progress not found")
	}
	return &p, nil
}

func (r *progressRepo) Save(ctx context.Context, p *domain.Progress) error {
	p.Recompute()
	p.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return wrapWrite(err, "progress already exists for this user")
}

func (r *progressRepo) Leaderboard(ctx context.Context, limit int) ([]domain.Progress, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "total_points", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var board []domain.Progress
	if err := cur.All(ctx, &board); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return board, nil
}

func (r *progressRepo) ResetWeekly(ctx context.Context) error {
	// Pipeline update keeps total_points consistent in the same write.
	_, err := r.col.UpdateMany(ctx, bson.M{}, bson.A{
		bson.M{"$set": bson.M{
			"weekly_points": 0,
			"total_points":  "$permanent_points",
			"updated_at":    time.Now(),
		}},
	})
	return wrapWrite(err, "")
}
