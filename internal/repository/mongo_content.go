package repository

import (
	"context"
	"time"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ========== LESSON REPOSITORY ==========

type lessonRepo struct {
	col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) domain.LessonRepository {
	return &lessonRepo{col: db.Collection("lessons")}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = newID()
	}
	now := time.Now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	if lesson.Feedbacks == nil {
		lesson.Feedbacks = []string{}
	}
	_, err := r.col.InsertOne(ctx, lesson)
	return wrapWrite(err, "lesson already exists")
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var lesson domain.Lesson
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		return nil, wrapFind(err, "lesson not found")
	}
	return &lesson, nil
}

func (r *lessonRepo) Find(ctx context.Context, scope domain.ContentScope) ([]domain.Lesson, error) {
	cur, err := r.col.Find(ctx, scopeFilter(scope))
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var lessons []domain.Lesson
	if err := cur.All(ctx, &lessons); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return lessons, nil
}

func (r *lessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	lesson.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": lesson.ID}, lesson)
	return wrapWrite(err, "lesson already exists")
}

func (r *lessonRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}

func (r *lessonRepo) PushFeedback(ctx context.Context, lessonID, feedbackID string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": lessonID},
		bson.M{"$push": bson.M{"feedbacks": feedbackID}})
	return wrapWrite(err, "")
}

// ========== ANNOUNCEMENT REPOSITORY ==========

type announcementRepo struct {
	col *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) domain.AnnouncementRepository {
	return &announcementRepo{col: db.Collection("announcements")}
}

func (r *announcementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, a)
	return wrapWrite(err, "announcement already exists")
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var a domain.Announcement
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, wrapFind(err, "announcement not found")
	}
	return &a, nil
}

func (r *announcementRepo) Find(ctx context.Context, scope domain.ContentScope) ([]domain.Announcement, error) {
	cur, err := r.col.Find(ctx, scopeFilter(scope))
	if err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	defer cur.Close(ctx)

	var announcements []domain.Announcement
	if err := cur.All(ctx, &announcements); err != nil {
		return nil, domain.ErrDependency("storage read failed: %v", err)
	}
	return announcements, nil
}

func (r *announcementRepo) Update(ctx context.Context, a *domain.Announcement) error {
	a.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return wrapWrite(err, "announcement already exists")
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapWrite(err, "")
}
