package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"lingolearn-backend/internal/domain"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	PG    *gorm.DB
	Mongo *mongo.Database
}

func ConnectDB() *Database {
	err := godotenv.Load()
	if err != nil {
		log.Println("Note: .env file not found, using system environment variables")
	}

	// 1. PostgreSQL Connection
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}

	// 2. MongoDB Connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoURI := os.Getenv("MONGO_URI")
	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	mongoDB := mongoClient.Database(os.Getenv("MONGO_DB_NAME"))

	log.Println("Connected to PostgreSQL and MongoDB successfully!")

	return &Database{
		PG:    pgDB,
		Mongo: mongoDB,
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{})
}

// EnsureIndexes creates the unique and query indexes the repositories rely
// on. The unique ones double as concurrency guards for one-submission-per-
// student and one-ledger-per-user.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection("submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "assignment", Value: 1}, {Key: "student", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("submissions index: %w", err)
	}

	_, err = db.Collection("quiz_submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "quiz", Value: 1}, {Key: "student", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("quiz_submissions index: %w", err)
	}

	_, err = db.Collection("progress").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("progress index: %w", err)
	}

	secondary := []struct {
		collection string
		keys       bson.D
	}{
		{"lessons", bson.D{{Key: "level", Value: 1}}},
		{"announcements", bson.D{{Key: "level", Value: 1}}},
		{"assignments", bson.D{{Key: "level", Value: 1}, {Key: "status", Value: 1}}},
		{"assignments", bson.D{{Key: "created_by", Value: 1}}},
		{"quizzes", bson.D{{Key: "level", Value: 1}, {Key: "status", Value: 1}}},
		{"quizzes", bson.D{{Key: "created_by", Value: 1}}},
		{"questions", bson.D{{Key: "quiz", Value: 1}}},
		{"feedbacks", bson.D{{Key: "lesson", Value: 1}}},
		{"progress", bson.D{{Key: "total_points", Value: -1}}},
	}
	for _, idx := range secondary {
		_, err = db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: idx.keys})
		if err != nil {
			return fmt.Errorf("%s index: %w", idx.collection, err)
		}
	}

	return nil
}
