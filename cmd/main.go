package main

import (
	"log"
	"os"

	"lingolearn-backend/config"
	httpDelivery "lingolearn-backend/internal/delivery/http"
	"lingolearn-backend/internal/domain"
	"lingolearn-backend/internal/event"
	"lingolearn-backend/internal/repository"
	"lingolearn-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to databases
	db := config.ConnectDB()
	postgres := db.PG
	mongo := db.Mongo

	// Auto migrate
	if err := config.AutoMigrate(postgres); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := config.EnsureIndexes(mongo); err != nil {
		log.Fatal("Index setup failed:", err)
	}

	// Event publisher is optional; without a broker events are dropped.
	var events domain.EventPublisher
	if uri := os.Getenv("RABBITMQ_URI"); uri != "" {
		exchange := os.Getenv("RABBITMQ_EXCHANGE")
		if exchange == "" {
			exchange = "lingolearn.events"
		}
		pub, err := event.NewPublisher(uri, exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer pub.Close()
		events = pub
	} else {
		log.Println("RABBITMQ_URI not set, event publishing disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(postgres)
	lessonRepo := repository.NewLessonRepository(mongo)
	announcementRepo := repository.NewAnnouncementRepository(mongo)
	assignmentRepo := repository.NewAssignmentRepository(mongo)
	submissionRepo := repository.NewSubmissionRepository(mongo)
	quizRepo := repository.NewQuizRepository(mongo)
	questionRepo := repository.NewQuestionRepository(mongo)
	quizSubRepo := repository.NewQuizSubmissionRepository(mongo)
	progressRepo := repository.NewProgressRepository(mongo)
	feedbackRepo := repository.NewFeedbackRepository(mongo)

	// Initialize usecases
	tracker := usecase.NewProgressTracker(progressRepo)
	authUsecase := usecase.NewAuthUsecase(userRepo)
	userUsecase := usecase.NewUserUsecase(userRepo)
	lessonUsecase := usecase.NewLessonUsecase(lessonRepo)
	announcementUsecase := usecase.NewAnnouncementUsecase(announcementRepo)
	assignmentUsecase := usecase.NewAssignmentUsecase(assignmentRepo, submissionRepo, lessonRepo, tracker, events)
	quizUsecase := usecase.NewQuizUsecase(quizRepo, questionRepo, quizSubRepo, lessonRepo, tracker, events)
	progressUsecase := usecase.NewProgressUsecase(lessonRepo, tracker, events)
	feedbackUsecase := usecase.NewFeedbackUsecase(feedbackRepo, lessonRepo)

	// Initialize handlers and router
	handler := httpDelivery.NewHandler(
		authUsecase,
		userUsecase,
		lessonUsecase,
		announcementUsecase,
		assignmentUsecase,
		quizUsecase,
		progressUsecase,
		feedbackUsecase,
	)
	router := httpDelivery.InitRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("API: http://localhost:%s/api/v1", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
