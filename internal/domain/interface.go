package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByProvider(ctx context.Context, provider AuthProvider, externalID string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

type LessonRepository interface { // MongoDB
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	Find(ctx context.Context, scope ContentScope) ([]Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	Delete(ctx context.Context, id string) error
	PushFeedback(ctx context.Context, lessonID, feedbackID string) error
}

type AnnouncementRepository interface { // MongoDB
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	Find(ctx context.Context, scope ContentScope) ([]Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface { // MongoDB
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id string) (*Assignment, error)
	Find(ctx context.Context, scope ContentScope) ([]Assignment, error)
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id string) error
}

type SubmissionRepository interface { // MongoDB, unique (assignment, student)
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID string, studentID uint) (*Submission, error)
	GetByAssignment(ctx context.Context, assignmentID string) ([]Submission, error)
	Update(ctx context.Context, s *Submission) error
	DeleteByAssignment(ctx context.Context, assignmentID string) error
}

type QuizRepository interface { // MongoDB
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	Find(ctx context.Context, scope ContentScope) ([]Quiz, error)
	Update(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id string) error
}

type QuestionRepository interface { // MongoDB
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	GetByQuiz(ctx context.Context, quizID string) ([]Question, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id string) error
	DeleteByQuiz(ctx context.Context, quizID string) error
}

type QuizSubmissionRepository interface { // MongoDB, unique (quiz, student)
	Create(ctx context.Context, s *QuizSubmission) error
	GetByQuizAndStudent(ctx context.Context, quizID string, studentID uint) (*QuizSubmission, error)
	GetByQuiz(ctx context.Context, quizID string) ([]QuizSubmission, error)
	Delete(ctx context.Context, id string) error
	DeleteByQuiz(ctx context.Context, quizID string) error
}

type ProgressRepository interface { // MongoDB, unique user
	Create(ctx context.Context, p *Progress) error
	GetByUser(ctx context.Context, userID uint) (*Progress, error)
	// Save recomputes TotalPoints before persisting.
	Save(ctx context.Context, p *Progress) error
	Leaderboard(ctx context.Context, limit int) ([]Progress, error)
	ResetWeekly(ctx context.Context) error
}

type FeedbackRepository interface { // MongoDB
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	GetByLesson(ctx context.Context, lessonID string) ([]Feedback, error)
	Update(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher pushes domain events to the broker. Implementations must be
// safe to skip: usecases treat publish failures as non-fatal.
type EventPublisher interface {
	Publish(eventType string, payload any) error
}

type AuthUsecase interface {
	Register(ctx context.Context, user *User) error
	Login(ctx context.Context, email, password string) (string, *User, error)
	ForgotPassword(ctx context.Context, email string) error
	FindOrCreateOAuth(ctx context.Context, provider AuthProvider, externalID, name, email string) (string, *User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
}

type UserUsecase interface {
	GetAll(ctx context.Context, actor Actor) ([]User, error)
	Get(ctx context.Context, actor Actor, id uint) (*User, error)
	Update(ctx context.Context, actor Actor, id uint, update *User) (*User, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type LessonUsecase interface {
	Create(ctx context.Context, actor Actor, lesson *Lesson) error
	List(ctx context.Context, actor Actor) ([]Lesson, error)
	Update(ctx context.Context, actor Actor, id string, update *Lesson) (*Lesson, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type AnnouncementUsecase interface {
	Create(ctx context.Context, actor Actor, a *Announcement) error
	List(ctx context.Context, actor Actor) ([]Announcement, error)
	Update(ctx context.Context, actor Actor, id string, update *Announcement) (*Announcement, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type AssignmentUsecase interface {
	Create(ctx context.Context, actor Actor, a *Assignment) error
	List(ctx context.Context, actor Actor) ([]Assignment, error)
	Get(ctx context.Context, actor Actor, id string) (*Assignment, error)
	Update(ctx context.Context, actor Actor, id string, update *Assignment) (*Assignment, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Approve(ctx context.Context, actor Actor, id string) (*Assignment, error)
	Reject(ctx context.Context, actor Actor, id string) (*Assignment, error)
	Submit(ctx context.Context, actor Actor, id, content string) (*Submission, error)
	Mark(ctx context.Context, actor Actor, submissionID string, marks int, feedback string) (*Submission, error)
	ListSubmissions(ctx context.Context, actor Actor, id string) ([]Submission, error)
	GetOwnSubmission(ctx context.Context, actor Actor, id string) (*Submission, error)
}

type QuizUsecase interface {
	Create(ctx context.Context, actor Actor, q *Quiz) error
	List(ctx context.Context, actor Actor) ([]Quiz, error)
	Get(ctx context.Context, actor Actor, id string) (*Quiz, []Question, error)
	Update(ctx context.Context, actor Actor, id string, update *Quiz) (*Quiz, error)
	Delete(ctx context.Context, actor Actor, id string) error
	AddQuestion(ctx context.Context, actor Actor, quizID string, q *Question) error
	UpdateQuestion(ctx context.Context, actor Actor, questionID string, update *Question) (*Question, error)
	DeleteQuestion(ctx context.Context, actor Actor, questionID string) error
	Approve(ctx context.Context, actor Actor, id string) (*Quiz, error)
	Reject(ctx context.Context, actor Actor, id string) (*Quiz, error)
	Submit(ctx context.Context, actor Actor, id string, answers []QuizAnswer) (*QuizSubmission, error)
	ListSubmissions(ctx context.Context, actor Actor, id string) ([]QuizSubmission, error)
	GetOwnSubmission(ctx context.Context, actor Actor, id string) (*QuizSubmission, error)
}

type ProgressUsecase interface {
	MarkLessonWatched(ctx context.Context, actor Actor, lessonID string) (*Progress, error)
	GetOwn(ctx context.Context, actor Actor) (*Progress, error)
	Leaderboard(ctx context.Context, limit int) ([]Progress, error)
	ResetWeekly(ctx context.Context, actor Actor) error
}

type FeedbackUsecase interface {
	Create(ctx context.Context, actor Actor, lessonID, content string) (*Feedback, error)
	ListByLesson(ctx context.Context, lessonID string) ([]Feedback, error)
	Update(ctx context.Context, actor Actor, id, content string) (*Feedback, error)
	Delete(ctx context.Context, actor Actor, id string) error
	CreateReply(ctx context.Context, actor Actor, feedbackID, content string) (*Feedback, error)
	UpdateReply(ctx context.Context, actor Actor, feedbackID, replyID, content string) (*Feedback, error)
	DeleteReply(ctx context.Context, actor Actor, feedbackID, replyID string) error
}
