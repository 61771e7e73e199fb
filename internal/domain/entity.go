package domain

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvance      Level = "advance"
)

func ValidLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvance:
		return true
	}
	return false
}

type Category string

const (
	CategoryGrammar    Category = "grammar"
	CategoryVocabulary Category = "vocabulary"
	CategoryReading    Category = "reading"
	CategoryWriting    Category = "writing"
	CategoryListening  Category = "listening"
	CategorySpeaking   Category = "speaking"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryGrammar, CategoryVocabulary, CategoryReading,
		CategoryWriting, CategoryListening, CategorySpeaking:
		return true
	}
	return false
}

// ApprovalStatus is the lifecycle of teacher-authored assignments and quizzes.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

type AuthProvider string

const (
	ProviderEmail    AuthProvider = "email"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

// User lives in Postgres; content documents reference it by uint id.
type User struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	Name       string       `json:"name"`
	Email      string       `json:"email" gorm:"uniqueIndex;not null"`
	Password   string       `json:"-"` // empty for OAuth accounts
	Role       Role         `json:"role" gorm:"type:varchar(20);default:'student'"`
	Level      Level        `json:"level" gorm:"type:varchar(20);default:'beginner'"`
	Provider   AuthProvider `json:"provider" gorm:"type:varchar(20);default:'email'"`
	GoogleID   string       `json:"-" gorm:"index"`
	FacebookID string       `json:"-" gorm:"index"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// ========== MONGODB MODELS ==========

type Lesson struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Level       Level     `json:"level" bson:"level"`
	Category    Category  `json:"category" bson:"category"`
	URL         string    `json:"url" bson:"url"`
	Feedbacks   []string  `json:"feedbacks" bson:"feedbacks"` // denormalized Feedback ids
	CreatedBy   uint      `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Announcement struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Level     Level     `json:"level" bson:"level"`
	CreatedBy uint      `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Assignment struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	Title              string         `json:"title" bson:"title"`
	Description        string         `json:"description" bson:"description"`
	Level              Level          `json:"level" bson:"level"`
	Question           string         `json:"question" bson:"question"`
	Marks              int            `json:"marks" bson:"marks"` // 0..25
	PrerequisiteLesson string         `json:"prerequisite_lesson,omitempty" bson:"prerequisite_lesson,omitempty"`
	Status             ApprovalStatus `json:"status" bson:"status"`
	CreatedBy          uint           `json:"created_by" bson:"created_by"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" bson:"updated_at"`
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionMarked    SubmissionStatus = "marked"
)

type Submission struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Assignment  string           `json:"assignment" bson:"assignment"`
	Student     uint             `json:"student" bson:"student"`
	Content     string           `json:"content" bson:"content"`
	Result      *int             `json:"result" bson:"result"` // nil until marked
	Feedback    string           `json:"feedback" bson:"feedback"`
	Status      SubmissionStatus `json:"status" bson:"status"`
	SubmittedAt time.Time        `json:"submitted_at" bson:"submitted_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}

type Quiz struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	Title              string         `json:"title" bson:"title"`
	Description        string         `json:"description" bson:"description"`
	Level              Level          `json:"level" bson:"level"`
	Category           Category       `json:"category" bson:"category"`
	Questions          []string       `json:"questions" bson:"questions"` // Question ids
	TotalMarks         int            `json:"total_marks" bson:"total_marks"`
	PrerequisiteLesson string         `json:"prerequisite_lesson,omitempty" bson:"prerequisite_lesson,omitempty"`
	Status             ApprovalStatus `json:"status" bson:"status"`
	CreatedBy          uint           `json:"created_by" bson:"created_by"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" bson:"updated_at"`
}

type Question struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Question  string    `json:"question" bson:"question"`
	Options   []string  `json:"options" bson:"options"`
	Answer    string    `json:"answer" bson:"answer"`
	Marks     int       `json:"marks" bson:"marks"`
	Quiz      string    `json:"quiz" bson:"quiz"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AnsweredQuestion is the frozen copy of a question stored on a quiz
// submission, so later edits to the quiz never alter graded history.
type AnsweredQuestion struct {
	QuestionID     string   `json:"question_id" bson:"question_id"`
	Question       string   `json:"question" bson:"question"`
	Options        []string `json:"options" bson:"options"`
	SelectedOption string   `json:"selected_option" bson:"selected_option"`
	Answer         string   `json:"answer" bson:"answer"`
	Marks          int      `json:"marks" bson:"marks"`
}

type QuizSubmission struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	Quiz        string             `json:"quiz" bson:"quiz"`
	Student     uint               `json:"student" bson:"student"`
	Answers     []AnsweredQuestion `json:"answers" bson:"answers"`
	Result      int                `json:"result" bson:"result"`
	TotalMarks  int                `json:"total_marks" bson:"total_marks"`
	SubmittedAt time.Time          `json:"submitted_at" bson:"submitted_at"`
}

type Progress struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	User             uint      `json:"user" bson:"user"`
	CompletedLessons []string  `json:"completed_lessons" bson:"completed_lessons"`
	PermanentPoints  int       `json:"permanent_points" bson:"permanent_points"`
	WeeklyPoints     int       `json:"weekly_points" bson:"weekly_points"`
	TotalPoints      int       `json:"total_points" bson:"total_points"` // permanent + weekly, recomputed on save
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// Recompute derives TotalPoints. Repositories call it immediately before
// persisting; the stored value is never an input.
func (p *Progress) Recompute() {
	p.TotalPoints = p.PermanentPoints + p.WeeklyPoints
}

// HasCompleted reports whether the lesson id is in the completed set.
func (p *Progress) HasCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

type Reply struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	User     uint      `json:"user" bson:"user"`
	Content  string    `json:"content" bson:"content"`
	PostedAt time.Time `json:"posted_at" bson:"posted_at"`
}

type Feedback struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Lesson    string    `json:"lesson" bson:"lesson"`
	User      uint      `json:"user" bson:"user"`
	Content   string    `json:"content" bson:"content"`
	Replies   []Reply   `json:"replies" bson:"replies"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// QuizAnswer is a student's answer to one question in a submit request.
type QuizAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// Event names published to the broker when one is configured.
const (
	EventAssignmentApproved = "assignment.approved"
	EventAssignmentRejected = "assignment.rejected"
	EventSubmissionMarked   = "submission.marked"
	EventQuizApproved       = "quiz.approved"
	EventQuizRejected       = "quiz.rejected"
	EventQuizSubmitted      = "quiz.submitted"
	EventLessonWatched      = "lesson.watched"
)
