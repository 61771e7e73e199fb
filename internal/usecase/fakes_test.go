package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lingolearn-backend/internal/domain"
)

// In-memory repository fakes. They mirror the behavior the Mongo and
// Postgres implementations provide: generated ids, not-found errors, unique
// constraints as conflicts, and scope filtering for listings.

func scopeMatches(scope domain.ContentScope, level domain.Level, status domain.ApprovalStatus, createdBy uint) bool {
	if scope.Unrestricted {
		return true
	}
	if scope.CreatedBy != nil {
		return createdBy == *scope.CreatedBy
	}
	if scope.Level != nil && level != *scope.Level {
		return false
	}
	if scope.Status != nil && status != *scope.Status {
		return false
	}
	return true
}

// ---- lessons ----

type fakeLessonRepo struct {
	seq     int
	lessons []domain.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo { return &fakeLessonRepo{} }

func (r *fakeLessonRepo) Create(_ context.Context, l *domain.Lesson) error {
	r.seq++
	if l.ID == "" {
		l.ID = fmt.Sprintf("lesson-%d", r.seq)
	}
	r.lessons = append(r.lessons, *l)
	return nil
}

func (r *fakeLessonRepo) GetByID(_ context.Context, id string) (*domain.Lesson, error) {
	for i := range r.lessons {
		if r.lessons[i].ID == id {
			l := r.lessons[i]
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound("lesson not found")
}

func (r *fakeLessonRepo) Find(_ context.Context, scope domain.ContentScope) ([]domain.Lesson, error) {
	var out []domain.Lesson
	for _, l := range r.lessons {
		if scopeMatches(scope, l.Level, "", l.CreatedBy) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLessonRepo) Update(_ context.Context, l *domain.Lesson) error {
	for i := range r.lessons {
		if r.lessons[i].ID == l.ID {
			r.lessons[i] = *l
			return nil
		}
	}
	return domain.ErrNotFound("lesson not found")
}

func (r *fakeLessonRepo) Delete(_ context.Context, id string) error {
	for i := range r.lessons {
		if r.lessons[i].ID == id {
			r.lessons = append(r.lessons[:i], r.lessons[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("lesson not found")
}

func (r *fakeLessonRepo) PushFeedback(_ context.Context, lessonID, feedbackID string) error {
	for i := range r.lessons {
		if r.lessons[i].ID == lessonID {
			r.lessons[i].Feedbacks = append(r.lessons[i].Feedbacks, feedbackID)
			return nil
		}
	}
	return domain.ErrNotFound("lesson not found")
}

// ---- announcements ----

type fakeAnnouncementRepo struct {
	seq   int
	items []domain.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo { return &fakeAnnouncementRepo{} }

func (r *fakeAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) error {
	r.seq++
	if a.ID == "" {
		a.ID = fmt.Sprintf("announcement-%d", r.seq)
	}
	r.items = append(r.items, *a)
	return nil
}

func (r *fakeAnnouncementRepo) GetByID(_ context.Context, id string) (*domain.Announcement, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			a := r.items[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound("announcement not found")
}

func (r *fakeAnnouncementRepo) Find(_ context.Context, scope domain.ContentScope) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range r.items {
		if scopeMatches(scope, a.Level, "", a.CreatedBy) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) Update(_ context.Context, a *domain.Announcement) error {
	for i := range r.items {
		if r.items[i].ID == a.ID {
			r.items[i] = *a
			return nil
		}
	}
	return domain.ErrNotFound("announcement not found")
}

func (r *fakeAnnouncementRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("announcement not found")
}

// ---- assignments ----

type fakeAssignmentRepo struct {
	seq   int
	items []domain.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo { return &fakeAssignmentRepo{} }

func (r *fakeAssignmentRepo) Create(_ context.Context, a *domain.Assignment) error {
	r.seq++
	if a.ID == "" {
		a.ID = fmt.Sprintf("assignment-%d", r.seq)
	}
	r.items = append(r.items, *a)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*domain.Assignment, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			a := r.items[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound("assignment not found")
}

func (r *fakeAssignmentRepo) Find(_ context.Context, scope domain.ContentScope) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range r.items {
		if scopeMatches(scope, a.Level, a.Status, a.CreatedBy) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, a *domain.Assignment) error {
	for i := range r.items {
		if r.items[i].ID == a.ID {
			r.items[i] = *a
			return nil
		}
	}
	return domain.ErrNotFound("assignment not found")
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("assignment not found")
}

// ---- submissions ----

type fakeSubmissionRepo struct {
	seq   int
	items []domain.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo { return &fakeSubmissionRepo{} }

func (r *fakeSubmissionRepo) Create(_ context.Context, s *domain.Submission) error {
	for _, other := range r.items {
		if other.Assignment == s.Assignment && other.Student == s.Student {
			return domain.ErrConflict("you have already submitted this assignment")
		}
	}
	r.seq++
	if s.ID == "" {
		s.ID = fmt.Sprintf("submission-%d", r.seq)
	}
	r.items = append(r.items, *s)
	return nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id string) (*domain.Submission, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			s := r.items[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound("submission not found")
}

func (r *fakeSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID string, studentID uint) (*domain.Submission, error) {
	for i := range r.items {
		if r.items[i].Assignment == assignmentID && r.items[i].Student == studentID {
			s := r.items[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound("submission not found")
}

func (r *fakeSubmissionRepo) GetByAssignment(_ context.Context, assignmentID string) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range r.items {
		if s.Assignment == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, s *domain.Submission) error {
	for i := range r.items {
		if r.items[i].ID == s.ID {
			r.items[i] = *s
			return nil
		}
	}
	return domain.ErrNotFound("submission not found")
}

func (r *fakeSubmissionRepo) DeleteByAssignment(_ context.Context, assignmentID string) error {
	kept := r.items[:0]
	for _, s := range r.items {
		if s.Assignment != assignmentID {
			kept = append(kept, s)
		}
	}
	r.items = kept
	return nil
}

// ---- quizzes ----

type fakeQuizRepo struct {
	seq   int
	items []domain.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo { return &fakeQuizRepo{} }

func (r *fakeQuizRepo) Create(_ context.Context, q *domain.Quiz) error {
	r.seq++
	if q.ID == "" {
		q.ID = fmt.Sprintf("quiz-%d", r.seq)
	}
	r.items = append(r.items, *q)
	return nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id string) (*domain.Quiz, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			q := r.items[i]
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound("quiz not found")
}

func (r *fakeQuizRepo) Find(_ context.Context, scope domain.ContentScope) ([]domain.Quiz, error) {
	var out []domain.Quiz
	for _, q := range r.items {
		if scopeMatches(scope, q.Level, q.Status, q.CreatedBy) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) Update(_ context.Context, q *domain.Quiz) error {
	for i := range r.items {
		if r.items[i].ID == q.ID {
			r.items[i] = *q
			return nil
		}
	}
	return domain.ErrNotFound("quiz not found")
}

func (r *fakeQuizRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("quiz not found")
}

// ---- questions ----

type fakeQuestionRepo struct {
	seq   int
	items []domain.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo { return &fakeQuestionRepo{} }

func (r *fakeQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	r.seq++
	if q.ID == "" {
		q.ID = fmt.Sprintf("question-%d", r.seq)
	}
	r.items = append(r.items, *q)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*domain.Question, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			q := r.items[i]
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound("question not found")
}

func (r *fakeQuestionRepo) GetByQuiz(_ context.Context, quizID string) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range r.items {
		if q.Quiz == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *domain.Question) error {
	for i := range r.items {
		if r.items[i].ID == q.ID {
			r.items[i] = *q
			return nil
		}
	}
	return domain.ErrNotFound("question not found")
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("question not found")
}

func (r *fakeQuestionRepo) DeleteByQuiz(_ context.Context, quizID string) error {
	kept := r.items[:0]
	for _, q := range r.items {
		if q.Quiz != quizID {
			kept = append(kept, q)
		}
	}
	r.items = kept
	return nil
}

// ---- quiz submissions ----

type fakeQuizSubRepo struct {
	seq   int
	items []domain.QuizSubmission
}

func newFakeQuizSubRepo() *fakeQuizSubRepo { return &fakeQuizSubRepo{} }

func (r *fakeQuizSubRepo) Create(_ context.Context, s *domain.QuizSubmission) error {
	for _, other := range r.items {
		if other.Quiz == s.Quiz && other.Student == s.Student {
			return domain.ErrConflict("you have already submitted this quiz")
		}
	}
	r.seq++
	if s.ID == "" {
		s.ID = fmt.Sprintf("quizsub-%d", r.seq)
	}
	r.items = append(r.items, *s)
	return nil
}

func (r *fakeQuizSubRepo) GetByQuizAndStudent(_ context.Context, quizID string, studentID uint) (*domain.QuizSubmission, error) {
	for i := range r.items {
		if r.items[i].Quiz == quizID && r.items[i].Student == studentID {
			s := r.items[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound("submission not found")
}

func (r *fakeQuizSubRepo) GetByQuiz(_ context.Context, quizID string) ([]domain.QuizSubmission, error) {
	var out []domain.QuizSubmission
	for _, s := range r.items {
		if s.Quiz == quizID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeQuizSubRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("submission not found")
}

func (r *fakeQuizSubRepo) DeleteByQuiz(_ context.Context, quizID string) error {
	kept := r.items[:0]
	for _, s := range r.items {
		if s.Quiz != quizID {
			kept = append(kept, s)
		}
	}
	r.items = kept
	return nil
}

// ---- progress ----

type fakeProgressRepo struct {
	seq     int
	byUser  map[uint]domain.Progress
	saveErr error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{byUser: make(map[uint]domain.Progress)}
}

func (r *fakeProgressRepo) Create(_ context.Context, p *domain.Progress) error {
	if _, ok := r.byUser[p.User]; ok {
		return domain.ErrConflict("progress already exists for this user")
	}
	r.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("progress-%d", r.seq)
	}
	p.Recompute()
	r.byUser[p.User] = *p
	return nil
}

func (r *fakeProgressRepo) GetByUser(_ context.Context, userID uint) (*domain.Progress, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound("progress not found")
	}
	return &p, nil
}

func (r *fakeProgressRepo) Save(_ context.Context, p *domain.Progress) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	p.Recompute()
	r.byUser[p.User] = *p
	return nil
}

func (r *fakeProgressRepo) Leaderboard(_ context.Context, limit int) ([]domain.Progress, error) {
	out := make([]domain.Progress, 0, len(r.byUser))
	for _, p := range r.byUser {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPoints > out[j].TotalPoints })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProgressRepo) ResetWeekly(_ context.Context) error {
	for user, p := range r.byUser {
		p.WeeklyPoints = 0
		p.Recompute()
		r.byUser[user] = p
	}
	return nil
}

// ---- feedback ----

type fakeFeedbackRepo struct {
	seq   int
	items []domain.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo { return &fakeFeedbackRepo{} }

func (r *fakeFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	r.seq++
	if f.ID == "" {
		f.ID = fmt.Sprintf("feedback-%d", r.seq)
	}
	r.items = append(r.items, *f)
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id string) (*domain.Feedback, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			f := r.items[i]
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound("comment not found")
}

func (r *fakeFeedbackRepo) GetByLesson(_ context.Context, lessonID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, f := range r.items {
		if f.Lesson == lessonID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, f *domain.Feedback) error {
	for i := range r.items {
		if r.items[i].ID == f.ID {
			r.items[i] = *f
			return nil
		}
	}
	return domain.ErrNotFound("comment not found")
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("comment not found")
}

// ---- users ----

type fakeUserRepo struct {
	seq   uint
	users map[uint]domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: make(map[uint]domain.User)} }

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, other := range r.users {
		if other.Email == u.Email {
			return domain.ErrConflict("user with this email already exists")
		}
	}
	r.seq++
	if u.ID == 0 {
		u.ID = r.seq
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found")
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByProvider(_ context.Context, provider domain.AuthProvider, externalID string) (*domain.User, error) {
	for _, u := range r.users {
		if provider == domain.ProviderGoogle && u.GoogleID == externalID {
			user := u
			return &user, nil
		}
		if provider == domain.ProviderFacebook && u.FacebookID == externalID {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound("user not found")
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound("user not found")
	}
	delete(r.users, id)
	return nil
}

// ---- events ----

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) published(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == eventType {
			return true
		}
	}
	return false
}
