package http

import (
	"net/http"

	"lingolearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateQuiz(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Description        string `json:"description"`
		Level              string `json:"level" binding:"required"`
		Category           string `json:"category" binding:"required"`
		PrerequisiteLesson string `json:"prerequisite_lesson"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	quiz := domain.Quiz{
		Title:              req.Title,
		Description:        req.Description,
		Level:              domain.Level(req.Level),
		Category:           domain.Category(req.Category),
		PrerequisiteLesson: req.PrerequisiteLesson,
	}
	if err := h.QuizUsecase.Create(c.Request.Context(), getActor(c), &quiz); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quiz created successfully", "quiz": quiz})
}

func (h *Handler) ListQuizzes(c *gin.Context) {
	items, err := h.QuizUsecase.List(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "quizzes": items})
}

func (h *Handler) GetQuiz(c *gin.Context) {
	quiz, questions, err := h.QuizUsecase.Get(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz, "questions": questions})
}

func (h *Handler) UpdateQuiz(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Description        string `json:"description"`
		Level              string `json:"level" binding:"required"`
		Category           string `json:"category" binding:"required"`
		PrerequisiteLesson string `json:"prerequisite_lesson"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	quiz, err := h.QuizUsecase.Update(c.Request.Context(), getActor(c), c.Param("id"), &domain.Quiz{
		Title:              req.Title,
		Description:        req.Description,
		Level:              domain.Level(req.Level),
		Category:           domain.Category(req.Category),
		PrerequisiteLesson: req.PrerequisiteLesson,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated successfully", "quiz": quiz})
}

func (h *Handler) DeleteQuiz(c *gin.Context) {
	if err := h.QuizUsecase.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

func (h *Handler) AddQuestion(c *gin.Context) {
	var req struct {
		Question string   `json:"question" binding:"required"`
		Options  []string `json:"options" binding:"required"`
		Answer   string   `json:"answer" binding:"required"`
		Marks    int      `json:"marks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	q := domain.Question{
		Question: req.Question,
		Options:  req.Options,
		Answer:   req.Answer,
		Marks:    req.Marks,
	}
	if err := h.QuizUsecase.AddQuestion(c.Request.Context(), getActor(c), c.Param("id"), &q); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Question added successfully", "question": q})
}

func (h *Handler) UpdateQuestion(c *gin.Context) {
	var req struct {
		Question string   `json:"question" binding:"required"`
		Options  []string `json:"options" binding:"required"`
		Answer   string   `json:"answer" binding:"required"`
		Marks    int      `json:"marks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	q, err := h.QuizUsecase.UpdateQuestion(c.Request.Context(), getActor(c), c.Param("questionId"), &domain.Question{
		Question: req.Question,
		Options:  req.Options,
		Answer:   req.Answer,
		Marks:    req.Marks,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question updated successfully", "question": q})
}

func (h *Handler) DeleteQuestion(c *gin.Context) {
	if err := h.QuizUsecase.DeleteQuestion(c.Request.Context(), getActor(c), c.Param("questionId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

func (h *Handler) ApproveQuiz(c *gin.Context) {
	quiz, err := h.QuizUsecase.Approve(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz approved successfully", "quiz": quiz})
}

func (h *Handler) RejectQuiz(c *gin.Context) {
	quiz, err := h.QuizUsecase.Reject(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz rejected successfully", "quiz": quiz})
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers []domain.QuizAnswer `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	sub, err := h.QuizUsecase.Submit(c.Request.Context(), getActor(c), c.Param("id"), req.Answers)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quiz submitted successfully", "submission": sub})
}

func (h *Handler) ListQuizSubmissions(c *gin.Context) {
	subs, err := h.QuizUsecase.ListSubmissions(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(subs), "submissions": subs})
}

func (h *Handler) GetOwnQuizSubmission(c *gin.Context) {
	sub, err := h.QuizUsecase.GetOwnSubmission(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}
