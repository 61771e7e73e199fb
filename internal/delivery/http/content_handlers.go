package http

import (
	"net/http"

	"lingolearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== LESSON HANDLERS ==========

func (h *Handler) CreateLesson(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Level       string `json:"level" binding:"required"`
		Category    string `json:"category" binding:"required"`
		URL         string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson := domain.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Level:       domain.Level(req.Level),
		Category:    domain.Category(req.Category),
		URL:         req.URL,
	}
	if err := h.LessonUsecase.Create(c.Request.Context(), getActor(c), &lesson); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lesson created successfully", "lesson": lesson})
}

func (h *Handler) ListLessons(c *gin.Context) {
	lessons, err := h.LessonUsecase.List(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(lessons), "lessons": lessons})
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Level       string `json:"level" binding:"required"`
		Category    string `json:"category" binding:"required"`
		URL         string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson, err := h.LessonUsecase.Update(c.Request.Context(), getActor(c), c.Param("id"), &domain.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Level:       domain.Level(req.Level),
		Category:    domain.Category(req.Category),
		URL:         req.URL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully", "lesson": lesson})
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	if err := h.LessonUsecase.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully"})
}

// ========== ANNOUNCEMENT HANDLERS ==========

func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	a := domain.Announcement{
		Title:   req.Title,
		Content: req.Content,
		Level:   domain.Level(req.Level),
	}
	if err := h.AnnouncementUsecase.Create(c.Request.Context(), getActor(c), &a); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Announcement created successfully", "announcement": a})
}

func (h *Handler) ListAnnouncements(c *gin.Context) {
	items, err := h.AnnouncementUsecase.List(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "announcements": items})
}

func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	a, err := h.AnnouncementUsecase.Update(c.Request.Context(), getActor(c), c.Param("id"), &domain.Announcement{
		Title:   req.Title,
		Content: req.Content,
		Level:   domain.Level(req.Level),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated successfully", "announcement": a})
}

func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	if err := h.AnnouncementUsecase.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}

// ========== FEEDBACK HANDLERS ==========

type feedbackRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	fb, err := h.FeedbackUsecase.Create(c.Request.Context(), getActor(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback posted successfully", "feedback": fb})
}

func (h *Handler) ListFeedback(c *gin.Context) {
	items, err := h.FeedbackUsecase.ListByLesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "feedbacks": items})
}

func (h *Handler) UpdateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	fb, err := h.FeedbackUsecase.Update(c.Request.Context(), getActor(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback updated successfully", "feedback": fb})
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	if err := h.FeedbackUsecase.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}

func (h *Handler) CreateReply(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	fb, err := h.FeedbackUsecase.CreateReply(c.Request.Context(), getActor(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reply posted successfully", "feedback": fb})
}

func (h *Handler) UpdateReply(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	fb, err := h.FeedbackUsecase.UpdateReply(c.Request.Context(), getActor(c), c.Param("id"), c.Param("replyId"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply updated successfully", "feedback": fb})
}

func (h *Handler) DeleteReply(c *gin.Context) {
	if err := h.FeedbackUsecase.DeleteReply(c.Request.Context(), getActor(c), c.Param("id"), c.Param("replyId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
