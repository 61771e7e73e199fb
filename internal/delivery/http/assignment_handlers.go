package http

import (
	"net/http"

	"lingolearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAssignment(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Description        string `json:"description"`
		Level              string `json:"level" binding:"required"`
		Question           string `json:"question" binding:"required"`
		Marks              int    `json:"marks" binding:"required"`
		PrerequisiteLesson string `json:"prerequisite_lesson"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	a := domain.Assignment{
		Title:              req.Title,
		Description:        req.Description,
		Level:              domain.Level(req.Level),
		Question:           req.Question,
		Marks:              req.Marks,
		PrerequisiteLesson: req.PrerequisiteLesson,
	}
	if err := h.AssignmentUsecase.Create(c.Request.Context(), getActor(c), &a); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Assignment created successfully", "assignment": a})
}

func (h *Handler) ListAssignments(c *gin.Context) {
	items, err := h.AssignmentUsecase.List(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "assignments": items})
}

func (h *Handler) GetAssignment(c *gin.Context) {
	a, err := h.AssignmentUsecase.Get(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": a})
}

func (h *Handler) UpdateAssignment(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Description        string `json:"description"`
		Level              string `json:"level" binding:"required"`
		Question           string `json:"question" binding:"required"`
		Marks              int    `json:"marks" binding:"required"`
		PrerequisiteLesson string `json:"prerequisite_lesson"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	a, err := h.AssignmentUsecase.Update(c.Request.Context(), getActor(c), c.Param("id"), &domain.Assignment{
		Title:              req.Title,
		Description:        req.Description,
		Level:              domain.Level(req.Level),
		Question:           req.Question,
		Marks:              req.Marks,
		PrerequisiteLesson: req.PrerequisiteLesson,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment updated successfully", "assignment": a})
}

func (h *Handler) DeleteAssignment(c *gin.Context) {
	if err := h.AssignmentUsecase.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}

func (h *Handler) ApproveAssignment(c *gin.Context) {
	a, err := h.AssignmentUsecase.Approve(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment approved successfully", "assignment": a})
}

func (h *Handler) RejectAssignment(c *gin.Context) {
	a, err := h.AssignmentUsecase.Reject(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment rejected successfully", "assignment": a})
}

func (h *Handler) SubmitAssignment(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	sub, err := h.AssignmentUsecase.Submit(c.Request.Context(), getActor(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Assignment submitted successfully", "submission": sub})
}

func (h *Handler) MarkSubmission(c *gin.Context) {
	var req struct {
		Marks    *int   `json:"marks" binding:"required"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	sub, err := h.AssignmentUsecase.Mark(c.Request.Context(), getActor(c), c.Param("submissionId"), *req.Marks, req.Feedback)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission marked successfully", "submission": sub})
}

func (h *Handler) ListAssignmentSubmissions(c *gin.Context) {
	subs, err := h.AssignmentUsecase.ListSubmissions(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(subs), "submissions": subs})
}

func (h *Handler) GetOwnAssignmentSubmission(c *gin.Context) {
	sub, err := h.AssignmentUsecase.GetOwnSubmission(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}
