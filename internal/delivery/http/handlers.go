package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lingolearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	AuthUsecase         domain.AuthUsecase
	UserUsecase         domain.UserUsecase
	LessonUsecase       domain.LessonUsecase
	AnnouncementUsecase domain.AnnouncementUsecase
	AssignmentUsecase   domain.AssignmentUsecase
	QuizUsecase         domain.QuizUsecase
	ProgressUsecase     domain.ProgressUsecase
	FeedbackUsecase     domain.FeedbackUsecase
}

func NewHandler(
	au domain.AuthUsecase,
	uu domain.UserUsecase,
	lu domain.LessonUsecase,
	anu domain.AnnouncementUsecase,
	asu domain.AssignmentUsecase,
	qu domain.QuizUsecase,
	pu domain.ProgressUsecase,
	fu domain.FeedbackUsecase,
) *Handler {
	return &Handler{
		AuthUsecase:         au,
		UserUsecase:         uu,
		LessonUsecase:       lu,
		AnnouncementUsecase: anu,
		AssignmentUsecase:   asu,
		QuizUsecase:         qu,
		ProgressUsecase:     pu,
		FeedbackUsecase:     fu,
	}
}

// ========== UTILITY FUNCTIONS ==========

func formatValidationErrors(err error) gin.H {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string)
		for _, f := range ve {
			details[f.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", f.Field(), f.Tag())
		}
		return gin.H{"message": "Validation failed", "details": details}
	}
	return gin.H{"message": "Invalid request: " + err.Error()}
}

// fail writes the domain error with the status of the failing gate.
func fail(c *gin.Context, err error) {
	c.JSON(domain.StatusCode(err), gin.H{"message": err.Error()})
}

// ========== AUTH HANDLERS ==========

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Level    string `json:"level" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Level:    domain.Level(req.Level),
		Role:     domain.Role(req.Role),
	}
	if err := h.AuthUsecase.Register(c.Request.Context(), &user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"success": true,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"level": user.Level,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	token, user, err := h.AuthUsecase.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"level": user.Level,
			"role":  user.Role,
		},
	})
}

// OAuthLogin exchanges a verified provider profile for a session token,
// creating the account on first sight. Profile verification against the
// provider happens upstream.
func (h *Handler) OAuthLogin(c *gin.Context) {
	var req struct {
		Provider   string `json:"provider" binding:"required"`
		ExternalID string `json:"external_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	token, user, err := h.AuthUsecase.FindOrCreateOAuth(c.Request.Context(),
		domain.AuthProvider(req.Provider), req.ExternalID, req.Name, req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"level": user.Level,
			"role":  user.Role,
		},
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	if err := h.AuthUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
}

// ========== USER HANDLERS ==========

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.UserUsecase.GetAll(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		fail(c, err)
		return
	}
	user, err := h.UserUsecase.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Level    string `json:"level"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.UserUsecase.Update(c.Request.Context(), getActor(c), id, &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Level:    domain.Level(req.Level),
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.UserUsecase.Delete(c.Request.Context(), getActor(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseUserID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, domain.ErrValidation("invalid user id")
	}
	return uint(id), nil
}

// ========== PROGRESS HANDLERS ==========

func (h *Handler) MarkLessonWatched(c *gin.Context) {
	progress, err := h.ProgressUsecase.MarkLessonWatched(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Lesson has been marked as watched",
		"progress": progress,
	})
}

func (h *Handler) GetOwnProgress(c *gin.Context) {
	progress, err := h.ProgressUsecase.GetOwn(c.Request.Context(), getActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (h *Handler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	board, err := h.ProgressUsecase.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(board), "leaderboard": board})
}

func (h *Handler) ResetWeeklyPoints(c *gin.Context) {
	if err := h.ProgressUsecase.ResetWeekly(c.Request.Context(), getActor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weekly points reset successfully"})
}
