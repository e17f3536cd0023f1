package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/bookstore-api/internal/handler/dto"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
	"github.com/yourusername/bookstore-api/internal/service"
)

// QuizHandler serves the quiz-to-coupon endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetActiveQuiz returns the active quiz with answers stripped.
// GET /api/quiz/active (optional auth: completed users get 403)
func (h *QuizHandler) GetActiveQuiz(c *gin.Context) {
	_, email, _ := currentUser(c)

	view, err := h.quizService.GetActiveQuizForUser(email)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitQuizRequest is a scored submission.
type SubmitQuizRequest struct {
	QuizID  uint     `json:"quizId" binding:"required"`
	Answers []string `json:"answers" binding:"required"`
}

// SubmitQuiz scores the submission and returns the earned coupon, if any.
// POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, email, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quizService.SubmitQuiz(&service.AuthUser{ID: userID, Email: email}, req.QuizID, req.Answers)
	if err != nil {
		handleError(c, err)
		return
	}

	response := dto.SubmitQuizResponse{
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Message:        result.Message,
	}
	if result.Coupon != nil {
		response.Coupon = dto.NewCouponResponse(result.Coupon)
	}

	c.JSON(http.StatusOK, response)
}

// ResetMyCompletion lets a user retake the active quiz.
// POST /api/quiz/reset-my-completion
func (h *QuizHandler) ResetMyCompletion(c *gin.Context) {
	_, email, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	title, removed, err := h.quizService.ResetMyCompletion(email)
	if err != nil {
		handleError(c, err)
		return
	}

	message := "No completion record found for the active quiz"
	if removed {
		message = "Completion record reset, you can retake the quiz"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "quiz_title": title})
}

// ListQuizzes returns every quiz, newest first.
// GET /api/quiz/all (admin)
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// CreateQuizRequest is the admin create payload.
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	Questions   []struct {
		Question string   `json:"question" binding:"required,min=3,max=500"`
		Options  []string `json:"options" binding:"required,min=2,max=6"`
		Answer   string   `json:"answer" binding:"required"`
	} `json:"questions" binding:"required,min=1"`
	Rewards []struct {
		MinScore           *int     `json:"minScore" binding:"required"`
		DiscountPercentage *float64 `json:"discountPercentage" binding:"required"`
		CouponPrefix       string   `json:"couponPrefix" binding:"required,min=1,max=20"`
	} `json:"rewards" binding:"required,min=1"`
}

// CreateQuiz creates a quiz as the new active one and resets the
// completion ledger.
// POST /api/quiz/create (admin)
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
	}
	for _, q := range req.Questions {
		input.Questions = append(input.Questions, service.QuizQuestionInput{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	for _, r := range req.Rewards {
		input.Rewards = append(input.Rewards, service.RewardTierInput{
			MinScore:           r.MinScore,
			DiscountPercentage: r.DiscountPercentage,
			CouponPrefix:       r.CouponPrefix,
		})
	}

	quiz, err := h.quizService.CreateQuiz(input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizSummaryResponse(quiz))
}

// DeleteQuiz removes a quiz, activating a survivor if needed.
// DELETE /api/quiz/:id (admin)
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ActivateQuiz makes the given quiz the single active one.
// PATCH /api/quiz/:id/activate (admin)
func (h *QuizHandler) ActivateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.ActivateQuiz(quizID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizSummaryResponse(quiz))
}

// DebugUserQuizzes is admin tooling over the completion ledger.
// GET /api/quiz/debug/user-quizzes?clearAll=true|email=...|quizId=... (admin)
func (h *QuizHandler) DebugUserQuizzes(c *gin.Context) {
	if c.Query("clearAll") == "true" {
		deleted, err := h.quizService.ResetAllCompletions()
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All completion records cleared", "deleted": deleted})
		return
	}

	if email := c.Query("email"); email != "" {
		deleted, err := h.quizService.ResetCompletionsByEmail(email)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Completion records cleared for user", "email": email, "deleted": deleted})
		return
	}

	if quizIDStr := c.Query("quizId"); quizIDStr != "" {
		quizID, err := strconv.ParseUint(quizIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quizId"})
			return
		}
		deleted, err := h.quizService.ResetCompletionsByQuiz(uint(quizID))
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Completion records cleared for quiz", "quiz_id": quizID, "deleted": deleted})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Specify clearAll=true, email or quizId"})
}
