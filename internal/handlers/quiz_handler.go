package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizdash/quiz-service/internal/services"
	"github.com/quizdash/quiz-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	importService services.ImportService
}

func NewQuizHandler(quizService services.QuizService, importService services.ImportService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		importService: importService,
	}
}

// ListQuizzes serves the quiz catalog.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quizzes retrieved", quizzes)
}

// GetQuiz serves a single quiz with its ordered questions.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetWithQuestions(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz retrieved", quiz)
}

// ImportQuizzes ingests a spreadsheet of quizzes.
func (h *QuizHandler) ImportQuizzes(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "missing upload file", err)
		return
	}
	defer file.Close()

	result, err := h.importService.ImportQuizzes(c.Request.Context(), file)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Import completed", result)
}

func parseUintParam(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: raw,
		})
		return 0, false
	}
	return uint(value), true
}
