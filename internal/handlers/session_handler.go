package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/services"
	"github.com/quizdash/quiz-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// StartSession opens a quiz session for the authenticated user.
func (h *SessionHandler) StartSession(c *gin.Context) {
	profile, ok := auth.ProfileFromContext(c)
	if !ok {
		h.RespondWithServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.sessionService.Start(c.Request.Context(), &req, profile)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Session started", resp)
}

// GetSession returns the current view of a session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	profile, ok := auth.ProfileFromContext(c)
	if !ok {
		h.RespondWithServiceError(c, services.ErrNotAuthenticated)
		return
	}

	resp, err := h.sessionService.Get(c.Request.Context(), c.Param("id"), profile.ID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session retrieved", resp)
}

// SubmitAnswer records the user's option choice for the current question.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	profile, ok := auth.ProfileFromContext(c)
	if !ok {
		h.RespondWithServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.sessionService.Answer(c.Request.Context(), c.Param("id"), profile.ID, &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", resp)
}

// GetResult serves the result screen for a finished session, including
// whether the score reached the result store.
func (h *SessionHandler) GetResult(c *gin.Context) {
	profile, ok := auth.ProfileFromContext(c)
	if !ok {
		h.RespondWithServiceError(c, services.ErrNotAuthenticated)
		return
	}

	resp, err := h.sessionService.Result(c.Request.Context(), c.Param("id"), profile.ID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Result retrieved", resp)
}

// AbandonSession tears down an in-flight session.
func (h *SessionHandler) AbandonSession(c *gin.Context) {
	profile, ok := auth.ProfileFromContext(c)
	if !ok {
		h.RespondWithServiceError(c, services.ErrNotAuthenticated)
		return
	}

	if err := h.sessionService.Abandon(c.Request.Context(), c.Param("id"), profile.ID); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session abandoned", nil)
}
