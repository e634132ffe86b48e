package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/services"
	"github.com/quizdash/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler        *QuizHandler
	sessionHandler     *SessionHandler
	leaderboardHandler *LeaderboardHandler
	verifier           auth.Verifier
}

func NewHandlerManager(
	quizService services.QuizService,
	importService services.ImportService,
	sessionService services.SessionService,
	leaderboardService services.LeaderboardService,
	leaderboardLimit int,
	verifier auth.Verifier,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:        NewQuizHandler(quizService, importService, logger),
		sessionHandler:     NewSessionHandler(sessionService, logger),
		leaderboardHandler: NewLeaderboardHandler(leaderboardService, leaderboardLimit, logger),
		verifier:           verifier,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	requireAuth := auth.Middleware(hm.verifier, true)
	optionalAuth := auth.Middleware(hm.verifier, false)

	v1 := router.Group("/api/v1")
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.POST("/import", requireAuth, hm.quizHandler.ImportQuizzes)
		}

		sessions := v1.Group("/sessions", requireAuth)
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answer", hm.sessionHandler.SubmitAnswer)
			sessions.GET("/:id/result", hm.sessionHandler.GetResult)
			sessions.DELETE("/:id", hm.sessionHandler.AbandonSession)
		}

		v1.GET("/leaderboard", optionalAuth, hm.leaderboardHandler.GetLeaderboard)
	}
}
