package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/cache"
	"github.com/quizdash/quiz-service/internal/config"
	"github.com/quizdash/quiz-service/internal/handlers"
	"github.com/quizdash/quiz-service/internal/repositories/postgres"
	"github.com/quizdash/quiz-service/internal/services"
	"github.com/quizdash/quiz-service/internal/session"
	"github.com/quizdash/quiz-service/internal/utils"
	"github.com/quizdash/quiz-service/internal/validator"
	"github.com/quizdash/quiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, slogger)
	verifier := auth.NewCasdoorVerifier(cfg.Casdoor)
	v := validator.New()
	manager := session.NewManager()

	quizService := services.NewQuizService(repo, slogger)
	importService := services.NewImportService(repo, v, slogger)
	submissionService := services.NewSubmissionService(repo, cacheService, publisher, slogger)
	leaderboardService := services.NewLeaderboardService(repo, cacheService, slogger)
	sessionService := services.NewSessionService(repo, manager, submissionService, v, slogger, session.Config{
		SettleDelay: cfg.SettleDelay,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		quizService,
		importService,
		sessionService,
		leaderboardService,
		cfg.LeaderboardLimit,
		verifier,
		logger,
	)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
