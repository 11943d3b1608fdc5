package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hireflow/interview-engine/internal/config"
	"hireflow/interview-engine/internal/handlers"
	"hireflow/interview-engine/internal/repositories"
	"hireflow/interview-engine/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	knowledgeRepo := repositories.NewKnowledgeRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize domain services
	curatorService := services.NewCuratorService(
		knowledgeRepo,
		questionRepo,
		geminiService,
		qdrantService,
		cfg.Generation.RetryMaxAttempts,
		cfg.Generation.RetryInitialDelay,
	)
	scorerService := services.NewScorerService(questionRepo, geminiService)
	progressionService := services.NewProgressionService(interviewRepo, questionRepo, scorerService)
	matcherService := services.NewMatcherService(geminiService)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo)
	questionHandler := handlers.NewQuestionHandler(
		jobRepo,
		questionRepo,
		feedbackRepo,
		curatorService,
		scorerService,
		cfg.Generation.DefaultQuestions,
	)
	interviewHandler := handlers.NewInterviewHandler(
		interviewRepo,
		jobRepo,
		candidateRepo,
		questionRepo,
		progressionService,
	)
	matchHandler := handlers.NewMatchHandler(matcherService, interviewRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Progression Engine API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Post("/jobs/:id/questions", questionHandler.HandleCurateQuestions)
	api.Get("/jobs/:id/questions", questionHandler.HandleListJobQuestions)
	api.Post("/candidates", candidateHandler.HandleCreateCandidate)
	api.Post("/questions/:id/feedback", questionHandler.HandleQuestionFeedback)
	api.Post("/questions/:id/score", questionHandler.HandleScoreAnswer)
	api.Post("/interviews", interviewHandler.HandleAssignInterview)
	api.Get("/interviews/:id/questions", interviewHandler.HandleListInterviewQuestions)
	api.Post("/interviews/:id/submit", interviewHandler.HandleSubmitAnswers)
	api.Get("/interviews/:id/result", interviewHandler.HandleGetResult)
	api.Post("/match", matchHandler.HandleMatch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Progression Engine API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"POST /api/v1/jobs/:id/questions",
				"GET /api/v1/jobs/:id/questions",
				"POST /api/v1/candidates",
				"POST /api/v1/questions/:id/feedback",
				"POST /api/v1/questions/:id/score",
				"POST /api/v1/interviews",
				"GET /api/v1/interviews/:id/questions",
				"POST /api/v1/interviews/:id/submit",
				"GET /api/v1/interviews/:id/result",
				"POST /api/v1/match",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
