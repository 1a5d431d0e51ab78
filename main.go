package main

import (
	"context"
	"log"
	"os"
	"time"

	"mocktest-service/internal/cache"
	"mocktest-service/internal/db"
	"mocktest-service/internal/event"
	"mocktest-service/internal/handlers"
	"mocktest-service/internal/repository"
	"mocktest-service/internal/selection"
	"mocktest-service/internal/service"
	"mocktest-service/internal/trend"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "mocktest_service"
	}

	// Redis trend snapshot cache; the analyzer degrades to direct
	// storage reads when it is unreachable.
	var cacheStore cache.Store
	if os.Getenv("REDIS_ADDR") != "" {
		redisStore := cache.NewRedisStore(cache.LoadRedisConfig())
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Printf("Redis unreachable, trend caching disabled: %v", err)
		} else {
			cacheStore = redisStore
		}
	} else {
		log.Println("Redis not configured, trend caching disabled")
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, public events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(dbName)

	// Concepts
	conceptRepo := repository.NewConceptRepository(database)
	conceptService := service.NewConceptService(conceptRepo)
	conceptHandler := handlers.NewConceptHandler(conceptService)

	// Questions
	questionRepo := repository.NewQuestionRepository(database)
	questionService := service.NewQuestionService(questionRepo)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Trends
	trendRepo := repository.NewTrendRepository(database)
	analyzer := trend.NewAnalyzer(conceptRepo, questionRepo, trendRepo, cacheStore)
	trendHandler := handlers.NewTrendHandler(analyzer)

	// Test assembly and sessions
	testRepo := repository.NewTestRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	selector := selection.NewSelector(questionRepo)
	testService := service.NewTestService(analyzer, selector, testRepo, sessionRepo)
	testHandler := handlers.NewTestHandler(testService)

	publicConcept := r.Group("/public/mocktest/concept")
	{
		publicConcept.GET("/", func(c *gin.Context) {
			conceptHandler.ListConcepts(c)
			if publisher != nil {
				publisher.Publish("concept.list", nil)
			}
		})
		publicConcept.GET("/:id", func(c *gin.Context) {
			conceptHandler.GetConcept(c)
			if publisher != nil {
				publisher.Publish("concept.get", gin.H{"id": c.Param("id")})
			}
		})
	}

	protectedConcept := r.Group("/protected/mocktest/concept")
	{
		protectedConcept.POST("/", conceptHandler.CreateConcept)
		protectedConcept.PUT("/:id", conceptHandler.UpdateConcept)
		protectedConcept.DELETE("/:id", conceptHandler.DeleteConcept)
	}

	publicQuestion := r.Group("/public/mocktest/question")
	{
		publicQuestion.GET("/", func(c *gin.Context) {
			questionHandler.ListQuestions(c)
			if publisher != nil {
				publisher.Publish("question.list", nil)
			}
		})
		publicQuestion.GET("/:id", func(c *gin.Context) {
			questionHandler.GetQuestion(c)
			if publisher != nil {
				publisher.Publish("question.get", gin.H{"id": c.Param("id")})
			}
		})
	}

	protectedQuestion := r.Group("/protected/mocktest/question")
	{
		protectedQuestion.POST("/", questionHandler.CreateQuestion)
		protectedQuestion.PUT("/:id", questionHandler.UpdateQuestion)
		protectedQuestion.DELETE("/:id", questionHandler.DeleteQuestion)
		protectedQuestion.POST("/bulk", func(c *gin.Context) {
			questionHandler.BulkImportQuestions(c)
			if publisher != nil {
				publisher.Publish("question.bulk_imported", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	protectedTrend := r.Group("/protected/mocktest/trend")
	{
		protectedTrend.POST("/analyze", func(c *gin.Context) {
			trendHandler.AnalyzeTrends(c)
			if publisher != nil {
				publisher.Publish("trend.analyzed", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protectedTrend.GET("/ranking", trendHandler.GetConceptRanking)
	}

	setupTestRoutes(r, testHandler, publisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "6660"
	}
	r.Run(":" + port)
}

func setupTestRoutes(r *gin.Engine, testHandler *handlers.TestHandler, publisher *event.EventPublisher) {
	protectedTest := r.Group("/protected/mocktest/test")
	{
		// Assemble a new mock test from the trend-weighted pipeline
		protectedTest.POST("/generate", func(c *gin.Context) {
			testHandler.GenerateTest(c)
			if publisher != nil {
				publisher.Publish("mocktest.generated", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedTest.GET("/", testHandler.ListTests)
		protectedTest.GET("/:id", testHandler.GetTest)

		// Start an attempt at an assembled test
		protectedTest.POST("/:id/session", func(c *gin.Context) {
			testHandler.CreateSession(c)
			if publisher != nil {
				publisher.Publish("mocktest.session.created", gin.H{
					"test_id":   c.Param("id"),
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
	}
}
