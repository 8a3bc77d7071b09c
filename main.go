package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noteapi/handler"
	"noteapi/llm"
	"noteapi/middleware"
	"noteapi/repository"
	"noteapi/usecase"
	"noteapi/utils"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("OPENAI_API_KEY not set; AI endpoints will return a configuration error")
	}

	// Initialize MongoDB connection
	utils.InitMongoClient()
}

func newSummarizer() llm.Provider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	provider := llm.NewOpenAI(apiKey)
	if baseURL := utils.GetEnvAsString("OPENAI_BASE_URL", ""); baseURL != "" {
		provider.BaseURL = baseURL
	}
	if model := utils.GetEnvAsString("OPENAI_MODEL", ""); model != "" {
		provider.Model = model
	}
	return provider
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Initialize repositories and services
	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	notesService := &usecase.NoteService{NotesRepo: notesRepo}
	aiService := &usecase.AIService{Notes: notesRepo, Provider: newSummarizer()}

	notesHandler := handler.NewNotesHandler(notesService)
	aiHandler := handler.NewAIHandler(aiService)

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		notes := api.Group("/notes")
		{
			notes.GET("/stats", notesHandler.Stats)
			notes.GET("/search", notesHandler.Search)
			notes.GET("/category/:category", notesHandler.ByCategory)
			notes.GET("", notesHandler.List)
			notes.GET("/:id", notesHandler.Get)
			notes.POST("", notesHandler.Create)
			notes.PUT("/:id", notesHandler.Update)
			notes.DELETE("/:id", notesHandler.Delete)
			notes.PATCH("/:id/favorite", notesHandler.ToggleFavorite)
			notes.PATCH("/:id/archive", notesHandler.ToggleArchive)
		}

		ai := api.Group("/ai")
		{
			ai.GET("/stats", aiHandler.Stats)
			ai.POST("/summarize", aiHandler.Summarize)
			ai.POST("/summarize-note/:id", aiHandler.SummarizeNote)
			ai.POST("/generate-tags", aiHandler.GenerateTags)
		}
	}

	return router
}

func main() {
	// Create query indexes; a failure is logged but not fatal so the API
	// still serves without text search.
	db := utils.MongoClient.Database(os.Getenv("MONGO_DB"))
	if err := repository.SetupIndexes(db); err != nil {
		log.Printf("Warning: failed to set up indexes: %v", err)
	}

	router := setupRouter()

	port := utils.GetEnvAsString("PORT", "8080")
	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
