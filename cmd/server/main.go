package main

import (
	"log"
	"os"
	"strconv"

	"recipeshare-backend/handlers"
	"recipeshare-backend/repository"
	"recipeshare-backend/service"
	"recipeshare-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize repository (seeded, memory-resident)
	recipeRepo := repository.NewRecipeRepository()

	// Initialize services
	commentService := service.NewCommentService(
		service.WithCommentRecipeRepository(recipeRepo),
	)

	uploadOpts := []service.UploadServiceOption{
		service.WithUploadRecipeRepository(recipeRepo),
		service.WithUploadStorage(fileStorage),
	}
	if maxBytes := maxUploadBytesFromEnv(); maxBytes > 0 {
		uploadOpts = append(uploadOpts, service.WithMaxFileSize(maxBytes))
	}
	uploadService := service.NewUploadService(uploadOpts...)

	// Initialize handlers
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, commentService, uploadService, fileStorage)
	adminHandler := handlers.NewAdminHandler(recipeRepo)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.GET("/recipes", recipeHandler.ListRecipes)
	r.GET("/recipes/:id", recipeHandler.GetRecipe)
	r.POST("/recipes/:id/comment", recipeHandler.PostComment)
	r.POST("/recipes/:id/upload", recipeHandler.UploadImage)

	// Legacy singular aliases kept for older clients
	r.GET("/recipe/:id", recipeHandler.GetRecipe)
	r.POST("/recipe/:id/comment", recipeHandler.PostComment)
	r.POST("/recipe/:id/upload", recipeHandler.UploadImage)

	// Read-only static serving of stored uploads
	r.GET("/uploads/:filename", recipeHandler.ServeUpload)

	r.GET("/admin/dashboard", adminHandler.Dashboard)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func maxUploadBytesFromEnv() int64 {
	val := os.Getenv("MAX_UPLOAD_BYTES")
	if val == "" {
		return 0
	}
	maxBytes, err := strconv.ParseInt(val, 10, 64)
	if err != nil || maxBytes <= 0 {
		log.Printf("Warning: ignoring invalid MAX_UPLOAD_BYTES=%q", val)
		return 0
	}
	return maxBytes
}
