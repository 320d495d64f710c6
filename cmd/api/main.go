package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"docuserve/internal/config"
	"docuserve/internal/database"
	"docuserve/internal/middleware"
	"docuserve/internal/modules/documents"
	"docuserve/internal/repository"
	"docuserve/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.ConnectWithRetry(cfg.DatabaseURL, cfg.DBMaxRetries, cfg.DBRetryDelay)
	if err != nil {
		log.Fatal(err)
	}

	documentRepo := repository.NewDocumentRepository(db)
	userRepo := repository.NewUserRepository(db)

	if err := documentRepo.Migrate(); err != nil {
		log.Fatal("migration failed:", err)
	}
	if err := userRepo.Migrate(); err != nil {
		log.Fatal("migration failed:", err)
	}
	log.Println("Database tables created successfully!")

	store := storage.NewDisk(cfg.UploadDir)

	documentsService := documents.NewService(documentRepo, store)
	documentsHandler := documents.NewHandler(documentsService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "DocuServe API is running"})
	})

	api := r.Group("/api")
	documentsHandler.RegisterRoutes(api.Group("/documents"))

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
