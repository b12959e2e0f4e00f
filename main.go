package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fate_gm_helper/internal/api"
	"fate_gm_helper/internal/config"
	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
	"fate_gm_helper/internal/service"
	"fate_gm_helper/internal/storage"
)

func main() {
	// 初始化日誌
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.Campaign{}, &models.Round{}, &models.ActionSubmission{}, &models.ActionHistory{}); err != nil {
		logger.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, logger)

	// 設置 Gin 路由
	r := gin.Default()

	// 前端是獨立部署的 Vue 應用，需要允許跨域存取
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, services)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
