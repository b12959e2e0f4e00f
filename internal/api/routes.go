package api

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fate_gm_helper/internal/api/handlers"
	"fate_gm_helper/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	registerValidatorTagName()

	// 初始化 handlers
	campaignHandler := handlers.NewCampaignHandler(services.Campaign)
	roundHandler := handlers.NewRoundHandler(services.Round, services.History)
	submissionHandler := handlers.NewSubmissionHandler(services.Submission)
	streamHandler := handlers.NewStreamHandler(services.Hub)
	wsHandler := handlers.NewWebSocketHandler(services.Hub, services.Logger)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 基本的健康檢查
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 戰役管理
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", campaignHandler.List)
		campaigns.POST("", campaignHandler.Create)
		campaigns.GET("/:id", campaignHandler.Get)
		campaigns.DELETE("/:id", campaignHandler.Delete)
	}

	// 行動提交
	submissions := api.Group("/action-submissions")
	{
		submissions.POST("", submissionHandler.Submit)       // 提交行動
		submissions.GET("", submissionHandler.ListCurrent)   // 列出目前有效的提交
		submissions.GET("/stream", streamHandler.Stream)     // SSE 即時推送
		submissions.GET("/ws", wsHandler.HandleWebSocket)    // WebSocket 即時推送
	}

	// 回合生命週期
	rounds := api.Group("/rounds")
	{
		rounds.GET("/current", roundHandler.Current)           // 取得（或建立）目前回合
		rounds.POST("/next", roundHandler.Next)                // 手動推進回合
		rounds.POST("/close-current", roundHandler.CloseCurrent) // 關閉目前回合
		rounds.GET("/history", roundHandler.History)           // 歷史快照列表
	}
}

// registerValidatorTagName 讓驗證錯誤回報 json 欄位名而不是結構欄位名
func registerValidatorTagName() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fd reflect.StructField) string {
		name := strings.SplitN(fd.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
