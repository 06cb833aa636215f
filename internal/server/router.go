package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter は API とスタティック配信のルーティングを組み立てるのだ。
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/jobs", h.CreateJob)
		api.GET("/jobs/:id", h.GetJob)
		api.GET("/jobs/:id/ws", h.JobProgressWebSocket)
	}

	// 生成済みのパネル画像とギャラリーをそのまま配信するのだ
	router.Static("/output", h.outputDir)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
