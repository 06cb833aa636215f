package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/shouni/go-career-manga/pkg/progress"
)

// WebSocket アップグレードの設定なのだ
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// ローカルツールとして使う前提で全オリジンを許可する
		return true
	},
}

const heartbeatInterval = 15 * time.Second

// JobProgressWebSocket は GET /api/jobs/:id/ws の実体なのだ。
// 進捗トラッカーを購読し、更新をそのままJSONで配信します。
// ジョブが完了または失敗したら最後の1件を送って接続を閉じるのだ。
func (h *Handler) JobProgressWebSocket(c *gin.Context) {
	jobID := c.Param("id")

	tracker, exists := h.progressSvc.GetTracker(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "ジョブが存在しません"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("WebSocketへのアップグレードに失敗したのだ", "job_id", jobID, "error", err)
		return
	}
	defer conn.Close()

	updateChan := tracker.Subscribe()
	defer tracker.Unsubscribe(updateChan)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case update, ok := <-updateChan:
			if !ok {
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				slog.Debug("進捗の配信に失敗したのだ", "job_id", jobID, "error", err)
				return
			}
			if update.Status == progress.StatusCompleted || update.Status == progress.StatusFailed {
				return
			}
		case <-ticker.C:
			// 心拍を送って接続の生死を確かめるのだ
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
