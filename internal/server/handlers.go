package server

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shouni/go-career-manga/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/progress"
)

// ジョブ1件に許す最大実行時間なのだ。8パネルぶんの描画とレート制限を見込む。
const jobTimeout = 15 * time.Minute

// PipelineRunner はジョブ実行への契約です。workflow.Manager がこれを満たします。
type PipelineRunner interface {
	Run(ctx context.Context, profileURL, outputDir string, tracker *progress.Tracker) domain.PipelineResult
}

// Handler は HTTP API の実体です。
type Handler struct {
	runner      PipelineRunner
	progressSvc *progress.Service
	store       *JobStore
	outputDir   string
}

// NewHandler は依存関係を注入してハンドラーを初期化します。
func NewHandler(runner PipelineRunner, progressSvc *progress.Service, store *JobStore, outputDir string) *Handler {
	return &Handler{
		runner:      runner,
		progressSvc: progressSvc,
		store:       store,
		outputDir:   outputDir,
	}
}

// CreateJob は POST /api/jobs の実体なのだ。
// URL検証に通ったら即座に 202 を返し、パイプラインはバックグラウンドで実行します。
func (h *Handler) CreateJob(c *gin.Context) {
	var req struct {
		ProfileURL string `json:"profile_url" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が不正です"})
		return
	}

	// 検証失敗は外部APIを呼ぶ前に即座に返すのだ
	if !domain.IsValidProfileURL(req.ProfileURL) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "LinkedInのプロフィールURLではありません",
			"kind":  domain.ErrorKindValidation,
		})
		return
	}

	jobID := uuid.NewString()
	h.store.Create(jobID, req.ProfileURL)
	tracker := h.progressSvc.CreateTracker(jobID)

	// ジョブごとに出力ディレクトリを分けて衝突を防ぐのだ
	jobDir := filepath.Join(h.outputDir, jobID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		result := h.runner.Run(ctx, req.ProfileURL, jobDir, tracker)
		h.store.SetResult(jobID, result)
		slog.Info("ジョブが終了したのだ", "job_id", jobID, "success", result.Success)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  jobID,
		"message": "漫画の生成を開始したのだ。進捗はWebSocketで購読できます",
	})
}

// GetJob は GET /api/jobs/:id の実体なのだ。進捗スナップショットと最終結果を返します。
func (h *Handler) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	job, exists := h.store.Get(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "ジョブが存在しません"})
		return
	}

	resp := gin.H{
		"job_id":      job.ID,
		"profile_url": job.ProfileURL,
		"created_at":  job.CreatedAt,
	}

	if tracker, ok := h.progressSvc.GetTracker(jobID); ok {
		snap := tracker.Snapshot()
		resp["status"] = snap.Status
		resp["stage"] = snap.Stage
		resp["progress"] = snap.Progress
		resp["message"] = snap.Message
	}
	if job.Result != nil {
		resp["result"] = job.Result
	}

	c.JSON(http.StatusOK, resp)
}
