package progress

import (
	"fmt"
	"sync"
	"time"
)

// ステータス値。購読側のUIがそのまま表示に使うのだ。
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Update は購読者へ配信される進捗の1スナップショットです。
type Update struct {
	Stage    string `json:"stage"`    // 現在のパイプライン段階
	Progress int    `json:"progress"` // 進捗率 (0-100)
	Message  string `json:"message"`  // 説明メッセージ
	Status   string `json:"status"`   // running / completed / failed
}

// Tracker は長時間ジョブの進捗を追跡する実体です。
// 進捗率は単調増加で、購読者への配信は非ブロッキングなのだ。
type Tracker struct {
	JobID       string
	Stage       string
	Progress    int
	Message     string
	Status      string
	StartTime   time.Time
	UpdateTime  time.Time
	Subscribers map[chan Update]bool
	Done        chan struct{}
	mutex       sync.Mutex
}

// Service はジョブIDごとの Tracker を管理します。
type Service struct {
	trackers map[string]*Tracker
	mutex    sync.RWMutex
}

// NewService は進捗サービスを初期化します。
func NewService() *Service {
	return &Service{
		trackers: make(map[string]*Tracker),
	}
}

// CreateTracker は新しい進捗トラッカーを作成します。既存のIDならそれを返すのだ。
func (s *Service) CreateTracker(jobID string) *Tracker {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if tracker, exists := s.trackers[jobID]; exists {
		return tracker
	}

	tracker := &Tracker{
		JobID:       jobID,
		Progress:    0,
		Message:     "ジョブを初期化中...",
		Status:      StatusRunning,
		StartTime:   time.Now(),
		UpdateTime:  time.Now(),
		Subscribers: make(map[chan Update]bool),
		Done:        make(chan struct{}),
	}

	s.trackers[jobID] = tracker
	return tracker
}

// GetTracker はジョブIDに対応するトラッカーを取得します。
func (s *Service) GetTracker(jobID string) (*Tracker, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tracker, exists := s.trackers[jobID]
	return tracker, exists
}

// CleanupCompletedJobs は完了済みで古いトラッカーを破棄します。
func (s *Service) CleanupCompletedJobs(maxAge time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for id, tracker := range s.trackers {
		tracker.mutex.Lock()
		isCompleted := tracker.Status == StatusCompleted || tracker.Status == StatusFailed
		isOld := now.Sub(tracker.UpdateTime) > maxAge
		tracker.mutex.Unlock()

		if isCompleted && isOld {
			delete(s.trackers, id)
		}
	}
}

// UpdateProgress は段階と進捗率を更新し、全購読者へ配信します。
// 進捗率が現在値より小さい場合は巻き戻さないのだ。
func (t *Tracker) UpdateProgress(stage string, progress int, message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if progress > t.Progress {
		t.Progress = progress
	}
	if stage != "" {
		t.Stage = stage
	}
	if message != "" {
		t.Message = message
	}
	t.UpdateTime = time.Now()

	t.broadcastLocked()
}

// Complete はジョブを完了として記録します。
func (t *Tracker) Complete(message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.Progress = 100
	if message != "" {
		t.Message = message
	} else {
		t.Message = "ジョブが完了したのだ"
	}
	t.Status = StatusCompleted
	t.UpdateTime = time.Now()

	t.broadcastLocked()
	close(t.Done)
}

// Fail はジョブを失敗として記録します。進捗率は失敗時点のまま保持するのだ。
func (t *Tracker) Fail(errorMsg string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.Message = fmt.Sprintf("ジョブが失敗しました: %s", errorMsg)
	t.Status = StatusFailed
	t.UpdateTime = time.Now()

	t.broadcastLocked()
	close(t.Done)
}

// Subscribe は進捗更新の購読チャネルを返します。現在の状態を即座に1件受信するのだ。
func (t *Tracker) Subscribe() chan Update {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// バッファを持たせて配信側がブロックしないようにする
	subscriber := make(chan Update, 10)
	t.Subscribers[subscriber] = true

	subscriber <- t.snapshotLocked()
	return subscriber
}

// Unsubscribe は購読を解除し、チャネルを閉じます。
func (t *Tracker) Unsubscribe(subscriber chan Update) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	delete(t.Subscribers, subscriber)
	close(subscriber)
}

// Snapshot は現在の進捗状態を返します。
func (t *Tracker) Snapshot() Update {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Update {
	return Update{
		Stage:    t.Stage,
		Progress: t.Progress,
		Message:  t.Message,
		Status:   t.Status,
	}
}

// broadcastLocked は全購読者へ非ブロッキングで配信します。満杯のチャネルはスキップするのだ。
func (t *Tracker) broadcastLocked() {
	update := t.snapshotLocked()
	for subscriber := range t.Subscribers {
		select {
		case subscriber <- update:
		default:
		}
	}
}
