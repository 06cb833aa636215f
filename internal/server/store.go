package server

import (
	"sync"
	"time"

	"github.com/shouni/go-career-manga/pkg/domain"
)

// Job は1回の漫画生成ジョブの記録です。
type Job struct {
	ID         string                 `json:"job_id"`
	ProfileURL string                 `json:"profile_url"`
	CreatedAt  time.Time              `json:"created_at"`
	Result     *domain.PipelineResult `json:"result,omitempty"` // 実行中は nil なのだ
}

// JobStore はジョブの記録をメモリ上で管理します。
type JobStore struct {
	jobs  map[string]*Job
	mutex sync.RWMutex
}

// NewJobStore は空のジョブストアを生成します。
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
	}
}

// Create は新しいジョブを登録します。
func (s *JobStore) Create(id, profileURL string) *Job {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job := &Job{
		ID:         id,
		ProfileURL: profileURL,
		CreatedAt:  time.Now(),
	}
	s.jobs[id] = job
	return job
}

// Get はジョブIDに対応する記録を返します。
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, exists := s.jobs[id]
	return job, exists
}

// SetResult はジョブの最終結果を記録します。記録後の結果は変更しないのだ。
func (s *JobStore) SetResult(id string, result domain.PipelineResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if job, exists := s.jobs[id]; exists {
		job.Result = &result
	}
}
