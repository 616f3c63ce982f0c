// Package queue 限制同時進行的外部抽取呼叫數
package queue

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Status 佇列狀態
type Status struct {
	InFlight       int64 `json:"in_flight"`
	Waiting        int64 `json:"waiting"`
	ProcessedCount int64 `json:"processed_count"`
	MaxInFlight    int64 `json:"max_in_flight"`
}

// Manager 以權重號誌實作的併發上限
type Manager struct {
	sem       *semaphore.Weighted
	max       int64
	inFlight  atomic.Int64
	waiting   atomic.Int64
	processed atomic.Int64
}

// NewManager 建立管理器，maxInFlight 小於 1 時視為 1
func NewManager(maxInFlight int) *Manager {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Manager{
		sem: semaphore.NewWeighted(int64(maxInFlight)),
		max: int64(maxInFlight),
	}
}

// Do 取得名額後執行 fn；ctx 在取得名額前結束時回傳 ctx.Err()
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.waiting.Add(1)
	err := m.sem.Acquire(ctx, 1)
	m.waiting.Add(-1)
	if err != nil {
		return err
	}
	m.inFlight.Add(1)
	defer func() {
		m.inFlight.Add(-1)
		m.processed.Add(1)
		m.sem.Release(1)
	}()
	return fn(ctx)
}

// GetQueueStatus 取得目前狀態
func (m *Manager) GetQueueStatus() Status {
	return Status{
		InFlight:       m.inFlight.Load(),
		Waiting:        m.waiting.Load(),
		ProcessedCount: m.processed.Load(),
		MaxInFlight:    m.max,
	}
}
