package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ScheduleRepositoryMemory is an in-memory implementation of ScheduleRepository.
type ScheduleRepositoryMemory struct {
	mu   sync.RWMutex
	data map[uuid.UUID]CalculationRecord
}

// NewScheduleRepositoryMemory creates a new in-memory schedule repository.
func NewScheduleRepositoryMemory() *ScheduleRepositoryMemory {
	return &ScheduleRepositoryMemory{
		data: make(map[uuid.UUID]CalculationRecord),
	}
}

// Save stores the record in memory.
func (r *ScheduleRepositoryMemory) Save(_ context.Context, record CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[record.ID] = record
	return nil
}

func (r *ScheduleRepositoryMemory) FindByID(_ context.Context, id uuid.UUID) (CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.data[id]
	if !ok {
		return CalculationRecord{}, ErrNotFound
	}
	return record, nil
}

func (r *ScheduleRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
