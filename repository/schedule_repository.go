package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mortgage-engine/domain"
)

var ErrNotFound = errors.New("calculation not found")

// CalculationRecord is what gets persisted for each computed schedule. The
// month-by-month entries are not stored; they are cheap to recompute.
type CalculationRecord struct {
	ID             uuid.UUID              `json:"id"`
	Terms          domain.MortgageTerms   `json:"terms"`
	MonthlyPayment float64                `json:"monthly_payment"`
	Summary        domain.ScheduleSummary `json:"summary"`
	CreatedAt      time.Time              `json:"created_at"`
}

type ScheduleRepository interface {
	Save(ctx context.Context, record CalculationRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (CalculationRecord, error)
}
