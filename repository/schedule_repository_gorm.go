package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mortgage-engine/domain"
)

// calculationRow is the table layout of a CalculationRecord.
type calculationRow struct {
	ID                       string    `gorm:"type:uuid;primaryKey"`
	Principal                float64   `gorm:"not null"`
	AnnualRatePercent        float64   `gorm:"not null"`
	TermYears                int       `gorm:"not null"`
	AnniversaryEnabled       bool      `gorm:"not null;default:false"`
	MonthlyPayment           float64   `gorm:"not null"`
	TotalMonths              int       `gorm:"not null"`
	TotalInterestPaid        float64   `gorm:"not null;default:0"`
	TotalMonthlyPayments     float64   `gorm:"not null;default:0"`
	TotalAnniversaryPayments float64   `gorm:"not null;default:0"`
	MonthsSaved              int       `gorm:"not null;default:0"`
	TotalCost                float64   `gorm:"not null;default:0"`
	CreatedAt                time.Time `gorm:"index"`
}

func (calculationRow) TableName() string {
	return "mortgage_calculations"
}

func toRow(r CalculationRecord) calculationRow {
	return calculationRow{
		ID:                       r.ID.String(),
		Principal:                r.Terms.Principal,
		AnnualRatePercent:        r.Terms.AnnualRatePercent,
		TermYears:                r.Terms.TermYears,
		AnniversaryEnabled:       r.Terms.AnniversaryEnabled,
		MonthlyPayment:           r.MonthlyPayment,
		TotalMonths:              r.Summary.TotalMonths,
		TotalInterestPaid:        r.Summary.TotalInterestPaid,
		TotalMonthlyPayments:     r.Summary.TotalMonthlyPayments,
		TotalAnniversaryPayments: r.Summary.TotalAnniversaryPayments,
		MonthsSaved:              r.Summary.MonthsSaved,
		TotalCost:                r.Summary.TotalCost,
		CreatedAt:                r.CreatedAt,
	}
}

func fromRow(row calculationRow) (CalculationRecord, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return CalculationRecord{}, fmt.Errorf("stored id %q: %w", row.ID, err)
	}
	return CalculationRecord{
		ID: id,
		Terms: domain.MortgageTerms{
			Principal:          row.Principal,
			AnnualRatePercent:  row.AnnualRatePercent,
			TermYears:          row.TermYears,
			AnniversaryEnabled: row.AnniversaryEnabled,
		},
		MonthlyPayment: row.MonthlyPayment,
		Summary: domain.ScheduleSummary{
			TotalMonths:              row.TotalMonths,
			TotalInterestPaid:        row.TotalInterestPaid,
			TotalMonthlyPayments:     row.TotalMonthlyPayments,
			TotalAnniversaryPayments: row.TotalAnniversaryPayments,
			MonthsSaved:              row.MonthsSaved,
			TotalCost:                row.TotalCost,
		},
		CreatedAt: row.CreatedAt,
	}, nil
}

// ScheduleRepositoryGorm stores calculations in PostgreSQL.
type ScheduleRepositoryGorm struct {
	DB *gorm.DB
}

// OpenPostgres connects with the given DSN and migrates the calculations table.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&calculationRow{})
}

func NewScheduleRepositoryGorm(db *gorm.DB) *ScheduleRepositoryGorm {
	return &ScheduleRepositoryGorm{DB: db}
}

func (r *ScheduleRepositoryGorm) Save(ctx context.Context, record CalculationRecord) error {
	row := toRow(record)
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *ScheduleRepositoryGorm) FindByID(ctx context.Context, id uuid.UUID) (CalculationRecord, error) {
	var row calculationRow
	err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CalculationRecord{}, ErrNotFound
	}
	if err != nil {
		return CalculationRecord{}, err
	}
	return fromRow(row)
}
