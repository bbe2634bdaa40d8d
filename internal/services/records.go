// Package services sits between the HTTP transport and the record store:
// request validation, parameter clamping, and error mapping live here so
// handlers stay thin.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"macrocli/pkg/contracts/domain"
)

// List pagination bounds, matching the limits the API documents.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ErrDateMismatch is returned when the date in an update path disagrees with
// the date inside the payload.
var ErrDateMismatch = errors.New("date in path must match record date")

// RecordStore is the slice of the store the record service needs.
type RecordStore interface {
	Get(ctx context.Context, date string) (domain.MonthlyRecord, error)
	List(ctx context.Context, skip, limit int) ([]domain.MonthlyRecord, error)
	Insert(ctx context.Context, rec domain.MonthlyRecord) error
	Update(ctx context.Context, rec domain.MonthlyRecord) error
	Delete(ctx context.Context, date string) error
}

// RecordService implements CRUD over monthly panel records.
type RecordService struct {
	store    RecordStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRecordService creates a record service.
func NewRecordService(store RecordStore, logger *slog.Logger) *RecordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordService{
		store:    store,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "record_service")),
	}
}

// ValidateDate checks a date path parameter against the panel key format.
func (s *RecordService) ValidateDate(date string) error {
	if err := s.validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// Get returns the record for one date.
func (s *RecordService) Get(ctx context.Context, date string) (domain.MonthlyRecord, error) {
	return s.store.Get(ctx, date)
}

// List returns records ordered by date. Negative skip is clamped to zero;
// limit is clamped into [1, MaxListLimit] with DefaultListLimit for zero.
func (s *RecordService) List(ctx context.Context, skip, limit int) ([]domain.MonthlyRecord, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.List(ctx, skip, limit)
}

// Create validates and inserts a new record.
func (s *RecordService) Create(ctx context.Context, rec domain.MonthlyRecord) error {
	if err := s.validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "record created", slog.String("date", rec.Date))
	return nil
}

// Update validates and replaces the record at date. The payload's date must
// match the path date.
func (s *RecordService) Update(ctx context.Context, date string, rec domain.MonthlyRecord) error {
	if rec.Date != date {
		return ErrDateMismatch
	}
	if err := s.validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	if err := s.store.Update(ctx, rec); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "record updated", slog.String("date", date))
	return nil
}

// Delete removes the record at date.
func (s *RecordService) Delete(ctx context.Context, date string) error {
	if err := s.store.Delete(ctx, date); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "record deleted", slog.String("date", date))
	return nil
}
