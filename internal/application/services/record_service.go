package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/infrastructure/metrics"
	"github.com/unimedia/agencysite/internal/ports"
)

const contactDateLayout = "2006-01-02"

// RecordService handles collection operations for every entity type
type RecordService struct {
	recordRepo ports.RecordRepository
	validate   *validator.Validate
	metrics    *metrics.Metrics
	logger     *logger.Logger
	now        func() time.Time
}

// NewRecordService creates a new record service
func NewRecordService(recordRepo ports.RecordRepository, validate *validator.Validate, m *metrics.Metrics, logger *logger.Logger) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		validate:   validate,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

var _ ports.RecordService = (*RecordService)(nil)

// List returns every record of a collection in stored order
func (s *RecordService) List(ctx context.Context, entityType entities.EntityType) ([]entities.Record, error) {
	return s.recordRepo.List(ctx, entityType)
}

// Create validates and stores a new record
func (s *RecordService) Create(ctx context.Context, entityType entities.EntityType, record entities.Record) (entities.Record, error) {
	if record == nil {
		return nil, entities.ErrInvalidItem
	}

	record = record.Clone()
	if entityType == entities.EntityTypeContact {
		if date, _ := record["date"].(string); date == "" {
			record["date"] = s.now().Format(contactDateLayout)
		}
	}

	if err := s.validateRecord(entityType, record); err != nil {
		return nil, err
	}

	created, err := s.recordRepo.Create(ctx, entityType, record)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMutation(entityType.String(), "create")
	s.logger.LogAdminAction("create", entityType.String(), map[string]interface{}{"id": created["id"]})

	return created, nil
}

// Update shallow-merges patch into the record with the given id.
// The merged record must still satisfy the entity's validation rules; the check
// runs inside the store's locked read-modify-write cycle. A nil patch is
// rejected only once the record is known to exist.
func (s *RecordService) Update(ctx context.Context, entityType entities.EntityType, id string, patch entities.Record) (entities.Record, error) {
	updated, err := s.recordRepo.Update(ctx, entityType, id, patch, func(merged entities.Record) error {
		if patch == nil {
			return entities.ErrInvalidItem
		}
		return s.validateRecord(entityType, merged)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMutation(entityType.String(), "update")
	s.logger.LogAdminAction("update", entityType.String(), map[string]interface{}{"id": id})

	return updated, nil
}

// Delete removes the record with the given id
func (s *RecordService) Delete(ctx context.Context, entityType entities.EntityType, id string) error {
	if err := s.recordRepo.Delete(ctx, entityType, id); err != nil {
		return err
	}

	s.metrics.RecordMutation(entityType.String(), "delete")
	s.logger.LogAdminAction("delete", entityType.String(), map[string]interface{}{"id": id})

	return nil
}

func (s *RecordService) validateRecord(entityType entities.EntityType, record entities.Record) error {
	view, err := entities.DecodeView(entityType, record)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidEntityType) {
			return err
		}
		return fmt.Errorf("%w: %v", entities.ErrInvalidItem, err)
	}

	if err := s.validate.Struct(view); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrInvalidItem, describeValidation(err))
	}

	return nil
}

// describeValidation turns validator errors into a short client facing message
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
