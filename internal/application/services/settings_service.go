package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// SettingsService handles the site settings document
type SettingsService struct {
	settingsRepo ports.SettingsRepository
	recordRepo   ports.RecordRepository
	validate     *validator.Validate
	logger       *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo ports.SettingsRepository, recordRepo ports.RecordRepository, validate *validator.Validate, logger *logger.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		recordRepo:   recordRepo,
		validate:     validate,
		logger:       logger,
	}
}

var _ ports.SettingsService = (*SettingsService)(nil)

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (*entities.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update applies the provided fields and stores the result
func (s *SettingsService) Update(ctx context.Context, req ports.UpdateSettingsRequest) (*entities.Settings, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidItem, describeValidation(err))
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		settings.Phone = *req.Phone
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.LogAdminAction("update", "settings", nil)

	return settings, nil
}

// MigratePhoneSentinel moves the phone number out of the legacy __PHONE__ social link
// row into the settings document and removes the row. It reports whether a row was moved.
func (s *SettingsService) MigratePhoneSentinel(ctx context.Context) (bool, error) {
	links, err := s.recordRepo.List(ctx, entities.EntityTypeSocialLinks)
	if err != nil {
		return false, err
	}

	var phone string
	found := false
	kept := make([]entities.Record, 0, len(links))
	for _, link := range links {
		if platform, _ := link["platform"].(string); platform == entities.PhoneSentinelPlatform {
			if !found {
				phone, _ = link["url"].(string)
				found = true
			}
			continue
		}
		kept = append(kept, link)
	}
	if !found {
		return false, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	settings.Phone = phone
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return false, err
	}

	if err := s.recordRepo.Replace(ctx, entities.EntityTypeSocialLinks, kept); err != nil {
		return false, fmt.Errorf("remove phone row from social links: %w", err)
	}

	s.logger.Infow("Phone number moved to settings", "remaining_links", len(kept))

	return true, nil
}
