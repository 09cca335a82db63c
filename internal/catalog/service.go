package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
)

// TranscriptPurger removes a device's chat transcript. It is implemented by
// the chat repository and is invoked when a device is deleted so the two
// stores never hold messages for a device that no longer exists.
type TranscriptPurger interface {
	DeleteByDevice(ctx context.Context, deviceID int64) error
}

// Service provides catalog operations.
type Service struct {
	repo        Repository
	transcripts TranscriptPurger
	logger      zerolog.Logger
}

// ServiceConfig holds configuration for the catalog service.
type ServiceConfig struct {
	Repository  Repository
	Transcripts TranscriptPurger
	Logger      zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:        cfg.Repository,
		transcripts: cfg.Transcripts,
		logger:      cfg.Logger,
	}
}

// ListCategories retrieves all categories.
func (s *Service) ListCategories(ctx context.Context) ([]models.DeviceCategory, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.DeviceCategory, 0, len(categories))
	for _, c := range categories {
		items = append(items, toAPICategory(c))
	}
	return items, nil
}

// CreateCategory creates a new category.
func (s *Service) CreateCategory(ctx context.Context, input *models.CategoryCreateRequest) (*models.DeviceCategory, error) {
	category := &Category{
		Name: input.Name,
		Icon: input.Icon,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	result := toAPICategory(category)
	return &result, nil
}

// DeleteCategory deletes a category. Deletion is refused with ErrCategoryInUse
// while any device still references the category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.repo.GetCategory(ctx, id); err != nil {
		return err
	}

	devices, err := s.repo.ListDevicesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(devices) > 0 {
		return ErrCategoryInUse
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

// ListDevices retrieves all devices.
func (s *Service) ListDevices(ctx context.Context) ([]models.Device, error) {
	devices, err := s.repo.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	return toAPIDevices(devices), nil
}

// ListDevicesByCategory retrieves the devices in one category.
// An unknown category yields an empty list.
func (s *Service) ListDevicesByCategory(ctx context.Context, categoryID int64) ([]models.Device, error) {
	devices, err := s.repo.ListDevicesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toAPIDevices(devices), nil
}

// GetDevice retrieves a single device.
func (s *Service) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	device, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIDevice(device)
	return &result, nil
}

// GetDomainDevice retrieves a device in its domain representation, used by
// the chat service to assemble the assistant prompt.
func (s *Service) GetDomainDevice(ctx context.Context, id int64) (*Device, error) {
	return s.repo.GetDevice(ctx, id)
}

// CreateDevice creates a new device. The referenced category must exist;
// ErrCategoryNotFound is returned otherwise so the API layer can report a
// validation failure on categoryId.
func (s *Service) CreateDevice(ctx context.Context, input *models.DeviceCreateRequest) (*models.Device, error) {
	if _, err := s.repo.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	device := &Device{
		Name:               input.Name,
		Icon:               input.Icon,
		ShortDescription:   input.ShortDescription,
		CategoryID:         input.CategoryID,
		Specifications:     input.Specifications,
		Materials:          input.Materials,
		SafetyRequirements: input.SafetyRequirements,
		UsageInstructions:  input.UsageInstructions,
		Troubleshooting:    input.Troubleshooting,
		MediaItems:         input.MediaItems,
	}
	if err := s.repo.CreateDevice(ctx, device); err != nil {
		return nil, fmt.Errorf("creating device: %w", err)
	}

	s.logger.Info().
		Int64("device_id", device.ID).
		Int64("category_id", device.CategoryID).
		Str("name", device.Name).
		Msg("device created")

	result := toAPIDevice(device)
	return &result, nil
}

// UpdateDevice applies a partial update to a device. A changed categoryId is
// checked for existence like on create.
func (s *Service) UpdateDevice(ctx context.Context, id int64, input *models.DeviceUpdateRequest) (*models.Device, error) {
	device, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		device.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		device.Name = *input.Name
	}
	if input.Icon != nil {
		device.Icon = *input.Icon
	}
	if input.ShortDescription != nil {
		device.ShortDescription = *input.ShortDescription
	}
	if input.Specifications != nil {
		device.Specifications = *input.Specifications
	}
	if input.Materials != nil {
		device.Materials = *input.Materials
	}
	if input.SafetyRequirements != nil {
		device.SafetyRequirements = *input.SafetyRequirements
	}
	if input.UsageInstructions != nil {
		device.UsageInstructions = *input.UsageInstructions
	}
	if input.Troubleshooting != nil {
		device.Troubleshooting = *input.Troubleshooting
	}
	if input.MediaItems != nil {
		device.MediaItems = *input.MediaItems
	}

	if err := s.repo.UpdateDevice(ctx, device); err != nil {
		return nil, fmt.Errorf("updating device: %w", err)
	}

	s.logger.Info().Int64("device_id", device.ID).Msg("device updated")

	result := toAPIDevice(device)
	return &result, nil
}

// DeleteDevice deletes a device and its chat transcript.
func (s *Service) DeleteDevice(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDevice(ctx, id); err != nil {
		return err
	}

	if err := s.transcripts.DeleteByDevice(ctx, id); err != nil {
		return fmt.Errorf("purging transcript for device %d: %w", id, err)
	}

	s.logger.Info().Int64("device_id", id).Msg("device deleted")
	return nil
}

// toAPICategory converts a domain Category to an API DeviceCategory.
func toAPICategory(c *Category) models.DeviceCategory {
	return models.DeviceCategory{
		ID:   c.ID,
		Name: c.Name,
		Icon: c.Icon,
	}
}

// toAPIDevice converts a domain Device to an API Device.
func toAPIDevice(d *Device) models.Device {
	return models.Device{
		ID:                 d.ID,
		Name:               d.Name,
		Icon:               d.Icon,
		ShortDescription:   d.ShortDescription,
		CategoryID:         d.CategoryID,
		Specifications:     d.Specifications,
		Materials:          d.Materials,
		SafetyRequirements: d.SafetyRequirements,
		UsageInstructions:  d.UsageInstructions,
		Troubleshooting:    d.Troubleshooting,
		MediaItems:         d.MediaItems,
	}
}

func toAPIDevices(devices []*Device) []models.Device {
	items := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		items = append(items, toAPIDevice(d))
	}
	return items
}
