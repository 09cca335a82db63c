package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/toolroom/toolroom/internal/api/models"
)

// InMemoryRepository is an in-memory implementation of Repository.
// It is the default storage backend and is also used for test isolation:
// each test constructs a fresh instance.
type InMemoryRepository struct {
	mu             sync.RWMutex
	categories     map[int64]*Category
	devices        map[int64]*Device
	nextCategoryID int64
	nextDeviceID   int64
}

// NewInMemoryRepository creates a new in-memory catalog repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		categories: make(map[int64]*Category),
		devices:    make(map[int64]*Device),
	}
}

// ListCategories retrieves all categories, ordered by ID.
func (r *InMemoryRepository) ListCategories(_ context.Context) ([]*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		items = append(items, copyCategory(c))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// GetCategory retrieves a category by ID.
func (r *InMemoryRepository) GetCategory(_ context.Context, id int64) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return copyCategory(category), nil
}

// CreateCategory creates a new category, assigning the next category ID.
func (r *InMemoryRepository) CreateCategory(_ context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextCategoryID++
	category.ID = r.nextCategoryID
	r.categories[category.ID] = copyCategory(category)
	return nil
}

// DeleteCategory deletes a category.
func (r *InMemoryRepository) DeleteCategory(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// ListDevices retrieves all devices, ordered by ID.
func (r *InMemoryRepository) ListDevices(_ context.Context) ([]*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		items = append(items, copyDevice(d))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ListDevicesByCategory retrieves the devices in one category, ordered by ID.
func (r *InMemoryRepository) ListDevicesByCategory(_ context.Context, categoryID int64) ([]*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*Device, 0)
	for _, d := range r.devices {
		if d.CategoryID == categoryID {
			items = append(items, copyDevice(d))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// GetDevice retrieves a device by ID.
func (r *InMemoryRepository) GetDevice(_ context.Context, id int64) (*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.devices[id]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return copyDevice(device), nil
}

// CreateDevice creates a new device, assigning the next device ID.
func (r *InMemoryRepository) CreateDevice(_ context.Context, device *Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextDeviceID++
	device.ID = r.nextDeviceID
	r.devices[device.ID] = copyDevice(device)
	return nil
}

// UpdateDevice replaces an existing device.
func (r *InMemoryRepository) UpdateDevice(_ context.Context, device *Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[device.ID]; !ok {
		return ErrDeviceNotFound
	}
	r.devices[device.ID] = copyDevice(device)
	return nil
}

// DeleteDevice deletes a device.
func (r *InMemoryRepository) DeleteDevice(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[id]; !ok {
		return ErrDeviceNotFound
	}
	delete(r.devices, id)
	return nil
}

// copyCategory creates a copy of a category.
func copyCategory(c *Category) *Category {
	if c == nil {
		return nil
	}
	categoryCopy := *c
	return &categoryCopy
}

// copyDevice creates a deep copy of a device.
func copyDevice(d *Device) *Device {
	if d == nil {
		return nil
	}

	deviceCopy := &Device{
		ID:               d.ID,
		Name:             d.Name,
		Icon:             d.Icon,
		ShortDescription: d.ShortDescription,
		CategoryID:       d.CategoryID,
	}

	if d.Specifications != nil {
		deviceCopy.Specifications = make(map[string]string, len(d.Specifications))
		for k, v := range d.Specifications {
			deviceCopy.Specifications[k] = v
		}
	}
	if d.Materials != nil {
		deviceCopy.Materials = append([]string(nil), d.Materials...)
	}
	if d.SafetyRequirements != nil {
		deviceCopy.SafetyRequirements = append([]string(nil), d.SafetyRequirements...)
	}
	if d.UsageInstructions != nil {
		deviceCopy.UsageInstructions = append([]models.InstructionStep(nil), d.UsageInstructions...)
	}
	if d.Troubleshooting != nil {
		deviceCopy.Troubleshooting = append([]models.TroubleshootingItem(nil), d.Troubleshooting...)
	}
	if d.MediaItems != nil {
		deviceCopy.MediaItems = append([]models.MediaItem(nil), d.MediaItems...)
	}

	return deviceCopy
}
