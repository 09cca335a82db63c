package catalog

import "context"

// Repository defines the interface for catalog persistence.
//
// Create methods assign the entity ID: ids are monotonically increasing
// int64 values per entity type and are never reused after deletion.
type Repository interface {
	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]*Category, error)

	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, id int64) (*Category, error)

	// CreateCategory creates a new category, assigning its ID.
	CreateCategory(ctx context.Context, category *Category) error

	// DeleteCategory deletes a category. The referential guard lives in the
	// service; the repository deletes unconditionally.
	DeleteCategory(ctx context.Context, id int64) error

	// ListDevices retrieves all devices.
	ListDevices(ctx context.Context) ([]*Device, error)

	// ListDevicesByCategory retrieves the devices in one category.
	// An unknown category yields an empty slice, not an error.
	ListDevicesByCategory(ctx context.Context, categoryID int64) ([]*Device, error)

	// GetDevice retrieves a device by ID.
	GetDevice(ctx context.Context, id int64) (*Device, error)

	// CreateDevice creates a new device, assigning its ID.
	CreateDevice(ctx context.Context, device *Device) error

	// UpdateDevice replaces an existing device.
	UpdateDevice(ctx context.Context, device *Device) error

	// DeleteDevice deletes a device.
	DeleteDevice(ctx context.Context, id int64) error
}
