// Package catalog provides the device-category and device reference catalog.
package catalog

import (
	"errors"

	"github.com/toolroom/toolroom/internal/api/models"
)

// Repository errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrCategoryInUse    = errors.New("category is still referenced by devices")
)

// Category represents a grouping of devices (e.g. "Lathes").
type Category struct {
	ID   int64
	Name string
	Icon string
}

// Device represents a piece of workshop equipment with structured reference
// content. The content fields are stored opaquely; their inner shape is owned
// by the presentation layer and the prompt builder.
type Device struct {
	ID                 int64
	Name               string
	Icon               string
	ShortDescription   string
	CategoryID         int64
	Specifications     map[string]string
	Materials          []string
	SafetyRequirements []string
	UsageInstructions  []models.InstructionStep
	Troubleshooting    []models.TroubleshootingItem
	MediaItems         []models.MediaItem
}
