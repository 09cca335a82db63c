package models

// InstructionStep is a single ordered step in a device's usage instructions.
type InstructionStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TroubleshootingItem is a known problem and its suggested solution.
type TroubleshootingItem struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// MediaItem is a piece of media attached to a device.
type MediaItem struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Device represents a piece of workshop equipment with its reference content.
//
// The five content fields (specifications, materials, safetyRequirements,
// usageInstructions, troubleshooting) are semi-structured; the backend stores
// them opaquely and only checks basic shape at the API edge.
type Device struct {
	ID                 int64                 `json:"id"`
	Name               string                `json:"name"`
	Icon               string                `json:"icon"`
	ShortDescription   string                `json:"shortDescription"`
	CategoryID         int64                 `json:"categoryId"`
	Specifications     map[string]string     `json:"specifications"`
	Materials          []string              `json:"materials"`
	SafetyRequirements []string              `json:"safetyRequirements"`
	UsageInstructions  []InstructionStep     `json:"usageInstructions"`
	Troubleshooting    []TroubleshootingItem `json:"troubleshooting"`
	MediaItems         []MediaItem           `json:"mediaItems"`
}

// DeviceCreateRequest is the request body for creating a device.
type DeviceCreateRequest struct {
	Name               string                `json:"name"`
	Icon               string                `json:"icon"`
	ShortDescription   string                `json:"shortDescription"`
	CategoryID         int64                 `json:"categoryId"`
	Specifications     map[string]string     `json:"specifications"`
	Materials          []string              `json:"materials"`
	SafetyRequirements []string              `json:"safetyRequirements"`
	UsageInstructions  []InstructionStep     `json:"usageInstructions"`
	Troubleshooting    []TroubleshootingItem `json:"troubleshooting"`
	MediaItems         []MediaItem           `json:"mediaItems"`
}

// Validate validates the device create request.
func (r *DeviceCreateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name == "" {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: "name is required",
			Code:    "REQUIRED",
		})
	}
	if r.CategoryID <= 0 {
		errs = append(errs, FieldError{
			Field:   "categoryId",
			Message: "categoryId is required",
			Code:    "REQUIRED",
		})
	}

	return errs
}

// DeviceUpdateRequest is the request body for partially updating a device.
// Nil fields are left unchanged.
type DeviceUpdateRequest struct {
	Name               *string                `json:"name,omitempty"`
	Icon               *string                `json:"icon,omitempty"`
	ShortDescription   *string                `json:"shortDescription,omitempty"`
	CategoryID         *int64                 `json:"categoryId,omitempty"`
	Specifications     *map[string]string     `json:"specifications,omitempty"`
	Materials          *[]string              `json:"materials,omitempty"`
	SafetyRequirements *[]string              `json:"safetyRequirements,omitempty"`
	UsageInstructions  *[]InstructionStep     `json:"usageInstructions,omitempty"`
	Troubleshooting    *[]TroubleshootingItem `json:"troubleshooting,omitempty"`
	MediaItems         *[]MediaItem           `json:"mediaItems,omitempty"`
}

// Validate validates the device update request.
func (r *DeviceUpdateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: "name must not be empty",
			Code:    "REQUIRED",
		})
	}
	if r.CategoryID != nil && *r.CategoryID <= 0 {
		errs = append(errs, FieldError{
			Field:   "categoryId",
			Message: "categoryId must be a positive id",
			Code:    "INVALID",
		})
	}

	return errs
}
