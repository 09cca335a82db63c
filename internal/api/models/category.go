package models

// DeviceCategory represents a grouping of workshop devices.
type DeviceCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryCreateRequest is the request body for creating a category.
type CategoryCreateRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Validate validates the category create request.
func (r *CategoryCreateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name == "" {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: "name is required",
			Code:    "REQUIRED",
		})
	}
	if len(r.Name) > 120 {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: "name must be at most 120 characters",
			Code:    "TOO_LONG",
		})
	}

	return errs
}
