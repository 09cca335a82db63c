package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toolroom/toolroom/internal/api/models"
)

func TestDeviceCreateRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		request    models.DeviceCreateRequest
		wantFields []string
	}{
		{
			name:    "valid",
			request: models.DeviceCreateRequest{Name: "Table Saw", CategoryID: 1},
		},
		{
			name:       "missing name",
			request:    models.DeviceCreateRequest{CategoryID: 1},
			wantFields: []string{"name"},
		},
		{
			name:       "missing category",
			request:    models.DeviceCreateRequest{Name: "Table Saw"},
			wantFields: []string{"categoryId"},
		},
		{
			name:       "missing everything",
			request:    models.DeviceCreateRequest{},
			wantFields: []string{"name", "categoryId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.request.Validate()

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestDeviceUpdateRequest_Validate(t *testing.T) {
	emptyName := ""
	goodName := "Band Saw"
	zeroCategory := int64(0)

	tests := []struct {
		name      string
		request   models.DeviceUpdateRequest
		wantField string
	}{
		{name: "empty update is fine", request: models.DeviceUpdateRequest{}},
		{name: "name change is fine", request: models.DeviceUpdateRequest{Name: &goodName}},
		{
			name:      "name cannot be blanked",
			request:   models.DeviceUpdateRequest{Name: &emptyName},
			wantField: "name",
		},
		{
			name:      "category must be positive",
			request:   models.DeviceUpdateRequest{CategoryID: &zeroCategory},
			wantField: "categoryId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.request.Validate()

			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestChatRequest_Validate(t *testing.T) {
	valid := models.ChatRequest{Message: "How do I change the blade?"}
	assert.Empty(t, valid.Validate())

	empty := models.ChatRequest{}
	errs := empty.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)
}
