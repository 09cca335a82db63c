package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/catalog"
	"github.com/toolroom/toolroom/internal/chat"
)

func testService() (*catalog.Service, chat.Repository) {
	transcripts := chat.NewInMemoryRepository()
	service := catalog.NewService(catalog.ServiceConfig{
		Repository:  catalog.NewInMemoryRepository(),
		Transcripts: transcripts,
		Logger:      zerolog.Nop(),
	})
	return service, transcripts
}

func TestService_CreateCategory_AssignsIncreasingIDs(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	first, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Power Tools"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	second, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Hand Tools"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if first.ID != 1 {
		t.Errorf("expected first category id 1, got %d", first.ID)
	}
	if second.ID != first.ID+1 {
		t.Errorf("expected ids to increase, got %d then %d", first.ID, second.ID)
	}
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Saws"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	if _, err := service.CreateDevice(ctx, &models.DeviceCreateRequest{
		Name:       "Table Saw",
		CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	err = service.DeleteCategory(ctx, category.ID)
	if !errors.Is(err, catalog.ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	// After the device is gone the category can be deleted
	devices, err := service.ListDevicesByCategory(ctx, category.ID)
	if err != nil {
		t.Fatalf("failed to list devices: %v", err)
	}
	if err := service.DeleteDevice(ctx, devices[0].ID); err != nil {
		t.Fatalf("failed to delete device: %v", err)
	}
	if err := service.DeleteCategory(ctx, category.ID); err != nil {
		t.Errorf("expected delete to succeed, got %v", err)
	}
}

func TestService_DeleteCategory_NotFound(t *testing.T) {
	service, _ := testService()

	err := service.DeleteCategory(context.Background(), 42)
	if !errors.Is(err, catalog.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestService_CreateDevice_UnknownCategory(t *testing.T) {
	service, _ := testService()

	_, err := service.CreateDevice(context.Background(), &models.DeviceCreateRequest{
		Name:       "Bandsaw",
		CategoryID: 99,
	})
	if !errors.Is(err, catalog.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestService_UpdateDevice_PartialUpdate(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Drills"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	device, err := service.CreateDevice(ctx, &models.DeviceCreateRequest{
		Name:             "Drill Press",
		ShortDescription: "Bench-mounted drill",
		CategoryID:       category.ID,
		Specifications:   map[string]string{"power": "550 W"},
	})
	if err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	newName := "Floor Drill Press"
	updated, err := service.UpdateDevice(ctx, device.ID, &models.DeviceUpdateRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("failed to update device: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.ShortDescription != device.ShortDescription {
		t.Errorf("expected untouched shortDescription %q, got %q", device.ShortDescription, updated.ShortDescription)
	}
	if updated.Specifications["power"] != "550 W" {
		t.Errorf("expected untouched specifications, got %v", updated.Specifications)
	}
}

func TestService_UpdateDevice_UnknownCategory(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Sanders"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	device, err := service.CreateDevice(ctx, &models.DeviceCreateRequest{
		Name:       "Belt Sander",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	badCategory := int64(99)
	_, err = service.UpdateDevice(ctx, device.ID, &models.DeviceUpdateRequest{
		CategoryID: &badCategory,
	})
	if !errors.Is(err, catalog.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestService_DeleteDevice_PurgesTranscript(t *testing.T) {
	service, transcripts := testService()
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &models.CategoryCreateRequest{Name: "Lathes"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	device, err := service.CreateDevice(ctx, &models.DeviceCreateRequest{
		Name:       "Wood Lathe",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	if err := transcripts.Create(ctx, &chat.Message{
		DeviceID: device.ID,
		IsUser:   true,
		Message:  "How do I mount a blank?",
	}); err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	if err := service.DeleteDevice(ctx, device.ID); err != nil {
		t.Fatalf("failed to delete device: %v", err)
	}

	_, err = service.GetDevice(ctx, device.ID)
	if !errors.Is(err, catalog.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}

	messages, err := transcripts.ListByDevice(ctx, device.ID)
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected transcript purged, got %d messages", len(messages))
	}
}

func TestService_GetDevice_NotFound(t *testing.T) {
	service, _ := testService()

	_, err := service.GetDevice(context.Background(), 7)
	if !errors.Is(err, catalog.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}
