package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolroom/toolroom/internal/api/models"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// The five content fields are stored as JSONB documents.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListCategories retrieves all categories, ordered by ID.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, icon FROM device_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var items []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

// GetCategory retrieves a category by ID.
func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, icon FROM device_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateCategory creates a new category, assigning its ID.
func (r *PostgresRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO device_categories (name, icon) VALUES ($1, $2) RETURNING id`,
		category.Name, category.Icon).
		Scan(&category.ID)
}

// DeleteCategory deletes a category.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM device_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

const deviceColumns = `id, name, icon, short_description, category_id,
	specifications, materials, safety_requirements, usage_instructions,
	troubleshooting, media_items`

// ListDevices retrieves all devices, ordered by ID.
func (r *PostgresRepository) ListDevices(ctx context.Context) ([]*Device, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+deviceColumns+` FROM devices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()
	return scanDevices(rows)
}

// ListDevicesByCategory retrieves the devices in one category, ordered by ID.
func (r *PostgresRepository) ListDevicesByCategory(ctx context.Context, categoryID int64) ([]*Device, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("querying devices by category: %w", err)
	}
	defer rows.Close()
	return scanDevices(rows)
}

// GetDevice retrieves a device by ID.
func (r *PostgresRepository) GetDevice(ctx context.Context, id int64) (*Device, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

// CreateDevice creates a new device, assigning its ID.
func (r *PostgresRepository) CreateDevice(ctx context.Context, device *Device) error {
	content, err := marshalContent(device)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO devices (
			name, icon, short_description, category_id,
			specifications, materials, safety_requirements,
			usage_instructions, troubleshooting, media_items
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		device.Name, device.Icon, device.ShortDescription, device.CategoryID,
		content.specifications, content.materials, content.safety,
		content.usage, content.troubleshooting, content.media).
		Scan(&device.ID)
}

// UpdateDevice replaces an existing device.
func (r *PostgresRepository) UpdateDevice(ctx context.Context, device *Device) error {
	content, err := marshalContent(device)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE devices SET
			name = $2, icon = $3, short_description = $4, category_id = $5,
			specifications = $6, materials = $7, safety_requirements = $8,
			usage_instructions = $9, troubleshooting = $10, media_items = $11
		WHERE id = $1`,
		device.ID,
		device.Name, device.Icon, device.ShortDescription, device.CategoryID,
		content.specifications, content.materials, content.safety,
		content.usage, content.troubleshooting, content.media)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// DeleteDevice deletes a device.
func (r *PostgresRepository) DeleteDevice(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// deviceContent holds the JSONB encodings of the content fields.
type deviceContent struct {
	specifications  []byte
	materials       []byte
	safety          []byte
	usage           []byte
	troubleshooting []byte
	media           []byte
}

func marshalContent(d *Device) (*deviceContent, error) {
	c := &deviceContent{}
	var err error

	if c.specifications, err = json.Marshal(d.Specifications); err != nil {
		return nil, fmt.Errorf("encoding specifications: %w", err)
	}
	if c.materials, err = json.Marshal(d.Materials); err != nil {
		return nil, fmt.Errorf("encoding materials: %w", err)
	}
	if c.safety, err = json.Marshal(d.SafetyRequirements); err != nil {
		return nil, fmt.Errorf("encoding safety requirements: %w", err)
	}
	if c.usage, err = json.Marshal(d.UsageInstructions); err != nil {
		return nil, fmt.Errorf("encoding usage instructions: %w", err)
	}
	if c.troubleshooting, err = json.Marshal(d.Troubleshooting); err != nil {
		return nil, fmt.Errorf("encoding troubleshooting: %w", err)
	}
	if c.media, err = json.Marshal(d.MediaItems); err != nil {
		return nil, fmt.Errorf("encoding media items: %w", err)
	}
	return c, nil
}

func scanDevice(row pgx.Row) (*Device, error) {
	var (
		d       Device
		content deviceContent
	)

	err := row.Scan(
		&d.ID, &d.Name, &d.Icon, &d.ShortDescription, &d.CategoryID,
		&content.specifications, &content.materials, &content.safety,
		&content.usage, &content.troubleshooting, &content.media,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalContent(&d, &content); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanDevices(rows pgx.Rows) ([]*Device, error) {
	var items []*Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		items = append(items, device)
	}
	return items, rows.Err()
}

func unmarshalContent(d *Device, c *deviceContent) error {
	if err := json.Unmarshal(c.specifications, &d.Specifications); err != nil {
		return fmt.Errorf("decoding specifications: %w", err)
	}
	if err := json.Unmarshal(c.materials, &d.Materials); err != nil {
		return fmt.Errorf("decoding materials: %w", err)
	}
	if err := json.Unmarshal(c.safety, &d.SafetyRequirements); err != nil {
		return fmt.Errorf("decoding safety requirements: %w", err)
	}
	var usage []models.InstructionStep
	if err := json.Unmarshal(c.usage, &usage); err != nil {
		return fmt.Errorf("decoding usage instructions: %w", err)
	}
	d.UsageInstructions = usage
	var troubleshooting []models.TroubleshootingItem
	if err := json.Unmarshal(c.troubleshooting, &troubleshooting); err != nil {
		return fmt.Errorf("decoding troubleshooting: %w", err)
	}
	d.Troubleshooting = troubleshooting
	var media []models.MediaItem
	if err := json.Unmarshal(c.media, &media); err != nil {
		return fmt.Errorf("decoding media items: %w", err)
	}
	d.MediaItems = media
	return nil
}
