package sqlite

import (
	"database/sql"
	"fmt"

	"solarserver/internal/models"
	"solarserver/internal/repository"
)

// PanelImageRepository implements repository.PanelImageRepository for SQLite.
type PanelImageRepository struct {
	db *DB
}

// NewPanelImageRepository creates a new SQLite panel image repository.
func NewPanelImageRepository(db *DB) *PanelImageRepository {
	return &PanelImageRepository{db: db}
}

// CreateInField inserts one metadata row for a classified image. The field
// existence check and the insert share one transaction so a field deleted
// between check and write can never leave an orphaned row.
func (r *PanelImageRepository) CreateInField(fieldID int64, path, imageClass string) (*models.PanelImage, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow(`SELECT id FROM solar_fields WHERE id = ?`, fieldID).Scan(&existingID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check solar field: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO panel_images (path, field_id, image_class)
		VALUES (?, ?, ?)
	`, path, fieldID, imageClass)
	if err != nil {
		return nil, fmt.Errorf("failed to insert panel image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	var img models.PanelImage
	err = tx.QueryRow(`
		SELECT id, path, field_id, image_class, created_at, updated_at
		FROM panel_images WHERE id = ?
	`, id).Scan(&img.ID, &img.Path, &img.FieldID, &img.ImageClass, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted panel image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit panel image: %w", err)
	}

	return &img, nil
}

// GetByID retrieves a panel image by its ID.
func (r *PanelImageRepository) GetByID(id int64) (*models.PanelImage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var img models.PanelImage
	err := r.db.Conn().QueryRow(`
		SELECT id, path, field_id, image_class, created_at, updated_at
		FROM panel_images WHERE id = ?
	`, id).Scan(&img.ID, &img.Path, &img.FieldID, &img.ImageClass, &img.CreatedAt, &img.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get panel image: %w", err)
	}
	return &img, nil
}

// GetAll retrieves all panel image records, newest first.
func (r *PanelImageRepository) GetAll() ([]models.PanelImage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	return r.queryImages(`
		SELECT id, path, field_id, image_class, created_at, updated_at
		FROM panel_images ORDER BY created_at DESC, id DESC
	`)
}

// GetByFieldID retrieves all panel images belonging to one field.
func (r *PanelImageRepository) GetByFieldID(fieldID int64) ([]models.PanelImage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	return r.queryImages(`
		SELECT id, path, field_id, image_class, created_at, updated_at
		FROM panel_images WHERE field_id = ? ORDER BY created_at DESC, id DESC
	`, fieldID)
}

func (r *PanelImageRepository) queryImages(query string, args ...interface{}) ([]models.PanelImage, error) {
	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query panel images: %w", err)
	}
	defer rows.Close()

	var images []models.PanelImage
	for rows.Next() {
		var img models.PanelImage
		if err := rows.Scan(&img.ID, &img.Path, &img.FieldID, &img.ImageClass,
			&img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan panel image: %w", err)
		}
		images = append(images, img)
	}

	return images, nil
}

// Update modifies an existing panel image record. The pipeline never calls
// this, it exists for the CRUD surface only.
func (r *PanelImageRepository) Update(img *models.PanelImage) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		UPDATE panel_images
		SET path = ?, field_id = ?, image_class = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, img.Path, img.FieldID, img.ImageClass, img.ID)
	if err != nil {
		return fmt.Errorf("failed to update panel image: %w", err)
	}
	return nil
}

// Delete removes a panel image by its ID.
func (r *PanelImageRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM panel_images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete panel image: %w", err)
	}
	return nil
}
