package sqlite

import (
	"database/sql"
	"fmt"

	"solarserver/internal/models"
)

// FieldRepository implements repository.FieldRepository for SQLite.
type FieldRepository struct {
	db *DB
}

// NewFieldRepository creates a new SQLite solar field repository.
func NewFieldRepository(db *DB) *FieldRepository {
	return &FieldRepository{db: db}
}

// Create adds a new solar field record to the database.
func (r *FieldRepository) Create(field *models.SolarField) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO solar_fields (name, location, user_id)
		VALUES (?, ?, ?)
	`, field.Name, field.Location, field.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert solar field: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a solar field by its ID.
func (r *FieldRepository) GetByID(id int64) (*models.SolarField, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var field models.SolarField
	err := r.db.Conn().QueryRow(`
		SELECT id, name, location, user_id, created_at, updated_at
		FROM solar_fields WHERE id = ?
	`, id).Scan(&field.ID, &field.Name, &field.Location, &field.UserID,
		&field.CreatedAt, &field.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solar field: %w", err)
	}
	return &field, nil
}

// GetAll retrieves all solar field records.
func (r *FieldRepository) GetAll() ([]models.SolarField, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, name, location, user_id, created_at, updated_at
		FROM solar_fields ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query solar fields: %w", err)
	}
	defer rows.Close()

	var fields []models.SolarField
	for rows.Next() {
		var field models.SolarField
		if err := rows.Scan(&field.ID, &field.Name, &field.Location, &field.UserID,
			&field.CreatedAt, &field.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan solar field: %w", err)
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// Exists checks if a solar field with the given ID exists.
func (r *FieldRepository) Exists(id int64) (bool, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM solar_fields WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check solar field existence: %w", err)
	}
	return count > 0, nil
}

// Update modifies an existing solar field record.
func (r *FieldRepository) Update(field *models.SolarField) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		UPDATE solar_fields
		SET name = ?, location = ?, user_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, field.Name, field.Location, field.UserID, field.ID)
	if err != nil {
		return fmt.Errorf("failed to update solar field: %w", err)
	}
	return nil
}

// Delete removes a solar field by its ID.
func (r *FieldRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM solar_fields WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete solar field: %w", err)
	}
	return nil
}
