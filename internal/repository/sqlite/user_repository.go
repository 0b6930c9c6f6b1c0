package sqlite

import (
	"database/sql"
	"fmt"

	"solarserver/internal/models"
)

// UserRepository implements repository.UserRepository for SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create adds a new user record to the database.
func (r *UserRepository) Create(user *models.User) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO users (username, email, hashed_password, role, is_active)
		VALUES (?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.HashedPassword, user.Role, user.IsActive)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, email, hashed_password, role, is_active, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by its unique username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, email, hashed_password, role, is_active, created_at, updated_at
		FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetAll retrieves all user records.
func (r *UserRepository) GetAll() ([]models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, username, email, hashed_password, role, is_active, created_at, updated_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword,
			&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

// Update modifies an existing user record.
func (r *UserRepository) Update(user *models.User) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		UPDATE users
		SET username = ?, email = ?, hashed_password = ?, role = ?, is_active = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, user.Username, user.Email, user.HashedPassword, user.Role, user.IsActive, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user by its ID.
func (r *UserRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
