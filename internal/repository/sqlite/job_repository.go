package sqlite

import (
	"database/sql"
	"fmt"

	"solarserver/internal/models"
)

// JobRepository implements repository.JobRepository for SQLite.
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new SQLite job repository.
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create adds a new job record to the database.
func (r *JobRepository) Create(job *models.Job) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if job.Status == 0 {
		job.Status = models.JobStatusPending
	}

	result, err := r.db.Conn().Exec(`
		INSERT INTO jobs (description, location, status, image_url, owner_id)
		VALUES (?, ?, ?, ?, ?)
	`, job.Description, job.Location, job.Status, job.ImageURL, job.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(id int64) (*models.Job, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var job models.Job
	var imageURL sql.NullString
	err := r.db.Conn().QueryRow(`
		SELECT id, description, location, status, image_url, owner_id, created_at, updated_at
		FROM jobs WHERE id = ?
	`, id).Scan(&job.ID, &job.Description, &job.Location, &job.Status,
		&imageURL, &job.OwnerID, &job.CreatedAt, &job.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	job.ImageURL = imageURL.String
	return &job, nil
}

// GetAll retrieves all job records.
func (r *JobRepository) GetAll() ([]models.Job, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, description, location, status, image_url, owner_id, created_at, updated_at
		FROM jobs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		var imageURL sql.NullString
		if err := rows.Scan(&job.ID, &job.Description, &job.Location, &job.Status,
			&imageURL, &job.OwnerID, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.ImageURL = imageURL.String
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Update modifies an existing job record.
func (r *JobRepository) Update(job *models.Job) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		UPDATE jobs
		SET description = ?, location = ?, status = ?, image_url = ?, owner_id = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, job.Description, job.Location, job.Status, job.ImageURL, job.OwnerID, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Delete removes a job by its ID.
func (r *JobRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
