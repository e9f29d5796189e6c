package repositories

import (
	"database/sql"

	"github.com/barberscore/registry/internal/models"
)

type StateLogRepository struct {
	db *sql.DB
}

func NewStateLogRepository(db *sql.DB) *StateLogRepository {
	return &StateLogRepository{db: db}
}

// Create appends an audit entry. There is no update or delete path.
func (r *StateLogRepository) Create(log *models.StateLog) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertStateLog(tx, log); err != nil {
		return err
	}

	return tx.Commit()
}

// ListByObject retrieves a record's audit trail, newest first
func (r *StateLogRepository) ListByObject(objectType models.ObjectType, objectID string) ([]*models.StateLog, error) {
	query := `
		SELECT id, object_type, object_id, transition, status, by_user_id, description, created_at
		FROM statelogs
		WHERE object_type = ? AND object_id = ?
		ORDER BY created_at DESC, rowid DESC
	`

	rows, err := r.db.Query(query, objectType, objectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.StateLog
	for rows.Next() {
		log := &models.StateLog{}
		err := rows.Scan(
			&log.ID, &log.ObjectType, &log.ObjectID, &log.Transition, &log.Status,
			&log.ByUserID, &log.Description, &log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// CountByObject returns the number of audit entries for a record
func (r *StateLogRepository) CountByObject(objectType models.ObjectType, objectID string) (int, error) {
	query := `SELECT COUNT(*) FROM statelogs WHERE object_type = ? AND object_id = ?`
	var count int
	err := r.db.QueryRow(query, objectType, objectID).Scan(&count)
	return count, err
}

// insertStateLog appends an audit entry inside the caller's transaction
func insertStateLog(tx *sql.Tx, log *models.StateLog) error {
	query := `
		INSERT INTO statelogs (
			id, object_type, object_id, transition, status, by_user_id, description, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.Exec(query,
		log.ID, log.ObjectType, log.ObjectID, log.Transition, log.Status,
		log.ByUserID, log.Description, log.CreatedAt,
	)
	return err
}
