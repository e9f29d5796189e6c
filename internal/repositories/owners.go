package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the given ID
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateBHSID is returned when a write would violate the
	// groups.bhs_id uniqueness constraint
	ErrDuplicateBHSID = errors.New("bhs_id already in use")
)

// replaceOwners rewrites a record's owner links inside the caller's transaction
func replaceOwners(tx *sql.Tx, table, column, recordID string, ownerIDs []string) error {
	if _, err := tx.Exec(`DELETE FROM `+table+` WHERE `+column+` = ?`, recordID); err != nil {
		return err
	}
	for _, ownerID := range ownerIDs {
		if _, err := tx.Exec(`INSERT INTO `+table+` (`+column+`, user_id) VALUES (?, ?)`, recordID, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// loadOwners returns the user IDs linked to a record
func loadOwners(db *sql.DB, table, column, recordID string) ([]string, error) {
	rows, err := db.Query(`SELECT user_id FROM `+table+` WHERE `+column+` = ? ORDER BY user_id`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
