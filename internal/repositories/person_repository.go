package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/barberscore/registry/internal/models"
)

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = `
	id, status, prefix, first_name, middle_name, last_name, nick_name, suffix,
	birth_date, spouse, location, part, mon, gender, representing, website,
	email, address, home_phone, work_phone, cell_phone, airports, image,
	description, notes, bhs_id, created_at, modified_at
`

// PersonFilter narrows List results
type PersonFilter struct {
	Status     *models.Status
	StatusGT   *models.Status
	CreatedGT  *time.Time
	ModifiedGT *time.Time
	Search     string
}

// Create creates a new person and its owner links in one transaction
func (r *PersonRepository) Create(person *models.Person) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	airports, err := json.Marshal(airportsOrEmpty(person.Airports))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO persons (` + personColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		person.ID, person.Status, person.Prefix, person.FirstName, person.MiddleName,
		person.LastName, person.NickName, person.Suffix, person.BirthDate, person.Spouse,
		person.Location, person.Part, person.MON, person.Gender, person.Representing,
		person.Website, person.Email, person.Address, person.HomePhone, person.WorkPhone,
		person.CellPhone, string(airports), person.Image, person.Description, person.Notes,
		person.BHSID, person.CreatedAt, person.ModifiedAt,
	)
	if err != nil {
		return err
	}

	if err := replaceOwners(tx, "person_owners", "person_id", person.ID, person.OwnerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a person by ID with its owner links
func (r *PersonRepository) GetByID(id string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = ?`

	person, err := scanPerson(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	person.OwnerIDs, err = loadOwners(r.db, "person_owners", "person_id", person.ID)
	if err != nil {
		return nil, err
	}

	return person, nil
}

// Update updates a person's descriptive fields and owner links. The status
// column is deliberately not touched; it only moves through transitions.
func (r *PersonRepository) Update(person *models.Person) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	airports, err := json.Marshal(airportsOrEmpty(person.Airports))
	if err != nil {
		return err
	}

	person.ModifiedAt = time.Now()

	query := `
		UPDATE persons SET
			prefix = ?, first_name = ?, middle_name = ?, last_name = ?, nick_name = ?,
			suffix = ?, birth_date = ?, spouse = ?, location = ?, part = ?, mon = ?,
			gender = ?, representing = ?, website = ?, email = ?, address = ?,
			home_phone = ?, work_phone = ?, cell_phone = ?, airports = ?, image = ?,
			description = ?, notes = ?, bhs_id = ?, modified_at = ?
		WHERE id = ?
	`
	result, err := tx.Exec(query,
		person.Prefix, person.FirstName, person.MiddleName, person.LastName, person.NickName,
		person.Suffix, person.BirthDate, person.Spouse, person.Location, person.Part, person.MON,
		person.Gender, person.Representing, person.Website, person.Email, person.Address,
		person.HomePhone, person.WorkPhone, person.CellPhone, string(airports), person.Image,
		person.Description, person.Notes, person.BHSID, person.ModifiedAt,
		person.ID,
	)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	if err := replaceOwners(tx, "person_owners", "person_id", person.ID, person.OwnerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete deletes a person by ID
func (r *PersonRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves persons matching the filter, ordered by last then first name
func (r *PersonRepository) List(filter PersonFilter) ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE 1=1`
	var args []interface{}

	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	if filter.StatusGT != nil {
		query += ` AND status > ?`
		args = append(args, *filter.StatusGT)
	}
	if filter.CreatedGT != nil {
		query += ` AND created_at > ?`
		args = append(args, *filter.CreatedGT)
	}
	if filter.ModifiedGT != nil {
		query += ` AND modified_at > ?`
		args = append(args, *filter.ModifiedGT)
	}
	if filter.Search != "" {
		query += ` AND (last_name LIKE ? OR first_name LIKE ? OR nick_name LIKE ? OR email LIKE ? OR CAST(bhs_id AS TEXT) LIKE ?)`
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term, term, term)
	}

	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, person := range persons {
		person.OwnerIDs, err = loadOwners(r.db, "person_owners", "person_id", person.ID)
		if err != nil {
			return nil, err
		}
	}

	return persons, nil
}

// UpdateStatusWithLog persists a completed transition and its audit entry as
// a single transaction. On failure neither write survives.
func (r *PersonRepository) UpdateStatusWithLog(person *models.Person, log *models.StateLog) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	person.ModifiedAt = time.Now()
	_, err = tx.Exec(`UPDATE persons SET status = ?, modified_at = ? WHERE id = ?`,
		person.Status, person.ModifiedAt, person.ID)
	if err != nil {
		return err
	}

	if err := insertStateLog(tx, log); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	person := &models.Person{}
	var airports string
	err := row.Scan(
		&person.ID, &person.Status, &person.Prefix, &person.FirstName, &person.MiddleName,
		&person.LastName, &person.NickName, &person.Suffix, &person.BirthDate, &person.Spouse,
		&person.Location, &person.Part, &person.MON, &person.Gender, &person.Representing,
		&person.Website, &person.Email, &person.Address, &person.HomePhone, &person.WorkPhone,
		&person.CellPhone, &airports, &person.Image, &person.Description, &person.Notes,
		&person.BHSID, &person.CreatedAt, &person.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(airports), &person.Airports); err != nil {
		return nil, err
	}
	return person, nil
}

func airportsOrEmpty(airports []string) []string {
	if airports == nil {
		return []string{}
	}
	return airports
}

// isUniqueViolation sniffs the sqlite driver's UNIQUE constraint error
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
