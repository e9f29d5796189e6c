package repositories

import (
	"database/sql"
	"time"

	"github.com/barberscore/registry/internal/models"
)

type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `
	id, name, status, kind, gender, representing, bhs_id, code, website, email,
	phone, fax_phone, start_date, end_date, location, facebook, twitter, youtube,
	pinterest, flickr, instagram, soundcloud, image, description,
	visitor_information, participants, chapters, notes, created_at, modified_at
`

// GroupFilter narrows List results
type GroupFilter struct {
	OwnerID    string
	Status     *models.Status
	StatusGT   *models.Status
	KindGT     *models.Kind
	CreatedGT  *time.Time
	ModifiedGT *time.Time
	Search     string
}

// Create creates a new group and its owner links in one transaction.
// A duplicate bhs_id surfaces as ErrDuplicateBHSID and nothing persists.
func (r *GroupRepository) Create(group *models.Group) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (` + groupColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		group.ID, group.Name, group.Status, group.Kind, group.Gender, group.Representing,
		group.BHSID, group.Code, group.Website, group.Email, group.Phone, group.FaxPhone,
		group.StartDate, group.EndDate, group.Location, group.Facebook, group.Twitter,
		group.Youtube, group.Pinterest, group.Flickr, group.Instagram, group.Soundcloud,
		group.Image, group.Description, group.VisitorInformation, group.Participants,
		group.Chapters, group.Notes, group.CreatedAt, group.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "groups.bhs_id") {
			return ErrDuplicateBHSID
		}
		return err
	}

	if err := replaceOwners(tx, "group_owners", "group_id", group.ID, group.OwnerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a group by ID with its owner links
func (r *GroupRepository) GetByID(id string) (*models.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = ?`

	group, err := scanGroup(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	group.OwnerIDs, err = loadOwners(r.db, "group_owners", "group_id", group.ID)
	if err != nil {
		return nil, err
	}

	return group, nil
}

// Update updates a group's descriptive fields and owner links. The status
// column is deliberately not touched; it only moves through transitions.
func (r *GroupRepository) Update(group *models.Group) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	group.ModifiedAt = time.Now()

	query := `
		UPDATE groups SET
			name = ?, kind = ?, gender = ?, representing = ?, bhs_id = ?, code = ?,
			website = ?, email = ?, phone = ?, fax_phone = ?, start_date = ?, end_date = ?,
			location = ?, facebook = ?, twitter = ?, youtube = ?, pinterest = ?, flickr = ?,
			instagram = ?, soundcloud = ?, image = ?, description = ?,
			visitor_information = ?, participants = ?, chapters = ?, notes = ?, modified_at = ?
		WHERE id = ?
	`
	result, err := tx.Exec(query,
		group.Name, group.Kind, group.Gender, group.Representing, group.BHSID, group.Code,
		group.Website, group.Email, group.Phone, group.FaxPhone, group.StartDate, group.EndDate,
		group.Location, group.Facebook, group.Twitter, group.Youtube, group.Pinterest, group.Flickr,
		group.Instagram, group.Soundcloud, group.Image, group.Description,
		group.VisitorInformation, group.Participants, group.Chapters, group.Notes, group.ModifiedAt,
		group.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "groups.bhs_id") {
			return ErrDuplicateBHSID
		}
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	if err := replaceOwners(tx, "group_owners", "group_id", group.ID, group.OwnerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete deletes a group by ID
func (r *GroupRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves groups matching the filter, ordered by name
func (r *GroupRepository) List(filter GroupFilter) ([]*models.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE 1=1`
	var args []interface{}

	if filter.OwnerID != "" {
		query += ` AND id IN (SELECT group_id FROM group_owners WHERE user_id = ?)`
		args = append(args, filter.OwnerID)
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	if filter.StatusGT != nil {
		query += ` AND status > ?`
		args = append(args, *filter.StatusGT)
	}
	if filter.KindGT != nil {
		query += ` AND kind > ?`
		args = append(args, *filter.KindGT)
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
		query += ` AND (name LIKE ? OR code LIKE ? OR CAST(bhs_id AS TEXT) LIKE ?)`
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}

	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, group := range groups {
		group.OwnerIDs, err = loadOwners(r.db, "group_owners", "group_id", group.ID)
		if err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// UpdateStatusWithLog persists a completed transition and its audit entry as
// a single transaction. On failure neither write survives.
func (r *GroupRepository) UpdateStatusWithLog(group *models.Group, log *models.StateLog) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	group.ModifiedAt = time.Now()
	_, err = tx.Exec(`UPDATE groups SET status = ?, modified_at = ? WHERE id = ?`,
		group.Status, group.ModifiedAt, group.ID)
	if err != nil {
		return err
	}

	if err := insertStateLog(tx, log); err != nil {
		return err
	}

	return tx.Commit()
}

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(
		&group.ID, &group.Name, &group.Status, &group.Kind, &group.Gender, &group.Representing,
		&group.BHSID, &group.Code, &group.Website, &group.Email, &group.Phone, &group.FaxPhone,
		&group.StartDate, &group.EndDate, &group.Location, &group.Facebook, &group.Twitter,
		&group.Youtube, &group.Pinterest, &group.Flickr, &group.Instagram, &group.Soundcloud,
		&group.Image, &group.Description, &group.VisitorInformation, &group.Participants,
		&group.Chapters, &group.Notes, &group.CreatedAt, &group.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}
