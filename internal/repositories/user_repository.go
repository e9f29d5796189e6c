package repositories

import (
	"database/sql"

	"github.com/barberscore/registry/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and its role rows
func (r *UserRepository) Create(user *models.User) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (
			id, username, name, email, access_token, is_staff, is_superuser, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		user.ID, user.Username, user.Name, user.Email, user.AccessToken,
		user.IsStaff, user.IsSuperuser, user.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, role := range user.Roles {
		if _, err := tx.Exec(`INSERT INTO user_roles (user_id, name) VALUES (?, ?)`, user.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a user by ID with roles loaded
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.getBy(`id = ?`, id)
}

// GetByAccessToken resolves a bearer token to a user with roles loaded
func (r *UserRepository) GetByAccessToken(token string) (*models.User, error) {
	return r.getBy(`access_token = ?`, token)
}

func (r *UserRepository) getBy(where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, username, name, email, access_token, is_staff, is_superuser, created_at
		FROM users WHERE ` + where

	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Name, &user.Email, &user.AccessToken,
		&user.IsStaff, &user.IsSuperuser, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Roles, err = r.loadRoles(user.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) loadRoles(userID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT name FROM user_roles WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}

	return roles, rows.Err()
}

// GetUsernames maps user IDs to usernames, preserving input order and
// skipping unknown IDs
func (r *UserRepository) GetUsernames(ids []string) ([]string, error) {
	usernames := []string{}
	for _, id := range ids {
		var username string
		err := r.db.QueryRow(`SELECT username FROM users WHERE id = ?`, id).Scan(&username)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, nil
}
