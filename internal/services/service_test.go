package services

import (
	"database/sql"
	"testing"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		access_token TEXT NOT NULL UNIQUE,
		is_staff INTEGER NOT NULL DEFAULT 0,
		is_superuser INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE user_roles (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		PRIMARY KEY (user_id, name)
	)`,
	`CREATE TABLE persons (
		id TEXT PRIMARY KEY,
		status INTEGER NOT NULL DEFAULT 10,
		prefix TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL,
		middle_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL,
		nick_name TEXT NOT NULL DEFAULT '',
		suffix TEXT NOT NULL DEFAULT '',
		birth_date DATE,
		spouse TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		part INTEGER,
		mon INTEGER,
		gender INTEGER,
		representing TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		home_phone TEXT NOT NULL DEFAULT '',
		work_phone TEXT NOT NULL DEFAULT '',
		cell_phone TEXT NOT NULL DEFAULT '',
		airports TEXT NOT NULL DEFAULT '[]',
		image TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		bhs_id INTEGER,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		modified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE person_owners (
		person_id TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (person_id, user_id)
	)`,
	`CREATE TABLE groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status INTEGER NOT NULL DEFAULT 0,
		kind INTEGER NOT NULL,
		gender INTEGER NOT NULL,
		representing TEXT NOT NULL DEFAULT '',
		bhs_id INTEGER UNIQUE,
		code TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		fax_phone TEXT NOT NULL DEFAULT '',
		start_date DATE,
		end_date DATE,
		location TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		youtube TEXT NOT NULL DEFAULT '',
		pinterest TEXT NOT NULL DEFAULT '',
		flickr TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		soundcloud TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		visitor_information TEXT NOT NULL DEFAULT '',
		participants TEXT NOT NULL DEFAULT '',
		chapters TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		modified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE group_owners (
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE statelogs (
		id TEXT PRIMARY KEY,
		object_type TEXT NOT NULL,
		object_id TEXT NOT NULL,
		transition TEXT NOT NULL,
		status INTEGER NOT NULL,
		by_user_id TEXT REFERENCES users(id),
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string, roles ...string) *models.User {
	t.Helper()

	user := models.NewUser(username, "token-"+username)
	user.Roles = roles
	require.NoError(t, repositories.NewUserRepository(db).Create(user))
	return user
}

func createStaffUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, "token-"+username)
	user.IsStaff = true
	require.NoError(t, repositories.NewUserRepository(db).Create(user))
	return user
}
