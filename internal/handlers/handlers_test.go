package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barberscore/registry/internal/middleware"
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/internal/services"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
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

type testEnv struct {
	router    *gin.Engine
	db        *sql.DB
	groupRepo *repositories.GroupRepository

	staff     *models.User
	librarian *models.User
	plain     *models.User
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	userRepo := repositories.NewUserRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	stateLogRepo := repositories.NewStateLogRepository(db)

	userService := services.NewUserService(userRepo)
	personService := services.NewPersonService(personRepo, stateLogRepo)
	groupService := services.NewGroupService(groupRepo, stateLogRepo)

	personHandler := NewPersonHandler(personService, userService)
	groupHandler := NewGroupHandler(groupService, userService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.ActorMiddleware(userService))

	persons := api.Group("/persons")
	persons.GET("", personHandler.List)
	persons.POST("", personHandler.Create)
	persons.GET("/:id", personHandler.Get)
	persons.PATCH("/:id", personHandler.Update)
	persons.DELETE("/:id", personHandler.Delete)
	persons.POST("/:id/activate", personHandler.Activate)
	persons.POST("/:id/deactivate", personHandler.Deactivate)
	persons.GET("/:id/statelogs", personHandler.StateLogs)

	groups := api.Group("/groups")
	groups.GET("", groupHandler.List)
	groups.POST("", groupHandler.Create)
	groups.GET("/:id", groupHandler.Get)
	groups.PATCH("/:id", groupHandler.Update)
	groups.DELETE("/:id", groupHandler.Delete)
	groups.POST("/:id/activate", groupHandler.Activate)
	groups.POST("/:id/deactivate", groupHandler.Deactivate)
	groups.GET("/:id/statelogs", groupHandler.StateLogs)

	env := &testEnv{router: router, db: db, groupRepo: groupRepo}

	env.staff = models.NewUser("staff", "token-staff")
	env.staff.IsStaff = true
	require.NoError(t, userRepo.Create(env.staff))

	env.librarian = models.NewUser("librarian", "token-librarian")
	env.librarian.Roles = []string{models.RoleLibrarian}
	require.NoError(t, userRepo.Create(env.librarian))

	env.plain = models.NewUser("plain", "token-plain")
	require.NoError(t, userRepo.Create(env.plain))

	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, actor *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+actor.AccessToken)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) createGroup(t *testing.T, name string, ownerIDs ...string) *models.Group {
	t.Helper()

	group := models.NewGroup(name, models.KindChorus, models.GenderMale)
	group.OwnerIDs = ownerIDs
	require.NoError(t, env.groupRepo.Create(group))
	return group
}

func TestGroupActivateEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	group := env.createGroup(t, "Westminster Chorus", env.librarian.ID)

	w := env.request(t, "POST", "/api/groups/"+group.ID+"/activate", gin.H{"description": "Roster verified"}, env.librarian)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusActive, resp.Status)

	w = env.request(t, "GET", "/api/groups/"+group.ID+"/statelogs", nil, env.librarian)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []StateLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "activate", logs[0].Transition)
	require.NotNil(t, logs[0].Description)
	assert.Equal(t, "Roster verified", *logs[0].Description)
}

func TestGroupActivateBlockedFromAIC(t *testing.T) {
	env := setupTestEnv(t)
	group := env.createGroup(t, "Ambassadors of Harmony", env.librarian.ID)
	_, err := env.db.Exec("UPDATE groups SET status = ? WHERE id = ?", int(models.StatusAIC), group.ID)
	require.NoError(t, err)

	w := env.request(t, "POST", "/api/groups/"+group.ID+"/activate", nil, env.librarian)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status": "Transition conditions not met."}`, w.Body.String())
}

func TestGroupEndpointsRequireAuth(t *testing.T) {
	env := setupTestEnv(t)
	group := env.createGroup(t, "Vocal Majority", env.librarian.ID)

	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{"List", "GET", "/api/groups"},
		{"Get", "GET", "/api/groups/" + group.ID},
		{"Activate", "POST", "/api/groups/" + group.ID + "/activate"},
		{"StateLogs", "GET", "/api/groups/" + group.ID + "/statelogs"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.request(t, tc.method, tc.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestGroupWritePermissionDenied(t *testing.T) {
	env := setupTestEnv(t)
	group := env.createGroup(t, "Masters of Harmony", env.librarian.ID)

	body := gin.H{"name": "Renamed"}

	w := env.request(t, "POST", "/api/groups", gin.H{"name": "New Chorus", "kind": int(models.KindChorus), "gender": int(models.GenderMale), "owners": []string{env.plain.ID}}, env.plain)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "PATCH", "/api/groups/"+group.ID, body, env.plain)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "PATCH", "/api/groups/"+group.ID, body, env.librarian)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGroupCreateEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	body := gin.H{
		"name":   "Midtown",
		"kind":   int(models.KindQuartet),
		"gender": int(models.GenderMale),
		"bhs_id": 503210,
		"owners": []string{env.librarian.ID},
	}

	w := env.request(t, "POST", "/api/groups", body, env.librarian)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Midtown", resp.Name)
	assert.Equal(t, models.StatusNew, resp.Status)
	assert.Equal(t, []string{"librarian"}, resp.Usernames)

	// second create with the same bhs_id is rejected
	body["name"] = "Other Quartet"
	w = env.request(t, "POST", "/api/groups", body, env.librarian)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bhs_id")
}

func TestGroupNotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "GET", "/api/groups/no-such-id", nil, env.plain)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonCreateEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	body := gin.H{"first_name": "John", "last_name": "Smith", "nick_name": "Bud"}

	w := env.request(t, "POST", "/api/persons", body, env.plain)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "POST", "/api/persons", body, env.staff)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PersonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "John Smith (Bud) [No BHS ID]", resp.Nomen)
	assert.Equal(t, "Bud Smith", resp.CommonName)
	assert.Equal(t, models.StatusActive, resp.Status)
	assert.Equal(t, models.MissingImageURL, resp.Image)
	assert.True(t, resp.Permissions.Write)

	w = env.request(t, "GET", fmt.Sprintf("/api/persons/%s", resp.ID), nil, env.plain)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Permissions.Write)
	assert.True(t, resp.Permissions.Read)
}

func TestPersonInvalidBirthDate(t *testing.T) {
	env := setupTestEnv(t)

	body := gin.H{"first_name": "John", "last_name": "Smith", "birth_date": "not-a-date"}
	w := env.request(t, "POST", "/api/persons", body, env.staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "birth_date")
}

func TestPersonFieldFormatValidation(t *testing.T) {
	env := setupTestEnv(t)

	testCases := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"Bad email", gin.H{"email": "not-an-email"}, "email"},
		{"Bad website", gin.H{"website": "not a url"}, "website"},
		{"Bad cell phone", gin.H{"cell_phone": "call me"}, "cell_phone"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := gin.H{"first_name": "John", "last_name": "Smith"}
			for k, v := range tc.body {
				body[k] = v
			}

			w := env.request(t, "POST", "/api/persons", body, env.staff)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.field)
		})
	}

	// valid formats pass
	body := gin.H{
		"first_name": "John",
		"last_name":  "Smith",
		"email":      "john@example.com",
		"website":    "https://example.com",
		"cell_phone": "+16155551234",
	}
	w := env.request(t, "POST", "/api/persons", body, env.staff)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGroupFieldFormatValidation(t *testing.T) {
	env := setupTestEnv(t)

	body := gin.H{
		"name":    "Midtown",
		"kind":    int(models.KindQuartet),
		"gender":  int(models.GenderMale),
		"owners":  []string{env.librarian.ID},
		"website": "not a url",
	}
	w := env.request(t, "POST", "/api/groups", body, env.librarian)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "website")

	body["website"] = "https://midtownquartet.com"
	w = env.request(t, "POST", "/api/groups", body, env.librarian)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPersonDeleteEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "POST", "/api/persons", gin.H{"first_name": "Joe", "last_name": "Connelly"}, env.staff)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PersonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = env.request(t, "DELETE", "/api/persons/"+resp.ID, nil, env.plain)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "DELETE", "/api/persons/"+resp.ID, nil, env.staff)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, "GET", "/api/persons/"+resp.ID, nil, env.staff)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFiltersPassThrough(t *testing.T) {
	env := setupTestEnv(t)
	env.createGroup(t, "Alpha Chorus", env.librarian.ID)
	other := env.createGroup(t, "Beta Chorus", env.plain.ID)

	w := env.request(t, "GET", "/api/groups?owners="+env.plain.ID, nil, env.plain)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, other.ID, resp[0].ID)

	w = env.request(t, "GET", "/api/groups?search=Alpha", nil, env.plain)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Alpha Chorus", resp[0].Name)
}

func TestMalformedBodyRejected(t *testing.T) {
	env := setupTestEnv(t)

	req, err := http.NewRequest("POST", "/api/persons", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.staff.AccessToken)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
