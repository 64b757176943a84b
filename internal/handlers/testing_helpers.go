package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/shopsphere/storefront/storage"
	"github.com/shopsphere/storefront/storage/db"
)

// NewTestContext creates a new Echo context for testing.
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// NewTestDB creates a test database with migrations applied.
func NewTestDB() (*sql.DB, *db.Queries, func()) {
	database, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return database, queries, cleanup
}

// NewTestStorage wraps the test database in a Storage for handlers that need
// transactions.
func NewTestStorage() (*storage.Storage, func()) {
	store, cleanup, err := storage.NewTestStorage()
	if err != nil {
		panic("failed to create test storage: " + err.Error())
	}
	return store, cleanup
}
