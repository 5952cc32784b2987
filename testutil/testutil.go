// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/models"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; it is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close(conn)
	})

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8000,
		DatabaseType:  cliparse.DatabaseSQLite,
		DatabaseURL:   "file::memory:",
		AdminKey:      TestAdminKey,
		ServiceName:   "polls-test",
		TraceExporter: cliparse.ExporterNone,
		LogFormat:     "text",
	}
}

// CreateTestQuestion creates a question published at now+offset (negative
// offsets are in the past) with the given choices.
func CreateTestQuestion(t *testing.T, conn *gorm.DB, text string, offset time.Duration, choices ...string) models.Question {
	t.Helper()

	q := models.Question{
		QuestionText: text,
		PubDate:      time.Now().UTC().Add(offset),
	}
	for _, c := range choices {
		q.Choices = append(q.Choices, models.Choice{ChoiceText: c})
	}

	if err := conn.Create(&q).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q
}

// AddTestChoice adds a choice to a question and returns it
func AddTestChoice(t *testing.T, conn *gorm.DB, questionID uint, text string, votes int) models.Choice {
	t.Helper()

	c := models.Choice{QuestionID: questionID, ChoiceText: text, Votes: votes}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}
	return c
}

// GetVotes reads a choice's counter straight from the database
func GetVotes(t *testing.T, conn *gorm.DB, choiceID uint) int {
	t.Helper()

	var c models.Choice
	if err := conn.First(&c, choiceID).Error; err != nil {
		t.Fatalf("Failed to load choice %d: %v", choiceID, err)
	}
	return c.Votes
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a POST request with an urlencoded form body
func MakeFormRequest(path string, form url.Values) *http.Request {
	var body io.Reader = strings.NewReader(form.Encode())
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertBodyContains checks that the response body contains every substring
func AssertBodyContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q. Body: %s", s, body)
		}
	}
}

// AssertBodyNotContains checks that the response body contains none of the substrings
func AssertBodyNotContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if strings.Contains(body, s) {
			t.Errorf("Expected body not to contain %q. Body: %s", s, body)
		}
	}
}
