// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/polls/testutil"
	"github.com/danielhkuo/polls/views"
)

func newTestViews(t *testing.T) *views.Renderer {
	t.Helper()
	v, err := views.New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return v
}

// withID sets the {id} path value the mux would normally fill in
func withID(r *http.Request, id string) *http.Request {
	r.SetPathValue("id", id)
	return r
}

func TestIndex(t *testing.T) {
	t.Run("no questions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "No polls are available.")
	})

	t.Run("past question is listed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
		testutil.CreateTestQuestion(t, db, "Past question.", -30*24*time.Hour)

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "Past question.")
		testutil.AssertBodyNotContains(t, w, "No polls are available.")
	})

	t.Run("future question is hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
		testutil.CreateTestQuestion(t, db, "Future question.", 30*24*time.Hour)

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "No polls are available.")
		testutil.AssertBodyNotContains(t, w, "Future question.")
	})

	t.Run("past and future question", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
		testutil.CreateTestQuestion(t, db, "Past question.", -30*24*time.Hour)
		testutil.CreateTestQuestion(t, db, "Future question.", 30*24*time.Hour)

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertBodyContains(t, w, "Past question.")
		testutil.AssertBodyNotContains(t, w, "Future question.")
	})

	t.Run("newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
		testutil.CreateTestQuestion(t, db, "Past question 1.", -30*24*time.Hour)
		testutil.CreateTestQuestion(t, db, "Past question 2.", -5*24*time.Hour)

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		body := w.Body.String()
		first := strings.Index(body, "Past question 2.")
		second := strings.Index(body, "Past question 1.")
		if first < 0 || second < 0 || first > second {
			t.Errorf("Expected question 2 before question 1. Body: %s", body)
		}
	})

	t.Run("at most five", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
		for i := 1; i <= 7; i++ {
			testutil.CreateTestQuestion(t, db, fmt.Sprintf("Question number %d.", i), -time.Duration(i)*time.Hour)
		}

		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if n := strings.Count(w.Body.String(), "<li>"); n != LatestLimit {
			t.Errorf("Expected %d listed questions, got %d", LatestLimit, n)
		}
		// Oldest two fall off the end
		testutil.AssertBodyNotContains(t, w, "Question number 6.", "Question number 7.")
		testutil.AssertBodyContains(t, w, "Question number 1.", "Question number 5.")
	})
}

func TestDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))

	past := testutil.CreateTestQuestion(t, db, "Past question.", -5*24*time.Hour, "Yes", "No")
	future := testutil.CreateTestQuestion(t, db, "Future question.", 5*24*time.Hour, "Maybe")

	t.Run("past question shows form", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Detail(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(past.ID)))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w,
			"Past question.",
			fmt.Sprintf(`action="/polls/%d/vote/"`, past.ID),
			`id="choice1"`,
			`id="choice2"`,
			fmt.Sprintf(`value="%d"`, past.Choices[0].ID),
		)
		testutil.AssertBodyNotContains(t, w, "select a choice")
	})

	notFound := []struct {
		name string
		id   string
	}{
		{"future question", fmt.Sprint(future.ID)},
		{"unknown id", "9999"},
		{"non-numeric id", "abc"},
		{"zero id", "0"},
		{"id beyond int64", "18446744073709551615"},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Detail(w, withID(httptest.NewRequest("GET", "/", nil), tt.id))
			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}
}

func TestDetailUsesClock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewPollHandler(db, testutil.GetTestConfig(), newTestViews(t))
	q := testutil.CreateTestQuestion(t, db, "Scheduled question.", 2*time.Hour)

	// Move the clock past the publication date
	h.now = func() time.Time { return time.Now().Add(3 * time.Hour) }

	w := httptest.NewRecorder()
	h.Detail(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(q.ID)))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w, "Scheduled question.")
}
