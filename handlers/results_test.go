// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/polls/testutil"
)

func TestResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewResultsHandler(db, testutil.GetTestConfig(), newTestViews(t))

	q := testutil.CreateTestQuestion(t, db, "What's up?", -time.Hour)
	testutil.AddTestChoice(t, db, q.ID, "Not much", 1)
	testutil.AddTestChoice(t, db, q.ID, "The sky", 1234)

	w := httptest.NewRecorder()
	h.Results(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(q.ID)))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w,
		"Not much -- 1 vote<",
		"The sky -- 1,234 votes",
		"1,235 votes in total",
		fmt.Sprintf(`href="/polls/%d/"`, q.ID),
	)
}

func TestResultsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewResultsHandler(db, testutil.GetTestConfig(), newTestViews(t))
	q := testutil.CreateTestQuestion(t, db, "Quiet question.", -time.Hour, "A", "B")

	w := httptest.NewRecorder()
	h.Results(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(q.ID)))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w, "A -- 0 votes", "B -- 0 votes", "0 votes in total")
}

func TestResultsVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	future := testutil.CreateTestQuestion(t, db, "Future question.", 5*24*time.Hour, "Later")

	t.Run("future question served by default", func(t *testing.T) {
		h := NewResultsHandler(db, testutil.GetTestConfig(), newTestViews(t))

		w := httptest.NewRecorder()
		h.Results(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(future.ID)))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "Future question.")
	})

	t.Run("future question hidden when publication required", func(t *testing.T) {
		cfg := testutil.GetTestConfig()
		cfg.ResultsRequirePublished = true
		h := NewResultsHandler(db, cfg, newTestViews(t))

		w := httptest.NewRecorder()
		h.Results(w, withID(httptest.NewRequest("GET", "/", nil), fmt.Sprint(future.ID)))

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	for _, id := range []string{"9999", "abc", "-1", "18446744073709551615"} {
		t.Run("not found "+id, func(t *testing.T) {
			h := NewResultsHandler(db, testutil.GetTestConfig(), newTestViews(t))

			w := httptest.NewRecorder()
			h.Results(w, withID(httptest.NewRequest("GET", "/", nil), id))

			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}
}
