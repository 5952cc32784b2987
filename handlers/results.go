// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/views"
)

type ResultsHandler struct {
	db    *gorm.DB
	cfg   cliparse.Config
	views *views.Renderer
	now   func() time.Time
}

func NewResultsHandler(db *gorm.DB, cfg cliparse.Config, v *views.Renderer) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, views: v, now: time.Now}
}

// Results handles GET /polls/:id/results/
// Unlike the detail page, results are served for unpublished questions
// unless cfg.ResultsRequirePublished is set
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	q, err := loadQuestion(r.Context(), h.db, id, h.now().UTC(), h.cfg.ResultsRequirePublished)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, r, "failed to query question", err)
		return
	}

	if err := h.views.Render(w, http.StatusOK, views.PageResults, views.ResultsPage{Question: q}); err != nil {
		serverError(w, r, "failed to render results", err)
	}
}
