// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/views"
)

type PollHandler struct {
	db    *gorm.DB
	cfg   cliparse.Config
	views *views.Renderer
	now   func() time.Time
}

func NewPollHandler(db *gorm.DB, cfg cliparse.Config, v *views.Renderer) *PollHandler {
	return &PollHandler{db: db, cfg: cfg, views: v, now: time.Now}
}

// Index handles GET /polls/
// Lists the latest published questions, newest first
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()

	var questions []models.Question
	err := h.db.WithContext(r.Context()).
		Scopes(publishedBy(now)).
		Order("pub_date DESC").
		Limit(LatestLimit).
		Find(&questions).
		Error
	if err != nil {
		serverError(w, r, "failed to query latest questions", err)
		return
	}

	if err := h.views.Render(w, http.StatusOK, views.PageIndex, views.IndexPage{
		LatestQuestionList: questions,
	}); err != nil {
		serverError(w, r, "failed to render index", err)
	}
}

// Detail handles GET /polls/:id/
// Shows the voting form; questions that aren't published yet are not found
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	q, err := loadQuestion(r.Context(), h.db, id, h.now().UTC(), true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, r, "failed to query question", err)
		return
	}

	if err := h.views.Render(w, http.StatusOK, views.PageDetail, views.DetailPage{Question: q}); err != nil {
		serverError(w, r, "failed to render detail", err)
	}
}
