// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/views"
)

type VotingHandler struct {
	db    *gorm.DB
	cfg   cliparse.Config
	views *views.Renderer
	now   func() time.Time
}

func NewVotingHandler(db *gorm.DB, cfg cliparse.Config, v *views.Renderer) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, views: v, now: time.Now}
}

// Vote handles POST /polls/:id/vote/
// Increments the selected choice and redirects to the results page. A
// missing or foreign choice redisplays the voting form with an error and
// writes nothing.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
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

	choiceID, ok := selectedChoice(r)
	if !ok {
		h.redisplay(w, r, q)
		return
	}

	// Single UPDATE so concurrent votes never overwrite each other
	res := h.db.WithContext(r.Context()).
		Model(&models.Choice{}).
		Where("id = ? AND question_id = ?", choiceID, q.ID).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if res.Error != nil {
		serverError(w, r, "failed to record vote", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.redisplay(w, r, q)
		return
	}

	slog.InfoContext(r.Context(), "vote recorded",
		append([]any{"question_id", q.ID, "choice_id", choiceID}, middleware.CorrelationAttrs(r.Context())...)...,
	)

	// Redirect after a successful POST so reloading the page doesn't vote twice
	http.Redirect(w, r, resultsPath(q.ID), http.StatusFound)
}

// selectedChoice reads the "choice" form field. Ids beyond the signed 64-bit
// range can't name a row and count as no choice.
func selectedChoice(r *http.Request) (uint64, bool) {
	if err := r.ParseForm(); err != nil {
		return 0, false
	}
	if !r.PostForm.Has("choice") {
		return 0, false
	}
	choiceID, err := strconv.ParseUint(r.PostForm.Get("choice"), 10, 63)
	if err != nil {
		return 0, false
	}
	return choiceID, true
}

func (h *VotingHandler) redisplay(w http.ResponseWriter, r *http.Request, q models.Question) {
	slog.InfoContext(r.Context(), "vote rejected", "question_id", q.ID, "reason", "no valid choice")

	if err := h.views.Render(w, http.StatusOK, views.PageDetail, views.DetailPage{
		Question:     q,
		ErrorMessage: NoChoiceMessage,
	}); err != nil {
		serverError(w, r, "failed to render detail", err)
	}
}
