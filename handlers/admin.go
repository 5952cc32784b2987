// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/danielhkuo/polls/auth"
	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
)

type AdminHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewAdminHandler(db *gorm.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, now: time.Now}
}

// authorize writes the error response itself and reports whether to continue
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	err := auth.ValidateAdminKey(auth.AdminKeyFromRequest(r), h.cfg.AdminKey)
	switch {
	case err == nil:
		return true
	case errors.Is(err, auth.ErrAdminDisabled):
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin API is disabled")
	default:
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
	}
	return false
}

// validText trims s and checks it is non-empty and within MaxTextLength
func validText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > models.MaxTextLength {
		return "", false
	}
	return s, true
}

// CreateQuestion handles POST /api/questions
//
//	@Summary		Create a question
//	@Description	Creates a question with optional choices. pub_date defaults to now; a future date schedules the question.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			X-Admin-Key	header		string							true	"Admin key"
//	@Param			question	body		models.CreateQuestionRequest	true	"Question"
//	@Success		201			{object}	models.CreateQuestionResponse
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		403			{object}	models.ErrorResponse
//	@Router			/api/questions [post]
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, ok := validText(req.QuestionText)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required and must be at most 200 characters")
		return
	}

	pubDate := h.now()
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}

	q := models.Question{QuestionText: text, PubDate: pubDate.UTC()}
	seen := make(map[string]bool, len(req.Choices))
	for _, raw := range req.Choices {
		choiceText, ok := validText(raw)
		if !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "choices must be non-empty and at most 200 characters")
			return
		}
		if seen[choiceText] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Duplicate choice: "+choiceText)
			return
		}
		seen[choiceText] = true
		q.Choices = append(q.Choices, models.Choice{ChoiceText: choiceText})
	}

	// Question and choices are inserted in one transaction
	if err := h.db.WithContext(r.Context()).Create(&q).Error; err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	choiceIDs := make([]uint, 0, len(q.Choices))
	for _, c := range q.Choices {
		choiceIDs = append(choiceIDs, c.ID)
	}

	slog.Info("question created", "question_id", q.ID, "choices", len(choiceIDs), "pub_date", q.PubDate)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: q.ID,
		ChoiceIDs:  choiceIDs,
	})
}

// AddChoice handles POST /api/questions/:id/choices
//
//	@Summary	Add a choice to a question
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		X-Admin-Key	header		string					true	"Admin key"
//	@Param		id			path		int						true	"Question ID"
//	@Param		choice		body		models.AddChoiceRequest	true	"Choice"
//	@Success	201			{object}	models.AddChoiceResponse
//	@Failure	400			{object}	models.ErrorResponse
//	@Failure	401			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Failure	409			{object}	models.ErrorResponse
//	@Router		/api/questions/{id}/choices [post]
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, ok := validText(req.ChoiceText)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required and must be at most 200 characters")
		return
	}

	// Check question exists
	var q models.Question
	err := h.db.WithContext(r.Context()).Select("id").First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var duplicates int64
	err = h.db.WithContext(r.Context()).
		Model(&models.Choice{}).
		Where("question_id = ? AND choice_text = ?", q.ID, text).
		Count(&duplicates).
		Error
	if err != nil {
		slog.Error("failed to check for duplicate choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if duplicates > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Choice already exists")
		return
	}

	c := models.Choice{QuestionID: q.ID, ChoiceText: text}
	if err := h.db.WithContext(r.Context()).Create(&c).Error; err != nil {
		slog.Error("failed to insert choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create choice")
		return
	}

	slog.Info("choice added", "question_id", q.ID, "choice_id", c.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{ChoiceID: c.ID})
}

// GetQuestion handles GET /api/questions/:id
// Returns the question with raw vote counts whether or not it is published
//
//	@Summary	Get a question with vote counts
//	@Tags		admin
//	@Produce	json
//	@Param		X-Admin-Key	header		string	true	"Admin key"
//	@Param		id			path		int		true	"Question ID"
//	@Success	200			{object}	models.QuestionAdminResponse
//	@Failure	401			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Router		/api/questions/{id} [get]
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	now := h.now().UTC()
	q, err := loadQuestion(r.Context(), h.db, id, now, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionAdminResponse{
		Question:             q,
		TotalVotes:           q.TotalVotes(),
		Published:            q.IsPublished(now),
		WasPublishedRecently: q.WasPublishedRecently(now),
	})
}
