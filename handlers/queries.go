// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
)

// LatestLimit is the number of questions on the index page.
const LatestLimit = 5

// NoChoiceMessage is shown when a vote names no valid choice.
const NoChoiceMessage = "You didn't select a choice."

// parseID reads the {id} path value. Anything but a positive integer that
// fits a signed 64-bit column is treated as a missing question.
func parseID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 63)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// publishedBy keeps questions whose pub_date is at or before now.
func publishedBy(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("pub_date <= ?", now)
	}
}

func choicesInOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("id ASC")
}

// loadQuestion fetches a question and its choices. With publishedOnly set an
// unpublished question is reported as gorm.ErrRecordNotFound.
func loadQuestion(ctx context.Context, db *gorm.DB, id uint, now time.Time, publishedOnly bool) (models.Question, error) {
	tx := db.WithContext(ctx).Preload("Choices", choicesInOrder)
	if publishedOnly {
		tx = tx.Scopes(publishedBy(now))
	}

	var q models.Question
	if err := tx.First(&q, id).Error; err != nil {
		return models.Question{}, err
	}
	return q, nil
}

func resultsPath(id uint) string {
	return fmt.Sprintf("/polls/%d/results/", id)
}

// serverError logs err with the request's correlation IDs and answers 500.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	attrs := append([]any{"error", err, "path", r.URL.Path}, middleware.CorrelationAttrs(r.Context())...)
	slog.ErrorContext(r.Context(), msg, attrs...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
