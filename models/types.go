package models

import "time"

// RecentWindow is how far back WasPublishedRecently looks.
const RecentWindow = 24 * time.Hour

// MaxTextLength bounds question and choice text.
const MaxTextLength = 200

// Domain types

type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionText string    `gorm:"size:200;not null" json:"question_text"`
	PubDate      time.Time `gorm:"not null;index" json:"pub_date"`
	Choices      []Choice  `gorm:"constraint:OnDelete:CASCADE" json:"choices"`
}

type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	ChoiceText string `gorm:"size:200;not null" json:"choice_text"`
	Votes      int    `gorm:"not null;default:0" json:"votes"`
}

func (q Question) String() string {
	return q.QuestionText
}

func (c Choice) String() string {
	return c.ChoiceText
}

// IsPublished reports whether the question is visible to voters at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently is true for questions published within the last day.
// Questions dated in the future are not recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-RecentWindow)) && q.IsPublished(now)
}

func (q Question) TotalVotes() int {
	total := 0
	for _, c := range q.Choices {
		total += c.Votes
	}
	return total
}

// Request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
	Choices      []string   `json:"choices,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID uint   `json:"question_id"`
	ChoiceIDs  []uint `json:"choice_ids"`
}

type AddChoiceResponse struct {
	ChoiceID uint `json:"choice_id"`
}

type QuestionAdminResponse struct {
	Question             Question `json:"question"`
	TotalVotes           int      `json:"total_votes"`
	Published            bool     `json:"published"`
	WasPublishedRecently bool     `json:"was_published_recently"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
