package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/testutil"
)

func TestSeed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	now := time.Now().UTC()

	created, err := seed(t.Context(), conn, rand.New(rand.NewSource(1)), now, 3, 10)
	if err != nil {
		t.Fatalf("seed() error = %v", err)
	}
	if created != 4 {
		t.Errorf("Expected 4 questions, got %d", created)
	}

	var published int64
	conn.Model(&models.Question{}).Where("pub_date <= ?", now).Count(&published)
	if published != 3 {
		t.Errorf("Expected 3 published questions, got %d", published)
	}

	var choices []models.Choice
	conn.Find(&choices)
	if len(choices) == 0 {
		t.Fatal("Expected seeded choices")
	}
	for _, c := range choices {
		if c.Votes < 0 || c.Votes > 10 {
			t.Errorf("Choice %s has %d votes, want 0..10", c.ChoiceText, c.Votes)
		}
	}
}
