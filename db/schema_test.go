// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/models"
)

func memoryConfig() cliparse.Config {
	return cliparse.Config{
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
}

func TestOpenAndMigrate(t *testing.T) {
	conn, err := Open(memoryConfig())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(conn)

	// Migrate is idempotent
	for i := 0; i < 2; i++ {
		if err := Migrate(conn); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"questions", "choices"} {
		if !conn.Migrator().HasTable(table) {
			t.Errorf("expected table %q to exist", table)
		}
	}
}

func TestCreateQuestionWithChoices(t *testing.T) {
	conn, err := Open(memoryConfig())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(conn)

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	q := models.Question{
		QuestionText: "What's up?",
		PubDate:      time.Now().UTC(),
		Choices:      []models.Choice{{ChoiceText: "Not much"}, {ChoiceText: "The sky"}},
	}
	if err := conn.Create(&q).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	var loaded models.Question
	if err := conn.Preload("Choices").First(&loaded, q.ID).Error; err != nil {
		t.Fatalf("failed to load question: %v", err)
	}
	if len(loaded.Choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(loaded.Choices))
	}
	for _, c := range loaded.Choices {
		if c.Votes != 0 {
			t.Errorf("new choice %q should start with 0 votes, got %d", c.ChoiceText, c.Votes)
		}
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open(cliparse.Config{DatabaseType: "mysql", DatabaseURL: "x"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestCloseNil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) error = %v", err)
	}
}
