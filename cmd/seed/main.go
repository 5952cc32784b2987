// Seed tool: fills the polls database with sample questions.
// -t and -d behave as on the server and fall back to the same environment
// variables. One extra question is dated in the future so the publication
// filter can be checked by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/models"
)

var sampleChoices = [][]string{
	{"Not much", "The sky", "Just hacking again"},
	{"Tea", "Coffee", "Water"},
	{"Cats", "Dogs"},
	{"Yes", "No", "Maybe"},
}

func main() {
	var numQuestions int
	var maxVotes int
	var dbType, dbURL string
	flag.IntVar(&numQuestions, "n", 8, "number of published questions")
	flag.IntVar(&maxVotes, "votes", 50, "maximum random votes per choice")
	flag.StringVar(&dbType, "t", "", "Database type (sqlite or postgres)")
	flag.StringVar(&dbURL, "d", "", "Database URL")
	flag.Parse()

	_ = godotenv.Load()

	var args []string
	if dbType != "" {
		args = append(args, "-t", dbType)
	}
	if dbURL != "" {
		args = append(args, "-d", dbURL)
	}
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	// Local RNG instance so runs are independent of the global source
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	start := time.Now()
	created, err := seed(context.Background(), conn, r, time.Now().UTC(), numQuestions, maxVotes)
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seeded", "questions", created, "duration", time.Since(start).Truncate(time.Millisecond))
}

// seed inserts n questions published an hour apart before now, plus one
// scheduled a day after now. It returns the number of questions created.
func seed(ctx context.Context, conn *gorm.DB, r *rand.Rand, now time.Time, n, maxVotes int) (int, error) {
	questions := make([]models.Question, 0, n+1)
	for i := 0; i < n; i++ {
		questions = append(questions, sampleQuestion(r,
			fmt.Sprintf("Sample question %d?", i+1),
			now.Add(-time.Duration(i+1)*time.Hour),
			sampleChoices[i%len(sampleChoices)],
			maxVotes,
		))
	}
	questions = append(questions, sampleQuestion(r, "Scheduled question?", now.Add(24*time.Hour), sampleChoices[0], 0))

	if err := conn.WithContext(ctx).Create(&questions).Error; err != nil {
		return 0, fmt.Errorf("failed to insert questions: %w", err)
	}
	return len(questions), nil
}

func sampleQuestion(r *rand.Rand, text string, pubDate time.Time, choices []string, maxVotes int) models.Question {
	q := models.Question{QuestionText: text, PubDate: pubDate}
	for _, c := range choices {
		votes := 0
		if maxVotes > 0 {
			votes = r.Intn(maxVotes + 1)
		}
		q.Choices = append(q.Choices, models.Choice{ChoiceText: c, Votes: votes})
	}
	return q
}
