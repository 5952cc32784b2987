// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls site.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PollHandler: Question listing and the voting form
  - VotingHandler: Vote submission
  - ResultsHandler: Per-choice vote counts
  - AdminHandler: JSON API for creating questions and choices
  - TraceHandler: Diagnostic span generator

Handlers are created via constructor functions that accept *gorm.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg, renderer)

# Publication

A question is published once its pub_date is at or before the current time.
The index and detail pages only ever show published questions:

	GET /polls/              → Index (latest five, newest first)
	GET /polls/{id}/         → Detail (404 until published)

Results and voting look questions up by id alone unless
Config.ResultsRequirePublished is set:

	GET  /polls/{id}/results/ → Results
	POST /polls/{id}/vote/    → Vote (302 to results on success)

# Voting

A vote is a single UPDATE of the chosen row, scoped to the question, so
concurrent votes are never lost. A missing, malformed or foreign choice
redisplays the form with NoChoiceMessage and changes nothing.

# Admin API

	POST /api/questions               → CreateQuestion
	POST /api/questions/{id}/choices  → AddChoice
	GET  /api/questions/{id}          → GetQuestion

Admin operations require the X-Admin-Key header.

# Trace Test

	GET /trace-test?spans=N&junk=true → TraceTest

Emits N spans named TestSpanName under the request span and reports the
trace and span IDs found in that request's logs.
*/
package handlers
