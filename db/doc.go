// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and migrates the schema.

# Connecting

Open picks a GORM dialect from cfg.DatabaseType:

	conn, err := db.Open(cfg)

  - postgres: gorm.io/driver/postgres over the lib/pq driver
  - sqlite: github.com/glebarez/sqlite (pure Go, no cgo)

SQLite pools are limited to one open connection.

# Schema

Migrate runs GORM AutoMigrate for the models package:

	if err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

# Tables

  - questions: question_text, pub_date (indexed)
  - choices: question_id (indexed), choice_text, votes

# Relationships

	questions 1──* choices

The foreign key cascades on delete.

# Logging

GORM output goes through slog at warn level; record-not-found is ignored.
*/
package db
