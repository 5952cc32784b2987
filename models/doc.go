// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the persisted domain types and the admin API payloads.

# Domain Types

GORM models, migrated by package db:

  - Question: question_text, pub_date, and its choices
  - Choice: choice_text and a votes counter, owned by one question

A question is published once pub_date is at or before the current time.
Only published questions appear on the index and detail pages.

# Request Types

  - CreateQuestionRequest: question_text, optional pub_date and choices
  - AddChoiceRequest: choice_text

# Response Types

  - CreateQuestionResponse: question_id, choice_ids
  - AddChoiceResponse: choice_id
  - QuestionAdminResponse: question with raw counts and publication flags
  - ErrorResponse: error, message
*/
package models
