// Package docs registers the OpenAPI description of the admin API with swag
// so http-swagger can serve it at /swagger/doc.json.
//
// Keep in sync with the @-annotations on handlers.AdminHandler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/questions": {
            "post": {
                "description": "Creates a question with optional choices. pub_date defaults to now; a future date schedules the question.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a question",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "X-Admin-Key", "in": "header", "required": true},
                    {"description": "Question", "name": "question", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateQuestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CreateQuestionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/questions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get a question with vote counts",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "X-Admin-Key", "in": "header", "required": true},
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionAdminResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/questions/{id}/choices": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a choice to a question",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "X-Admin-Key", "in": "header", "required": true},
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true},
                    {"description": "Choice", "name": "choice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddChoiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AddChoiceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.AddChoiceRequest": {
            "type": "object",
            "properties": {"choice_text": {"type": "string"}}
        },
        "models.AddChoiceResponse": {
            "type": "object",
            "properties": {"choice_id": {"type": "integer"}}
        },
        "models.Choice": {
            "type": "object",
            "properties": {
                "choice_text": {"type": "string"},
                "id": {"type": "integer"},
                "question_id": {"type": "integer"},
                "votes": {"type": "integer"}
            }
        },
        "models.CreateQuestionRequest": {
            "type": "object",
            "properties": {
                "choices": {"type": "array", "items": {"type": "string"}},
                "pub_date": {"type": "string", "format": "date-time"},
                "question_text": {"type": "string"}
            }
        },
        "models.CreateQuestionResponse": {
            "type": "object",
            "properties": {
                "choice_ids": {"type": "array", "items": {"type": "integer"}},
                "question_id": {"type": "integer"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Question": {
            "type": "object",
            "properties": {
                "choices": {"type": "array", "items": {"$ref": "#/definitions/models.Choice"}},
                "id": {"type": "integer"},
                "pub_date": {"type": "string", "format": "date-time"},
                "question_text": {"type": "string"}
            }
        },
        "models.QuestionAdminResponse": {
            "type": "object",
            "properties": {
                "published": {"type": "boolean"},
                "question": {"$ref": "#/definitions/models.Question"},
                "total_votes": {"type": "integer"},
                "was_published_recently": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Polls Admin API",
	Description:      "Create questions and choices and read raw vote counts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
