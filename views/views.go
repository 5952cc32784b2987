// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views renders the poll pages from embedded HTML templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/polls/models"
)

// Page names
const (
	PageIndex   = "index"
	PageDetail  = "detail"
	PageResults = "results"
)

//go:embed templates
var files embed.FS

// IndexPage is the data for the poll listing.
type IndexPage struct {
	LatestQuestionList []models.Question
}

// DetailPage is the data for the voting form. ErrorMessage is set when a
// vote is redisplayed.
type DetailPage struct {
	Question     models.Question
	ErrorMessage string
}

type ResultsPage struct {
	Question models.Question
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page is the base layout plus the
// page's own title and content blocks.
func New() (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcs()).ParseFS(files, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageIndex, PageDetail, PageResults} {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base template: %w", err)
		}
		if _, err := page.ParseFS(files, "templates/polls/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"naturaltime": func(t time.Time) string {
			return humanize.Time(t)
		},
		"pluralize": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}
