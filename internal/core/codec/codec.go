// Package codec converts the todo collection to and from the portable
// export document. It is the only place imported records are validated.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"todolist/internal/core/domain"
)

const Version = "1.0"

// Document is the export envelope. The todos array carries the collection in
// canonical order.
type Document struct {
	Todos      []domain.Todo `json:"todos"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
}

// FormatError reports an unparseable or structurally invalid import
// document. The collection is never touched when one is returned.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid import document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ExportDocument serializes the collection into the versioned envelope with
// two-space indentation.
func ExportDocument(todos []domain.Todo, now time.Time) ([]byte, error) {
	doc := Document{
		Todos:      todos,
		ExportDate: now.UTC(),
		Version:    Version,
	}

	if doc.Todos == nil {
		doc.Todos = []domain.Todo{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")

	if err != nil {
		return nil, fmt.Errorf("export todos: %w", err)
	}

	return data, nil
}

// ExportFilename names the download after the export date.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("todos-export-%s.json", now.UTC().Format("2006-01-02"))
}

// ImportDocument parses an export document and returns its todos. Parse
// failures, a missing todos array and malformed records all yield a
// *FormatError. Records missing a category or priority get the defaults.
func ImportDocument(data []byte) ([]domain.Todo, error) {
	var envelope struct {
		Todos *[]domain.Todo `json:"todos"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &FormatError{Reason: "failed to parse JSON", Err: err}
	}

	if envelope.Todos == nil {
		return nil, &FormatError{Reason: "missing todos array"}
	}

	todos := *envelope.Todos
	seen := make(map[string]bool, len(todos))

	for i := range todos {
		if strings.TrimSpace(todos[i].ID) == "" {
			return nil, &FormatError{Reason: fmt.Sprintf("todo %d has no id", i)}
		}

		if seen[todos[i].ID] {
			return nil, &FormatError{Reason: fmt.Sprintf("duplicate todo id %q", todos[i].ID)}
		}

		seen[todos[i].ID] = true

		todos[i].Text = strings.TrimSpace(todos[i].Text)

		if todos[i].Text == "" {
			return nil, &FormatError{Reason: fmt.Sprintf("todo %d has empty text", i)}
		}

		if todos[i].Category == "" {
			todos[i].Category = domain.CategoryPersonal
		}

		if todos[i].Priority == "" {
			todos[i].Priority = domain.PriorityMedium
		}
	}

	return todos, nil
}
