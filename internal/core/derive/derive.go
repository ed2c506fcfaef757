// Package derive computes read-only projections of a todo collection.
// Every function is pure: inputs are never mutated and results are fresh
// slices, so callers can hand them straight to the presentation layer.
package derive

import (
	"math"
	"sort"
	"strings"

	"todolist/internal/core/domain"
)

// Filter applies, in order, the completion filter, a case-insensitive
// substring match on text and the category selection. Relative order of
// surviving todos is preserved.
func Filter(todos []domain.Todo, filter domain.Filter, searchTerm string, selectedCategory string) []domain.Todo {
	out := make([]domain.Todo, 0, len(todos))
	needle := strings.ToLower(strings.TrimSpace(searchTerm))

	for _, todo := range todos {
		switch filter {
		case domain.FilterActive:
			if todo.Completed {
				continue
			}
		case domain.FilterCompleted:
			if !todo.Completed {
				continue
			}
		}

		if needle != "" && !strings.Contains(strings.ToLower(todo.Text), needle) {
			continue
		}

		if selectedCategory != domain.CategoryAll && string(todo.Category) != selectedCategory {
			continue
		}

		out = append(out, todo)
	}

	return out
}

// Apply is Filter driven by a ViewState.
func Apply(todos []domain.Todo, view domain.ViewState) []domain.Todo {
	return Filter(todos, view.Filter, view.SearchTerm, view.SelectedCategory)
}

type Stats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

// Compute returns aggregate counts over the whole collection. The completion
// rate is a rounded percentage, zero for an empty collection.
func Compute(todos []domain.Todo) Stats {
	stats := Stats{Total: len(todos)}

	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
		}
	}

	stats.Active = stats.Total - stats.Completed

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats
}

// Sort orders a copy of todos by the given key for display. Equal keys fall
// back to the todo id so the result is deterministic. The canonical
// collection order is never touched by this.
func Sort(todos []domain.Todo, key domain.SortKey, order domain.SortOrder) []domain.Todo {
	out := make([]domain.Todo, len(todos))
	copy(out, todos)

	less := lessFunc(key)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if order == domain.SortDesc {
			a, b = b, a
		}

		switch {
		case less(a, b):
			return true
		case less(b, a):
			return false
		}

		return a.ID < b.ID
	})

	return out
}

func lessFunc(key domain.SortKey) func(a, b domain.Todo) bool {
	switch key {
	case domain.SortByText:
		return func(a, b domain.Todo) bool { return a.Text < b.Text }
	case domain.SortByPriority:
		return func(a, b domain.Todo) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case domain.SortByCategory:
		return func(a, b domain.Todo) bool { return a.Category < b.Category }
	default:
		return func(a, b domain.Todo) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// GroupByCategory buckets todos by category, keeping collection order within
// each bucket.
func GroupByCategory(todos []domain.Todo) map[domain.Category][]domain.Todo {
	groups := make(map[domain.Category][]domain.Todo)

	for _, todo := range todos {
		groups[todo.Category] = append(groups[todo.Category], todo)
	}

	return groups
}
