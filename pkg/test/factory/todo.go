package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

// NewTodo fabricates a todo-shaped struct, filling in sane defaults for the
// fields tests rarely care about.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	now := time.Now()

	defaults := map[string]any{
		"ID":        uuid.NewString(),
		"Completed": false,
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	for _, data := range customData {
		for key := range defaults {
			if _, exists := data[key]; exists {
				delete(defaults, key)
			}
		}
	}

	customData = append(customData, defaults)

	return instance.Build(customData...)
}
