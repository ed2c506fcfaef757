package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"todolist/internal/adapter/storage/memory"
	"todolist/internal/core/domain"
	factory "todolist/pkg/test/factory"
)

func TestMemoryStorage_LoadBeforeAnySave(t *testing.T) {
	storage := memory.New()

	todos, found, err := storage.Load(context.Background())

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, todos)
}

func TestMemoryStorage_SaveThenLoad(t *testing.T) {
	storage := memory.New()

	want := []domain.Todo{
		factory.NewTodo[domain.Todo](map[string]any{"Text": "Buy milk", "Category": domain.CategoryShopping, "Priority": domain.PriorityHigh}),
		factory.NewTodo[domain.Todo](map[string]any{"Text": "Write report", "Category": domain.CategoryWork, "Priority": domain.PriorityMedium}),
	}

	assert.NoError(t, storage.Save(context.Background(), want))

	got, found, err := storage.Load(context.Background())

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestMemoryStorage_LoadReturnsCopy(t *testing.T) {
	storage := memory.New()

	todo := factory.NewTodo[domain.Todo](map[string]any{"Text": "original", "Category": domain.CategoryPersonal, "Priority": domain.PriorityLow})

	assert.NoError(t, storage.Save(context.Background(), []domain.Todo{todo}))

	first, _, _ := storage.Load(context.Background())
	first[0].Text = "mutated"

	second, _, _ := storage.Load(context.Background())

	assert.Equal(t, "original", second[0].Text)
}

func TestMemoryStorage_FailSave(t *testing.T) {
	storage := memory.New()
	storage.FailSave = errors.New("disk full")

	err := storage.Save(context.Background(), nil)

	assert.Error(t, err)

	_, found, loadErr := storage.Load(context.Background())

	assert.NoError(t, loadErr)
	assert.False(t, found)
}
