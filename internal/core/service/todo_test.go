package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todolist/pkg/test"

	"todolist/internal/adapter/storage/memory"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/core/store"
	"todolist/internal/core/telemetry"
)

type TodoServiceTestSuite struct {
	suite.Suite
	Service *service.TodoService
	Store   *store.Store
	Storage *memory.Storage
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.Store, s.Storage = NewTestStore()
	s.Service = service.NewTodoService(s.Store, telemetry.NewNoOpProbe())
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) add(text string) domain.Todo {
	todo, err := s.Service.AddTodo(context.Background(), text, "", "")

	assert.NoError(s.T(), err)

	return todo
}

func (s *TodoServiceTestSuite) TestService_AddTodo_TrimsAndDefaults() {
	todo := s.add("  Buy milk  ")

	Expect(todo.ID).NotTo(BeEmpty())
	Expect(todo.Text).To(Equal("Buy milk"))
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.Category).To(Equal(domain.CategoryPersonal))
	Expect(todo.Priority).To(Equal(domain.PriorityMedium))
	Expect(todo.UpdatedAt).To(Equal(todo.CreatedAt))
}

func (s *TodoServiceTestSuite) TestService_AddTodo_KeepsExplicitFields() {
	todo, err := s.Service.AddTodo(context.Background(), "Ship release", domain.CategoryWork, domain.PriorityHigh)

	Expect(err).To(BeNil())
	Expect(todo.Category).To(Equal(domain.CategoryWork))
	Expect(todo.Priority).To(Equal(domain.PriorityHigh))
}

func (s *TodoServiceTestSuite) TestService_AddTodo_RejectsBlankText() {
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := s.Service.AddTodo(context.Background(), text, "", "")

		Expect(errors.Is(err, domain.ErrEmptyText)).To(BeTrue())
	}

	Expect(s.Service.AllTodos(context.Background())).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestService_AddTodo_UniqueIDs() {
	first := s.add("one")
	second := s.add("two")

	Expect(first.ID).NotTo(Equal(second.ID))
}

func (s *TodoServiceTestSuite) TestService_UpdateTodo_NotFound() {
	_, err := s.Service.UpdateTodo(context.Background(), "missing", domain.TodoPatch{})

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_UpdateTodo_AppliesPatch() {
	todo := s.add("draft")

	text := "final"
	priority := domain.PriorityHigh

	updated, err := s.Service.UpdateTodo(context.Background(), todo.ID, domain.TodoPatch{
		Text:     &text,
		Priority: &priority,
	})

	Expect(err).To(BeNil())
	Expect(updated.Text).To(Equal("final"))
	Expect(updated.Priority).To(Equal(domain.PriorityHigh))
	Expect(updated.Category).To(Equal(todo.Category))
}

func (s *TodoServiceTestSuite) TestService_DeleteTodo_NotFound() {
	err := s.Service.DeleteTodo(context.Background(), "missing")

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_ToggleTwiceRestoresState() {
	todo := s.add("flip me")

	Expect(s.Service.ToggleTodo(context.Background(), todo.ID)).To(BeNil())
	Expect(s.Service.AllTodos(context.Background())[0].Completed).To(BeTrue())

	Expect(s.Service.ToggleTodo(context.Background(), todo.ID)).To(BeNil())
	Expect(s.Service.AllTodos(context.Background())[0].Completed).To(BeFalse())
}

func (s *TodoServiceTestSuite) TestService_ToggleUnknownIDIsNoOp() {
	s.add("keep me")

	Expect(s.Service.ToggleTodo(context.Background(), "missing")).To(BeNil())
	Expect(s.Service.AllTodos(context.Background())).To(HaveLen(1))
}

func (s *TodoServiceTestSuite) TestService_BulkDeleteThenToggle() {
	a := s.add("a")
	b := s.add("b")
	c := s.add("c")

	Expect(s.Service.BulkDelete(context.Background(), []string{a.ID, c.ID})).To(BeNil())

	remaining := s.Service.AllTodos(context.Background())

	Expect(remaining).To(HaveLen(1))
	Expect(remaining[0].ID).To(Equal(b.ID))

	Expect(s.Service.BulkToggle(context.Background(), []string{b.ID})).To(BeNil())
	Expect(s.Service.AllTodos(context.Background())[0].Completed).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_MoveTodo() {
	a := s.add("a")
	b := s.add("b")
	c := s.add("c")

	// Drag a over c: a takes c's position.
	Expect(s.Service.MoveTodo(context.Background(), a.ID, c.ID)).To(BeNil())

	ids := idsOf(s.Service.AllTodos(context.Background()))

	Expect(ids).To(Equal([]string{b.ID, c.ID, a.ID}))
}

func (s *TodoServiceTestSuite) TestService_MoveTodo_UnknownOrSameIDIsNoOp() {
	a := s.add("a")
	b := s.add("b")

	Expect(s.Service.MoveTodo(context.Background(), a.ID, a.ID)).To(BeNil())
	Expect(s.Service.MoveTodo(context.Background(), "missing", b.ID)).To(BeNil())
	Expect(s.Service.MoveTodo(context.Background(), a.ID, "missing")).To(BeNil())

	Expect(idsOf(s.Service.AllTodos(context.Background()))).To(Equal([]string{a.ID, b.ID}))
}

func (s *TodoServiceTestSuite) TestService_ReorderTodos_RejectsNonPermutation() {
	a := s.add("a")
	s.add("b")

	err := s.Service.ReorderTodos(context.Background(), []string{a.ID})

	Expect(errors.Is(err, domain.ErrNotPermutation)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_ListTodos_AppliesViewState() {
	s.add("buy milk")
	done := s.add("buy bread")
	s.add("write code")

	Expect(s.Service.ToggleTodo(context.Background(), done.ID)).To(BeNil())
	Expect(s.Service.SetFilter(context.Background(), domain.FilterActive)).To(BeNil())
	s.Service.SetSearchTerm(context.Background(), "buy")

	listed := s.Service.ListTodos(context.Background(), port.ListOptions{})

	Expect(listed).To(HaveLen(1))
	Expect(listed[0].Text).To(Equal("buy milk"))
}

func (s *TodoServiceTestSuite) TestService_ListTodos_SortDoesNotTouchCanonicalOrder() {
	a := s.add("zebra")
	b := s.add("apple")

	listed := s.Service.ListTodos(context.Background(), port.ListOptions{SortBy: domain.SortByText, Order: domain.SortAsc})

	Expect(idsOf(listed)).To(Equal([]string{b.ID, a.ID}))
	Expect(idsOf(s.Service.AllTodos(context.Background()))).To(Equal([]string{a.ID, b.ID}))
}

func (s *TodoServiceTestSuite) TestService_SetFilter_Invalid() {
	err := s.Service.SetFilter(context.Background(), "bogus")

	Expect(err).NotTo(BeNil())
	Expect(s.Service.View(context.Background()).Filter).To(Equal(domain.FilterAll))
}

func (s *TodoServiceTestSuite) TestService_SetSelectedCategory() {
	Expect(s.Service.SetSelectedCategory(context.Background(), "Work")).To(BeNil())
	Expect(s.Service.SetSelectedCategory(context.Background(), domain.CategoryAll)).To(BeNil())
	Expect(s.Service.SetSelectedCategory(context.Background(), "Chores")).NotTo(BeNil())
}

func (s *TodoServiceTestSuite) TestService_StatsAndGrouping() {
	s.add("one")
	done := s.add("two")

	Expect(s.Service.ToggleTodo(context.Background(), done.ID)).To(BeNil())

	stats := s.Service.Stats(context.Background())

	Expect(stats.Total).To(Equal(2))
	Expect(stats.Completed).To(Equal(1))
	Expect(stats.CompletionRate).To(Equal(50))

	groups := s.Service.GroupedByCategory(context.Background())

	Expect(groups[domain.CategoryPersonal]).To(HaveLen(2))
}

func (s *TodoServiceTestSuite) TestService_ReplaceAll() {
	s.add("old")

	replacement := []domain.Todo{
		{ID: "i1", Text: "imported 1", Category: domain.CategoryWork, Priority: domain.PriorityLow},
		{ID: "i2", Text: "imported 2", Category: domain.CategoryHealth, Priority: domain.PriorityHigh},
	}

	Expect(s.Service.ReplaceAll(context.Background(), replacement)).To(BeNil())
	Expect(idsOf(s.Service.AllTodos(context.Background()))).To(Equal([]string{"i1", "i2"}))
}

func idsOf(todos []domain.Todo) []string {
	ids := make([]string, 0, len(todos))

	for _, todo := range todos {
		ids = append(ids, todo.ID)
	}

	return ids
}
