package domain

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// CategoryAll widens the category selection to every category.
const CategoryAll = "all"

// ViewState is the ephemeral selection driving derived views. It is never
// persisted alongside the collection.
type ViewState struct {
	Filter           Filter `json:"filter"`
	SearchTerm       string `json:"searchTerm"`
	SelectedCategory string `json:"selectedCategory"`
}

func DefaultViewState() ViewState {
	return ViewState{
		Filter:           FilterAll,
		SearchTerm:       "",
		SelectedCategory: CategoryAll,
	}
}

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByText      SortKey = "text"
	SortByPriority  SortKey = "priority"
	SortByCategory  SortKey = "category"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByCreatedAt, SortByText, SortByPriority, SortByCategory:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
