package domain

// Значения фильтра оплаты
const (
	PaidFilterPaid = "payant"
	PaidFilterFree = "gratuit"
)

// SpotFilters - структурированные критерии фильтрации (все опциональны)
type SpotFilters struct {
	Categories []Category `json:"categories,omitempty"`
	Districts  []string   `json:"districts,omitempty"`
	Types      []string   `json:"types,omitempty"`
	Paid       string     `json:"paid,omitempty"`
}

// IsEmpty возвращает true, если ни один критерий не задан
func (f *SpotFilters) IsEmpty() bool {
	return f == nil ||
		(len(f.Categories) == 0 && len(f.Districts) == 0 && len(f.Types) == 0 && f.Paid == "")
}

// FilterOption - вариант значения фильтра
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TypeFilterOption - тип спота с категорией, к которой он относится
type TypeFilterOption struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// FilterOptions - метаданные для построения фильтров на клиенте
type FilterOptions struct {
	Categories []FilterOption     `json:"categories"`
	Districts  []FilterOption     `json:"districts"`
	Types      []TypeFilterOption `json:"types"`
	Paid       []FilterOption     `json:"paid"`
}

// PaginatedSpots - страница результатов
type PaginatedSpots struct {
	Items           []Spot `json:"items"`
	TotalCount      int    `json:"total_count"`
	TotalPages      int    `json:"total_pages"`
	CurrentPage     int    `json:"current_page"`
	HasNextPage     bool   `json:"has_next_page"`
	HasPreviousPage bool   `json:"has_previous_page"`
}
