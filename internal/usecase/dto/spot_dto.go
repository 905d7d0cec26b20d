package dto

import "github.com/cool-spots/internal/domain"

// SpotsRequest - запрос страницы спотов с фильтрами и поиском
type SpotsRequest struct {
	Page       int      `json:"page" validate:"min=1"`
	PageSize   int      `json:"page_size" validate:"min=1,max=100"`
	Search     string   `json:"search,omitempty" validate:"omitempty,max=200"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,dive,oneof=activities green_spaces water_fountains"`
	Districts  []string `json:"districts,omitempty" validate:"omitempty,dive,required"`
	Types      []string `json:"types,omitempty" validate:"omitempty,dive,required"`
	Paid       string   `json:"paid,omitempty" validate:"omitempty,oneof=payant gratuit"`
}

// Filters собирает структурированные критерии из запроса
func (r *SpotsRequest) Filters() *domain.SpotFilters {
	filters := &domain.SpotFilters{
		Districts: r.Districts,
		Types:     r.Types,
		Paid:      r.Paid,
	}
	for _, c := range r.Categories {
		filters.Categories = append(filters.Categories, domain.Category(c))
	}
	if filters.IsEmpty() {
		return nil
	}
	return filters
}

// SpotRecordRequest - запрос записи напрямую из источника
type SpotRecordRequest struct {
	DatasetID string `json:"dataset_id" validate:"required"`
	RecordID  string `json:"record_id" validate:"required,max=100,record_id"`
}

// SpotDetailResponse - спот с данными для страницы деталей
type SpotDetailResponse struct {
	domain.Spot
	DatasetID   string `json:"dataset_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
