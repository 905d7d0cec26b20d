package usecase

import (
	"slices"

	"github.com/cool-spots/internal/domain"
)

// FilterSpots применяет структурированные критерии (логическое И).
// Отсутствующий критерий не ограничивает выборку; nil или пустой фильтр возвращает вход без изменений.
func FilterSpots(spots []domain.Spot, filters *domain.SpotFilters) []domain.Spot {
	if filters.IsEmpty() {
		return spots
	}

	result := make([]domain.Spot, 0, len(spots))
	for _, spot := range spots {
		if matchesFilters(spot, filters) {
			result = append(result, spot)
		}
	}
	return result
}

func matchesFilters(spot domain.Spot, f *domain.SpotFilters) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, spot.Category) {
		return false
	}

	if len(f.Districts) > 0 && !slices.Contains(f.Districts, spot.District) {
		return false
	}

	if len(f.Types) > 0 && !slices.Contains(f.Types, spot.Type) {
		return false
	}

	switch f.Paid {
	case domain.PaidFilterPaid:
		return spot.IsPaid.IsTrue()
	case domain.PaidFilterFree:
		return !spot.IsPaid.IsTrue()
	}

	return true
}
