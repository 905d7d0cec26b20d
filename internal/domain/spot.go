package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category - категория спота; определяется источником данных и не меняется
type Category string

const (
	CategoryActivities     Category = "activities"
	CategoryGreenSpaces    Category = "green_spaces"
	CategoryWaterFountains Category = "water_fountains"
)

// AllCategories - все категории в порядке агрегации
var AllCategories = []Category{
	CategoryActivities,
	CategoryGreenSpaces,
	CategoryWaterFountains,
}

// IsValid проверяет, что категория входит в закрытый список
func (c Category) IsValid() bool {
	switch c {
	case CategoryActivities, CategoryGreenSpaces, CategoryWaterFountains:
		return true
	}
	return false
}

// Label возвращает название категории для фильтров
func (c Category) Label() string {
	switch c {
	case CategoryActivities:
		return "Activités"
	case CategoryGreenSpaces:
		return "Espaces verts"
	case CategoryWaterFountains:
		return "Fontaines"
	}
	return string(c)
}

// SearchTerms - французский перевод категории для полнотекстового поиска
func (c Category) SearchTerms() string {
	switch c {
	case CategoryActivities:
		return "activités équipements"
	case CategoryGreenSpaces:
		return "espaces verts parcs jardins"
	case CategoryWaterFountains:
		return "fontaines eau boire"
	}
	return string(c)
}

// idPrefix - префикс составного ключа для записей без идентификатора
func (c Category) idPrefix() string {
	switch c {
	case CategoryActivities:
		return "activity"
	case CategoryGreenSpaces:
		return "green-space"
	case CategoryWaterFountains:
		return "fountain"
	}
	return string(c)
}

// Geo - координаты спота. (0,0) означает отсутствие координат.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsLocatable возвращает false для нулевых координат
func (g Geo) IsLocatable() bool {
	return g.Lat != 0 || g.Lon != 0
}

// Schedule - недельное расписание (только activities и green_spaces)
type Schedule struct {
	Period     string `json:"period,omitempty"`
	OpenStatus string `json:"open_status,omitempty"`
	Monday     string `json:"monday,omitempty"`
	Tuesday    string `json:"tuesday,omitempty"`
	Wednesday  string `json:"wednesday,omitempty"`
	Thursday   string `json:"thursday,omitempty"`
	Friday     string `json:"friday,omitempty"`
	Saturday   string `json:"saturday,omitempty"`
	Sunday     string `json:"sunday,omitempty"`
}

// Spot - унифицированная запись о «прохладном месте»
type Spot struct {
	ID       string    `json:"id"`
	Category Category  `json:"category"`
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	Address  string    `json:"address,omitempty"`
	District string    `json:"district,omitempty"`
	Geo      Geo       `json:"geo"`
	Schedule *Schedule `json:"schedule,omitempty"`

	Is24hOpen            Flag `json:"is_24h_open"`
	IsHeatwaveOpening    Flag `json:"is_heatwave_opening"`
	IsNightSummerOpening Flag `json:"is_night_summer_opening"`
	IsPaid               Flag `json:"is_paid"`
	IsAvailable          Flag `json:"is_available"`

	CategoryLabel string `json:"category_label,omitempty"`
	Model         string `json:"model,omitempty"`
}

// FallbackSpotID строит детерминированный идентификатор из категории и координат
func FallbackSpotID(category Category, geo Geo) string {
	return fmt.Sprintf("%s-%s-%s",
		category.idPrefix(),
		strconv.FormatFloat(geo.Lat, 'f', -1, 64),
		strconv.FormatFloat(geo.Lon, 'f', -1, 64),
	)
}

// DistrictCodePrefix - почтовый префикс Парижа
const DistrictCodePrefix = "750"

// DistrictCode возвращает 5-символьный код округа: 750 + номер с ведущим нулём
func DistrictCode(number int) string {
	return fmt.Sprintf("%s%02d", DistrictCodePrefix, number)
}

// ParseDistrictCode разбирает код вида 750NN и возвращает номер округа
func ParseDistrictCode(code string) (int, bool) {
	if len(code) != 5 || !strings.HasPrefix(code, DistrictCodePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(code[3:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DistrictLabel возвращает название округа: "1er arrondissement", "15e arrondissement".
// Значения, не являющиеся кодом, возвращаются как есть.
func DistrictLabel(district string) string {
	n, ok := ParseDistrictCode(district)
	if !ok {
		return district
	}
	if n == 1 {
		return "1er arrondissement"
	}
	return fmt.Sprintf("%de arrondissement", n)
}
