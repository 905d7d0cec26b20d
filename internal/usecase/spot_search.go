package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/pkg/synonyms"
	"github.com/cool-spots/internal/pkg/textutil"
)

var (
	// Правила извлечения номера округа, в порядке приоритета
	postalCodeRe     = regexp.MustCompile(`750(\d{2})`)
	ordinalRe        = regexp.MustCompile(`(\d{1,2})(e|eme|ème|er)`)
	arrondissementRe = regexp.MustCompile(`(\d{1,2})\s*arrondissement`)

	// Ключевые слова, относящиеся к округу
	districtKeywordRes = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}$`),
		regexp.MustCompile(`^\d{1,2}e$`),
		regexp.MustCompile(`^\d{1,2}eme$`),
		regexp.MustCompile(`^750\d{2}$`),
	}
)

// SpotSearcher - полнотекстовый поиск по спотам с учётом округов и синонимов.
// Без состояния, кроме неизменяемой таблицы синонимов.
type SpotSearcher struct {
	synonyms *synonyms.Table
}

// NewSpotSearcher - создание нового SpotSearcher
func NewSpotSearcher(table *synonyms.Table) *SpotSearcher {
	if table == nil {
		table = synonyms.Default()
	}
	return &SpotSearcher{synonyms: table}
}

// Search возвращает споты, подходящие под запрос. Пустой запрос возвращает вход без изменений.
func (s *SpotSearcher) Search(spots []domain.Spot, query string) []domain.Spot {
	original := strings.TrimSpace(query)
	if original == "" {
		return spots
	}

	normalizedQuery := textutil.Normalize(original)
	keywords := strings.Fields(normalizedQuery)

	// 1. Номер округа из исходного запроса
	district, hasDistrict := ExtractDistrictNumber(original)

	// 2. Убираем из ключевых слов термины округа
	contentKeywords := keywords
	if hasDistrict {
		contentKeywords = removeDistrictKeywords(keywords)
	}

	// варианты ключевых слов не зависят от спота
	variations := make([][]string, len(contentKeywords))
	for i, kw := range contentKeywords {
		variations[i] = s.synonyms.Expand(kw)
	}

	result := make([]domain.Spot, 0)
	for _, spot := range spots {
		text := SearchableText(spot)

		// 3. Точное совпадение всей фразы
		if strings.Contains(text, normalizedQuery) {
			result = append(result, spot)
			continue
		}

		// 4. Фильтр по округу
		if hasDistrict && !IsSpotInDistrict(spot, district) {
			continue
		}

		// 5. Все ключевые слова (или их синонимы) должны встречаться в тексте
		if len(contentKeywords) > 0 {
			if allKeywordsFound(text, variations) {
				result = append(result, spot)
			}
			continue
		}

		// 6. Запрос состоит только из округа
		if hasDistrict {
			result = append(result, spot)
		}
	}

	return result
}

func allKeywordsFound(text string, variations [][]string) bool {
	for _, vs := range variations {
		found := false
		for _, v := range vs {
			if v != "" && strings.Contains(text, v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ExtractDistrictNumber извлекает номер округа из запроса: почтовый код 750NN,
// порядковая форма (15e, 15eme, 15ème, 1er) или "N arrondissement".
func ExtractDistrictNumber(query string) (string, bool) {
	if m := postalCodeRe.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return strconv.Itoa(n), true
		}
	}

	if m := ordinalRe.FindStringSubmatch(query); m != nil {
		return m[1], true
	}

	if m := arrondissementRe.FindStringSubmatch(query); m != nil {
		return m[1], true
	}

	return "", false
}

func removeDistrictKeywords(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !isDistrictKeyword(kw) {
			result = append(result, kw)
		}
	}
	return result
}

func isDistrictKeyword(kw string) bool {
	if strings.Contains(kw, "arrondissement") {
		return true
	}
	for _, re := range districtKeywordRes {
		if re.MatchString(kw) {
			return true
		}
	}
	return false
}

// IsSpotInDistrict проверяет округ спота в формах 750NN, "Ne arrondissement"
// и "Neme arrondissement". Округ нормализован, так что "Nème" совпадает с "Neme".
func IsSpotInDistrict(spot domain.Spot, number string) bool {
	district := textutil.Normalize(spot.District)
	if district == "" {
		return false
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return false
	}

	forms := []string{
		domain.DistrictCode(n),
		fmt.Sprintf("%se arrondissement", number),
		fmt.Sprintf("%seme arrondissement", number),
	}
	for _, f := range forms {
		if containsDistrictForm(district, f) {
			return true
		}
	}
	return false
}

// containsDistrictForm ищет form в тексте так, чтобы перед ней не стояла цифра:
// "15e arrondissement" не должен совпадать с "5e arrondissement"
func containsDistrictForm(text, form string) bool {
	for offset := 0; ; {
		i := strings.Index(text[offset:], form)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 || !isDigit(text[i-1]) {
			return true
		}
		offset = i + 1
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// SearchableText собирает нормализованный текст спота для поиска
func SearchableText(spot domain.Spot) string {
	fields := []string{
		spot.Category.SearchTerms(),
		spot.Name,
		spot.Type,
		spot.Address,
		spot.District,
		spot.CategoryLabel,
		spot.Model,
	}
	return textutil.Normalize(strings.Join(fields, " "))
}
