package synonyms

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cool-spots/internal/pkg/textutil"
)

//go:embed synonyms.yaml
var defaultTable []byte

// Table - таблица синонимов: ключ -> список эквивалентных терминов.
// Ключи и термины хранятся в нормализованном виде.
type Table struct {
	entries []entry
}

type entry struct {
	key   string
	terms []string
}

// Parse разбирает YAML-таблицу вида `ключ: [термин, ...]`
func Parse(data []byte) (*Table, error) {
	raw := make(map[string][]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{entries: make([]entry, 0, len(keys))}
	for _, k := range keys {
		nk := textutil.Normalize(strings.TrimSpace(k))
		if nk == "" {
			continue
		}
		terms := make([]string, 0, len(raw[k]))
		for _, term := range raw[k] {
			if nt := textutil.Normalize(strings.TrimSpace(term)); nt != "" {
				terms = append(terms, nt)
			}
		}
		t.entries = append(t.entries, entry{key: nk, terms: terms})
	}

	return t, nil
}

// Default возвращает встроенную таблицу синонимов
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded synonyms table is invalid: %v", err))
	}
	return t
}

// Load загружает таблицу из файла; пустой путь означает встроенную таблицу
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms file: %w", err)
	}

	return Parse(data)
}

// Expand возвращает нормализованное ключевое слово и термины всех записей,
// чей ключ содержится в нём как подстрока.
func (t *Table) Expand(keyword string) []string {
	nk := textutil.Normalize(keyword)
	result := []string{nk}
	if t == nil {
		return result
	}

	for _, e := range t.entries {
		if strings.Contains(nk, e.key) {
			result = append(result, e.terms...)
		}
	}

	return result
}

// Len возвращает количество ключей в таблице
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
