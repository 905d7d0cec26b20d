package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Flag - трёхзначный признак: неизвестно / да / нет.
// Upstream присылает "Oui"/"OUI"/"Non", булевы значения или ничего;
// значение разбирается один раз при декодировании записи.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagTrue
	FlagFalse
)

// ParseFlag преобразует строковое значение источника в Flag
func ParseFlag(s string) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oui", "true", "1", "yes":
		return FlagTrue
	case "non", "false", "0", "no":
		return FlagFalse
	}
	return FlagUnknown
}

// FlagOf преобразует bool в Flag
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// IsTrue возвращает true только для FlagTrue
func (f Flag) IsTrue() bool {
	return f == FlagTrue
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	}
	return "unknown"
}

// MarshalJSON кодирует флаг как true / false / null
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagTrue:
		return []byte("true"), nil
	case FlagFalse:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON принимает строку, bool или null
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = FlagUnknown
	case bytes.Equal(data, []byte("true")):
		*f = FlagTrue
	case bytes.Equal(data, []byte("false")):
		*f = FlagFalse
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			// числа и прочие значения трактуются как неизвестные
			*f = FlagUnknown
			return nil
		}
		*f = ParseFlag(s)
	}
	return nil
}
