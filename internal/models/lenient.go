package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Text - строковое поле, которое никогда не ломает декодирование.
// Строки сохраняются как есть, числа и булевы значения переводятся в текст,
// всё остальное (объекты, массивы, null) даёт пустую строку.
type Text string

// UnmarshalJSON реализует json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case 't', 'f':
		*t = Text(data)
	case '{', '[', 'n':
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*t = Text(n.String())
		}
	}
	return nil
}

// String возвращает значение как string.
func (t Text) String() string { return string(t) }

// Number - числовое поле, допускающее числа и числовые строки.
// Valid равно false, если значение отсутствует или не является числом.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON реализует json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	case '{', '[', 'n', 't', 'f':
		return nil
	default:
		raw = string(data)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON реализует json.Marshaler: невалидное число кодируется как null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Int возвращает целую часть числа и признак того, что число известно.
// Значения за пределами int ограничиваются math.MaxInt и math.MinInt.
func (n Number) Int() (int, bool) {
	if !n.Valid {
		return 0, false
	}
	return clampInt(n.Value), true
}

// CeilInt округляет число вверх до целого, с тем же ограничением, что Int.
func (n Number) CeilInt() (int, bool) {
	if !n.Valid {
		return 0, false
	}
	return clampInt(math.Ceil(n.Value)), true
}

func clampInt(v float64) int {
	switch {
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}

// List - массив, который превращается в пустой список, если в JSON
// пришёл не массив. Элементы, которые не удалось разобрать, становятся
// нулевыми значениями.
type List[T any] []T

// UnmarshalJSON реализует json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(List[T], 0, len(raw))
	for _, elem := range raw {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			var zero T
			v = zero
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// decodeObject декодирует data в v только если data - JSON-объект.
// Для всего остального v остаётся нулевым.
func decodeObject(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	_ = json.Unmarshal(data, v)
	return nil
}
