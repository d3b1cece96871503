package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPageSize - размер страницы по умолчанию.
const DefaultPageSize = 50

// Filters - четыре независимых фильтра по подстроке без учёта регистра.
// Пустая строка означает отсутствие ограничения.
type Filters struct {
	Classification string `json:"unspsc"`
	Department     string `json:"department"`
	Buyer          string `json:"buyer"`
	Description    string `json:"description"`
}

// Normalize обрезает пробелы по краям всех фильтров.
func (f Filters) Normalize() Filters {
	return Filters{
		Classification: strings.TrimSpace(f.Classification),
		Department:     strings.TrimSpace(f.Department),
		Buyer:          strings.TrimSpace(f.Buyer),
		Description:    strings.TrimSpace(f.Description),
	}
}

// IsEmpty сообщает, что ни один фильтр не задан.
func (f Filters) IsEmpty() bool {
	return f.Classification == "" && f.Department == "" && f.Buyer == "" && f.Description == ""
}

// Pagination - метаданные пагинации, которые может вернуть API.
type Pagination struct {
	Total      Number `json:"total"`
	Pages      Number `json:"pages"`
	TotalPages Number `json:"total_pages"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	type plain Pagination
	*p = Pagination{}
	return decodeObject(data, (*plain)(p))
}

// PageCount возвращает pages или total_pages.
func (p Pagination) PageCount() Number {
	if p.Pages.Valid {
		return p.Pages
	}
	return p.TotalPages
}

// RecordsPage - разобранный ответ API на запрос одной страницы.
type RecordsPage struct {
	Records      []Record
	TotalRecords *int
	TotalPages   *int
	Raw          []byte
}

type recordsEnvelope struct {
	Records    List[Record]     `json:"records"`
	Pagination *json.RawMessage `json:"pagination"`
	Meta       *json.RawMessage `json:"meta"`
	Total      Number           `json:"total"`
}

// ParseRecordsPage разбирает тело ответа API. Ошибка возвращается только
// для невалидного JSON или ответа null; отсутствующие и испорченные поля
// дают пустые значения.
func ParseRecordsPage(body []byte) (*RecordsPage, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("malformed records response")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("empty records response")
	}

	page := &RecordsPage{Records: []Record{}, Raw: body}
	if trimmed[0] != '{' {
		return page, nil
	}

	var env recordsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to decode records response: %w", err)
	}
	if env.Records != nil {
		page.Records = env.Records
	}

	var meta Pagination
	switch {
	case isPresentObject(env.Pagination):
		_ = json.Unmarshal(*env.Pagination, &meta)
	case isPresentObject(env.Meta):
		_ = json.Unmarshal(*env.Meta, &meta)
	}

	total := meta.Total
	if !total.Valid {
		total = env.Total
	}
	if n, ok := total.Int(); ok {
		page.TotalRecords = &n
	}
	if n, ok := meta.PageCount().CeilInt(); ok {
		page.TotalPages = &n
	}
	return page, nil
}

// isPresentObject повторяет логику "pagination || meta": берётся первое
// непустое значение, а не-объект считается пустыми метаданными.
func isPresentObject(raw *json.RawMessage) bool {
	if raw == nil {
		return false
	}
	v := bytes.TrimSpace(*raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", "0", `""`:
		return false
	}
	return true
}

// Summary - сводка по загруженной странице.
type Summary struct {
	FetchedCount  int  `json:"fetchedCount"`
	FilteredCount int  `json:"filteredCount"`
	TotalRecords  *int `json:"totalRecords,omitempty"`
	TotalPages    *int `json:"totalPages,omitempty"`
}

// Text возвращает строку сводки для пользователя.
func (s Summary) Text() string {
	text := fmt.Sprintf("Mostrando %d de %d registros recibidos.", s.FilteredCount, s.FetchedCount)
	if s.TotalRecords != nil {
		text += fmt.Sprintf(" Total reportado por la API: %d.", *s.TotalRecords)
	}
	return text
}

// PageInfo возвращает подпись вида "Página 2 de 10".
func (s Summary) PageInfo(page int) string {
	info := fmt.Sprintf("Página %d", page)
	if s.TotalPages != nil && *s.TotalPages > 0 {
		info += fmt.Sprintf(" de %d", *s.TotalPages)
	}
	return info
}

// RecordsResult - результат загрузки страницы после фильтрации.
type RecordsResult struct {
	Page         int      `json:"page"`
	PageSize     int      `json:"pageSize"`
	Records      []Record `json:"-"`
	Summary      Summary  `json:"summary"`
	PrevDisabled bool     `json:"prevDisabled"`
	NextDisabled bool     `json:"nextDisabled"`
}

// NavigationState вычисляет доступность кнопок "назад" и "вперёд".
// Без метаданных пагинации короткая страница считается последней.
func NavigationState(page, pageSize, fetched int, totalPages *int) (prevDisabled, nextDisabled bool) {
	prevDisabled = page <= 1
	if totalPages != nil {
		nextDisabled = page >= *totalPages
	} else {
		nextDisabled = fetched < pageSize
	}
	return prevDisabled, nextDisabled
}
