package render

import (
	"strings"

	"github.com/senyabanana/records-browser/internal/models"
)

// Row - строка таблицы результатов.
type Row struct {
	Title       string   `json:"title"`
	URL         string   `json:"url,omitempty"`
	Identifier  string   `json:"ocid,omitempty"`
	Buyers      string   `json:"buyers"`
	Departments string   `json:"departments"`
	Codes       []string `json:"codes"`
	Amount      string   `json:"amount"`
	Published   string   `json:"published"`
	Updated     string   `json:"updated"`
}

// CodesText возвращает коды через запятую или заглушку.
func (r Row) CodesText() string {
	if len(r.Codes) == 0 {
		return NoClassification
	}
	return strings.Join(r.Codes, ", ")
}

// BuildRow строит строку таблицы из записи.
func BuildRow(record models.Record) Row {
	release := record.CompiledRelease
	tender := release.Tender

	title := string(tender.Title)
	if title == "" {
		title = NoTitle
	}

	buyers := strings.Join(release.BuyerNames(), ", ")
	if buyers == "" {
		buyers = NoBuyer
	}

	departments := strings.Join(release.Departments(), ", ")
	if departments == "" {
		departments = NoDepartment
	}

	currencyCode := string(tender.Value.Currency)
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}

	published := string(tender.DatePublished)
	if published == "" {
		published = string(release.Date)
	}

	return Row{
		Title:       title,
		URL:         record.DetailURL(),
		Identifier:  record.Identifier(),
		Buyers:      buyers,
		Departments: departments,
		Codes:       release.ClassificationLabels(),
		Amount:      FormatCurrency(tender.Value.Amount, currencyCode),
		Published:   FormatDate(published),
		Updated:     FormatDate(string(release.Date)),
	}
}

// BuildRows строит строки таблицы для отфильтрованных записей.
func BuildRows(records []models.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, BuildRow(record))
	}
	return rows
}
