package services

import (
	"strings"

	"github.com/senyabanana/records-browser/internal/models"
)

// ApplyFilters возвращает записи, удовлетворяющие всем четырём фильтрам.
// Порядок записей сохраняется.
func ApplyFilters(records []models.Record, filters models.Filters) []models.Record {
	if filters.IsEmpty() {
		return append([]models.Record(nil), records...)
	}

	classificationQuery := strings.ToLower(filters.Classification)
	departmentQuery := strings.ToLower(filters.Department)
	buyerQuery := strings.ToLower(filters.Buyer)
	descriptionQuery := strings.ToLower(filters.Description)

	filtered := make([]models.Record, 0, len(records))
	for _, record := range records {
		release := record.CompiledRelease
		if matchesClassification(release, classificationQuery) &&
			matchesDepartment(release, departmentQuery) &&
			matchesBuyer(release, buyerQuery) &&
			matchesDescription(release, descriptionQuery) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func containsFold(text, query string) bool {
	return strings.Contains(strings.ToLower(text), query)
}

func anyContains(values []string, query string) bool {
	for _, v := range values {
		if containsFold(v, query) {
			return true
		}
	}
	return false
}

func matchesClassification(release models.CompiledRelease, query string) bool {
	if query == "" {
		return true
	}
	return anyContains(release.ClassificationLabels(), query)
}

func matchesDepartment(release models.CompiledRelease, query string) bool {
	if query == "" {
		return true
	}
	for _, party := range release.Parties {
		if containsFold(party.Address.Combined(), query) {
			return true
		}
	}
	return false
}

func matchesBuyer(release models.CompiledRelease, query string) bool {
	if query == "" {
		return true
	}
	return anyContains(release.BuyerNames(), query)
}

func matchesDescription(release models.CompiledRelease, query string) bool {
	if query == "" {
		return true
	}
	tender := release.Tender
	texts := []string{string(tender.Title), string(tender.Description)}
	for _, item := range tender.Items {
		texts = append(texts, string(item.Description))
	}
	return anyContains(texts, query)
}
