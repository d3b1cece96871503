package services_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/services"
)

const fixtureRecords = `[
  {"ocid": "r1", "compiledRelease": {
    "tender": {"title": "Compra de LAPTOPS", "items": [
      {"description": "Laptop", "classification": {"scheme": "UNSPSC", "id": "43211503", "description": "Computadores portátiles"}}
    ]},
    "parties": [{"name": "Municipalidad de Lima", "roles": ["buyer"], "address": {"department": "LIMA", "locality": "Miraflores"}}]
  }},
  {"ocid": "r2", "compiledRelease": {
    "tender": {"title": "Obra vial", "description": "Asfaltado de pistas", "procuringEntity": {"name": "Gobierno Regional Cusco"}, "items": [
      {"description": "Asfalto", "classification": {"scheme": "CPV", "id": "43211503"}}
    ]},
    "parties": [{"name": "Gobierno Regional Cusco", "roles": ["payer"], "address": {"region": "Cusco", "locality": "Wanchaq"}}]
  }},
  {"ocid": "r3", "compiledRelease": {
    "buyer": {"name": "Hospital Loayza"},
    "tender": {"title": "Medicinas", "items": [
      {"description": "Paracetamol", "additionalClassifications": [{"scheme": "unpsc", "id": "51142100", "description": "Analgésicos"}]}
    ]},
    "parties": [{"name": "Hospital Loayza", "roles": ["buyer"], "address": {"department": "Lima"}}]
  }},
  {"ocid": "r4", "compiledRelease": null}
]`

func loadFixture(t *testing.T) []models.Record {
	t.Helper()
	var records []models.Record
	require.NoError(t, json.Unmarshal([]byte(fixtureRecords), &records))
	require.Len(t, records, 4)
	return records
}

func ocids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, string(r.OCID))
	}
	return out
}

func TestApplyFilters_EmptyFiltersKeepEverything(t *testing.T) {
	records := loadFixture(t)
	got := services.ApplyFilters(records, models.Filters{})
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ocids(got))
}

func TestApplyFilters_SingleFilter(t *testing.T) {
	records := loadFixture(t)

	cases := []struct {
		name    string
		filters models.Filters
		want    []string
	}{
		{"classification by id", models.Filters{Classification: "4321"}, []string{"r1"}},
		{"classification by description", models.Filters{Classification: "analgés"}, []string{"r3"}},
		{"department matches department", models.Filters{Department: "lima"}, []string{"r1", "r3"}},
		{"department matches locality", models.Filters{Department: "WANCHAQ"}, []string{"r2"}},
		{"department spans joined fields", models.Filters{Department: "lima mira"}, []string{"r1"}},
		{"buyer via role", models.Filters{Buyer: "municipalidad"}, []string{"r1"}},
		{"buyer via procuring entity", models.Filters{Buyer: "cusco"}, []string{"r2"}},
		{"buyer via direct buyer", models.Filters{Buyer: "LOAYZA"}, []string{"r3"}},
		{"description via title", models.Filters{Description: "laptops"}, []string{"r1"}},
		{"description via tender description", models.Filters{Description: "asfaltado"}, []string{"r2"}},
		{"description via item", models.Filters{Description: "paracetamol"}, []string{"r3"}},
		{"no match", models.Filters{Description: "satélite"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.ApplyFilters(records, tc.filters)
			assert.Equal(t, tc.want, ocids(got))
		})
	}
}

func TestApplyFilters_AllFiltersAreConjunctive(t *testing.T) {
	records := loadFixture(t)
	got := services.ApplyFilters(records, models.Filters{Department: "lima", Buyer: "hospital"})
	assert.Equal(t, []string{"r3"}, ocids(got))

	got = services.ApplyFilters(records, models.Filters{Department: "lima", Buyer: "cusco"})
	assert.Empty(t, got)
}

func TestApplyFilters_ResultIsSubsetContainingQuery(t *testing.T) {
	records := loadFixture(t)
	for _, q := range []string{"a", "LI", "cus", "43"} {
		got := services.ApplyFilters(records, models.Filters{Buyer: q})
		assert.LessOrEqual(t, len(got), len(records))
		for _, r := range got {
			found := false
			for _, name := range r.CompiledRelease.BuyerNames() {
				if strings.Contains(strings.ToLower(name), strings.ToLower(q)) {
					found = true
				}
			}
			assert.True(t, found, "record %s does not contain %q", r.OCID, q)
		}
	}
}
