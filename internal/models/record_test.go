package models_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/records-browser/internal/models"
)

const sampleRecord = `{
  "ocid": "ocds-dgv273-seacev3-1000",
  "releases": [{"url": "https://example.org/releases/1000"}],
  "compiledRelease": {
    "ocid": "ocds-dgv273-seacev3-1000-compiled",
    "date": "2024-03-05T10:00:00Z",
    "buyer": {"name": "Municipalidad de Lima"},
    "tender": {
      "title": "Adquisición de computadoras",
      "description": "Equipos para oficinas",
      "datePublished": "2024-03-01T09:00:00Z",
      "value": {"amount": "1234.5", "currency": "PEN"},
      "procuringEntity": {"name": "Municipalidad de Lima"},
      "items": [
        {
          "description": "Laptop 14 pulgadas",
          "classification": {"scheme": "UNSPSC", "id": " 43211503 ", "description": "Computadores portátiles"},
          "additionalClassifications": [
            {"scheme": "unpsc", "id": "43211500", "description": ""},
            {"scheme": "CPV", "id": "30213100"},
            {"scheme": "UNSPSC", "id": "43211503", "description": "Computadores portátiles"}
          ]
        },
        "not an item"
      ]
    },
    "parties": [
      {"name": "Municipalidad de Lima", "roles": ["buyer"], "address": {"department": "LIMA", "locality": "Miraflores"}},
      {"name": "Gobierno Regional Cusco", "roles": ["procuringEntity", "payer"], "address": {"region": "CUSCO"}},
      {"name": "Proveedor SAC", "roles": "supplier", "address": {"department": "LIMA"}},
      {"name": "Sin dirección", "roles": ["tenderer"], "address": 12}
    ]
  }
}`

func decodeSample(t *testing.T) models.Record {
	t.Helper()
	var rec models.Record
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &rec))
	return rec
}

func TestRecord_BuyerNames(t *testing.T) {
	rec := decodeSample(t)
	got := rec.CompiledRelease.BuyerNames()
	want := []string{"Municipalidad de Lima", "Gobierno Regional Cusco"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("buyer names mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_Departments(t *testing.T) {
	rec := decodeSample(t)
	got := rec.CompiledRelease.Departments()
	want := []string{"LIMA", "CUSCO"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("departments mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_ClassificationLabels(t *testing.T) {
	rec := decodeSample(t)
	got := rec.CompiledRelease.ClassificationLabels()
	want := []string{"43211503 – Computadores portátiles", "43211500"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestIsUNSPSC(t *testing.T) {
	cases := map[string]bool{
		"unspsc":   true,
		"UNSPSC":   true,
		"UnPsc":    true,
		"unspsc ":  false,
		"cpv":      false,
		"":         false,
		"unspsc-x": false,
	}
	for scheme, want := range cases {
		assert.Equal(t, want, models.IsUNSPSC(scheme), scheme)
	}
}

func TestRecord_IdentifierAndLink(t *testing.T) {
	rec := decodeSample(t)
	assert.Equal(t, "ocds-dgv273-seacev3-1000-compiled", rec.Identifier())
	assert.Equal(t, "https://example.org/releases/1000", rec.DetailURL())

	var bare models.Record
	require.NoError(t, json.Unmarshal([]byte(`{"ocid": "x-1", "compiledRelease": {"sources": [{"url": "https://src"}]}}`), &bare))
	assert.Equal(t, "x-1", bare.Identifier())
	assert.Equal(t, "https://src", bare.DetailURL())
}

func TestRecord_MalformedFieldsDegrade(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"compiledRelease": null}`,
		`{"compiledRelease": "oops"}`,
		`{"compiledRelease": {"tender": [], "parties": {"a": 1}, "buyer": 5}}`,
		`{"compiledRelease": {"tender": {"items": "none", "value": "abc"}}}`,
		`"string record"`,
	}
	for _, in := range inputs {
		var rec models.Record
		require.NoError(t, json.Unmarshal([]byte(in), &rec), in)
		assert.Empty(t, rec.CompiledRelease.BuyerNames(), in)
		assert.Empty(t, rec.CompiledRelease.Departments(), in)
		assert.Empty(t, rec.CompiledRelease.ClassificationLabels(), in)
		assert.False(t, rec.CompiledRelease.Tender.Value.Amount.Valid, in)
	}
}

func TestNumber_Unmarshal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		value float64
	}{
		{`1234.5`, true, 1234.5},
		{`"99.9"`, true, 99.9},
		{`" 10 "`, true, 10},
		{`"NaN"`, false, 0},
		{`"abc"`, false, 0},
		{`null`, false, 0},
		{`{}`, false, 0},
		{`true`, false, 0},
	}
	for _, tc := range cases {
		var n models.Number
		require.NoError(t, json.Unmarshal([]byte(tc.in), &n), tc.in)
		assert.Equal(t, tc.valid, n.Valid, tc.in)
		assert.Equal(t, tc.value, n.Value, tc.in)
	}
}

func TestAddress_Combined(t *testing.T) {
	a := models.Address{Department: "LIMA", Locality: "Miraflores"}
	assert.Equal(t, "LIMA Miraflores", a.Combined())
	assert.Equal(t, "LIMA", a.Area())
	assert.Equal(t, "", models.Address{}.Combined())
}
