package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/utils"
)

func TestParsePageParams(t *testing.T) {
	page, size, err := utils.ParsePageParams("", "", 50)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, size)

	page, size, err = utils.ParsePageParams("3", "25", 50)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	for _, tc := range [][2]string{{"0", ""}, {"-1", ""}, {"x", ""}, {"", "0"}, {"", "abc"}, {"", "501"}} {
		_, _, err := utils.ParsePageParams(tc[0], tc[1], 50)
		assert.Error(t, err, "%v", tc)
	}
}

func TestParsePageSize(t *testing.T) {
	assert.Equal(t, 25, utils.ParsePageSize("25"))
	assert.Equal(t, 0, utils.ParsePageSize(""))
	assert.Equal(t, 0, utils.ParsePageSize("-4"))
	assert.Equal(t, 0, utils.ParsePageSize("ten"))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 4, utils.ParsePage("4"))
	assert.Equal(t, 1, utils.ParsePage(""))
	assert.Equal(t, 1, utils.ParsePage("0"))
	assert.Equal(t, 1, utils.ParsePage("dos"))
}

func TestParseFilters(t *testing.T) {
	q := url.Values{"unspsc": {" 4321 "}, "buyer": {"Lima"}, "ignored": {"x"}}
	assert.Equal(t, models.Filters{Classification: "4321", Buyer: "Lima"}, utils.ParseFilters(q))
}

func TestSendErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.SendErrorResponse(rec, nil, http.StatusBadRequest, "invalid page parameter")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"reason": "invalid page parameter"}, body)
}
