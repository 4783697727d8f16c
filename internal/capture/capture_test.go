package capture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStorageExport(t *testing.T) {
	export := `{
		"cvrflx_flightdeck_token": "tok-abc123",
		"some_other_key": "noise"
	}`

	tok, err := FromStorageExport(strings.NewReader(export))
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", tok)
}

func TestFromStorageExportQuotedValue(t *testing.T) {
	// Storage inspectors sometimes re-encode string values as JSON.
	export := `{"cvrflx_flightdeck_token": "\"tok-quoted\""}`

	tok, err := FromStorageExport(strings.NewReader(export))
	require.NoError(t, err)
	assert.Equal(t, "tok-quoted", tok)
}

func TestFromStorageExportMissingKey(t *testing.T) {
	_, err := FromStorageExport(strings.NewReader(`{"unrelated": "x"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFromStorageExportBadJSON(t *testing.T) {
	_, err := FromStorageExport(strings.NewReader(`not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

const sampleHAR = `{
  "log": {
    "entries": [
      {
        "request": {
          "url": "https://menhir-api.coverflex.com/api/employee/pockets",
          "headers": [
            {"name": "Authorization", "value": "Bearer tok-old"},
            {"name": "Accept", "value": "application/json"}
          ]
        }
      },
      {
        "request": {
          "url": "https://unrelated.example.com/track",
          "headers": [
            {"name": "authorization", "value": "Bearer tok-wrong-host"}
          ]
        }
      },
      {
        "request": {
          "url": "https://menhir-api.coverflex.com/api/employee/operations?pagination=no",
          "headers": [
            {"name": "authorization", "value": "Bearer tok-new"}
          ]
        }
      }
    ]
  }
}`

func TestFromHARLastTokenWins(t *testing.T) {
	tok, err := FromHAR(strings.NewReader(sampleHAR), "menhir-api.coverflex.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)
}

func TestFromHARIgnoresOtherHosts(t *testing.T) {
	_, err := FromHAR(strings.NewReader(sampleHAR), "api.somewhere-else.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFromHARNoBearer(t *testing.T) {
	har := `{"log": {"entries": [
		{"request": {"url": "https://menhir-api.coverflex.com/api/employee/pockets",
			"headers": [{"name": "Cookie", "value": "session=1"}]}}
	]}}`
	_, err := FromHAR(strings.NewReader(har), "menhir-api.coverflex.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
