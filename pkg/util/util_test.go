package util

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Inc":             "acme-inc",
		"  Ação   Rápida!  ":   "acao-rapida",
		"already-a-slug":       "already-a-slug",
		"Under_score & Co.":    "under-score-co",
		"!!!":                  "",
		"Crème Brûlée 2024":    "creme-brulee-2024",
		"multiple---dashes--x": "multiple-dashes-x",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestValidateCronExpr(t *testing.T) {
	assert.NoError(t, ValidateCronExpr("0 * * * *"))
	assert.NoError(t, ValidateCronExpr("@hourly"))
	assert.Error(t, ValidateCronExpr("every hour"))
	assert.Error(t, ValidateCronExpr("0 0 * * * *"))
}

func TestNextCronTime(t *testing.T) {
	from := time.Date(2026, 1, 2, 10, 15, 0, 0, time.UTC)
	next, err := NextCronTime("0 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC), next)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production").Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"service":"nextsaas"`)

	buf.Reset()
	newLogger(&buf, "development").Debug("dbg")
	assert.Contains(t, buf.String(), "msg=dbg")
}
