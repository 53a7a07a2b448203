package config_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-life-calendar/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"BinaryName", config.BinaryName},
		{"Version", config.Version},
		{"DefaultDocName", config.DefaultDocName},
		{"DefaultTitle", config.DefaultTitle},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values agree with each other.
func TestDefaults_Sanity(t *testing.T) {
	assert.LessOrEqual(t, len([]rune(config.DefaultTitle)), config.MaxTitleSize, "default title must be accepted")
	assert.True(t, strings.HasSuffix(config.DefaultDocName, config.DocExtension))
	assert.Equal(t, 90, config.DefaultLifeSpan)
	assert.Equal(t, 7*24*time.Hour, config.CurrentWeekLength)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}

// TestLayout_Reference pins the page constants the grid arithmetic relies on.
func TestLayout_Reference(t *testing.T) {
	assert.Equal(t, 26*config.UnitsPerInch, float64(config.DocWidth))
	assert.Equal(t, 40*config.UnitsPerInch, float64(config.DocHeight))
	assert.Equal(t, 20, config.NumRows)
	assert.Equal(t, 12, config.NumColumns)
	assert.InDelta(t, 72.0/25.4, config.UnitsPerMM, 1e-12)
}

func TestRangeNameFormat(t *testing.T) {
	name := fmt.Sprintf(config.RangeNameFormat, "01-01-2000")
	assert.Equal(t, "life_calendar_01-01-2000.pdf", name)
	assert.Equal(t, "02-01-2006", config.DateFormatDash)
}
