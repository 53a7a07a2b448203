package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-life-calendar/internal/config"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := runMain(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "%s is not a PDF", path)
}

func TestRunMain_Version(t *testing.T) {
	res := runCLI(t, "--version")
	assert.Equal(t, config.ExitCodeSuccess, res.code)
	assert.Contains(t, res.stdout, config.AppName+" version "+config.Version)
}

func TestRunMain_SingleCalendar(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "mine.txt")

	res := runCLI(t, "06/07/1990", "-f", out, "-t", "MY LIFE", "--highlight-birthday", "--legend")

	require.Equal(t, config.ExitCodeSuccess, res.code, res.stderr)
	want := filepath.Join(dir, "mine.pdf")
	assert.Equal(t, "Created "+want+"\n", res.stdout)
	assert.Empty(t, res.stderr)
	assertPDF(t, want)
}

func TestRunMain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid date", []string{"31/02/2020"}, config.ErrInvalidDateFormat},
		{"mixed separators", []string{"06/07-1990"}, config.ErrInvalidDateFormat},
		{"title too long", []string{"06/07/1990", "-t", strings.Repeat("X", 31)}, config.ErrTitleTooLong},
		{"missing date", nil, config.ErrMissingDate},
		{"bad end date", []string{"01-01-2000", "-e", "2000-01-03"}, config.ErrInvalidDateFormat},
		{"reversed range", []string{"03-01-2000", "-e", "01-01-2000"}, config.ErrInvalidRange},
		{"unknown language", []string{"01-01-2000", "--lang", "ja"}, config.ErrUnknownLanguage},
		{"partial fonts", []string{"01-01-2000", "--font-regular", "a.ttf"}, config.ErrMissingFonts},
		{"negative span", []string{"01-01-2000", "--years", "-3"}, config.ErrInvalidSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"-f", filepath.Join(dir, "out.pdf")}, tt.args...)

			res := runCLI(t, args...)

			assert.Equal(t, config.ExitCodeError, res.code)
			assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
			assert.Contains(t, res.stderr, tt.wantErr)
			assert.Equal(t, 1, strings.Count(res.stderr, "\n"), "exactly one line is printed")
			assert.Empty(t, res.stdout)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no output on failure")
		})
	}
}

func TestRunMain_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"too many arguments", []string{"01-01-2000", "02-01-2000"}, config.ErrTooManyArgs},
		{"unknown flag", []string{"--no-such-flag"}, "no-such-flag"},
		{"missing flag value", []string{"01-01-2000", "--years"}, "years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)

			assert.Equal(t, config.ExitCodeUsage, res.code)
			assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
			assert.Contains(t, res.stderr, tt.wantErr)
			assert.Equal(t, 1, strings.Count(res.stderr, "\n"), "exactly one line is printed")
			assert.NotContains(t, res.stderr, "--"+config.FlagFilename, "usage is not dumped on errors")
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRunMain_Help(t *testing.T) {
	res := runCLI(t, "--help")
	assert.Equal(t, config.ExitCodeSuccess, res.code)
	assert.Contains(t, res.stderr, "--"+config.FlagFilename)
	assert.NotContains(t, res.stderr, "Error: ")
}

func TestRunMain_Range(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, "01-01-2000", "-e", "03-01-2000", "-f", filepath.Join(dir, "ignored.pdf"))

	require.Equal(t, config.ExitCodeSuccess, res.code, res.stderr)
	names := []string{
		"life_calendar_01-01-2000.pdf",
		"life_calendar_02-01-2000.pdf",
		"life_calendar_03-01-2000.pdf",
	}
	var want strings.Builder
	for _, n := range names {
		want.WriteString("Created " + filepath.Join(dir, n) + "\n")
		assertPDF(t, filepath.Join(dir, n))
	}
	assert.Equal(t, want.String(), res.stdout)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRunMain_RangeFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the second day's file makes that write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "life_calendar_02-01-2000.pdf"), 0o755))

	res := runCLI(t, "01-01-2000", "-e", "03-01-2000", "-f", filepath.Join(dir, "ignored.pdf"))

	assert.Equal(t, config.ExitCodeError, res.code)
	assert.Empty(t, res.stdout, "nothing is reported as created when the batch fails")
	assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
	assert.Equal(t, 1, strings.Count(res.stderr, "\n"), "exactly one line is printed")
	assert.NoFileExists(t, filepath.Join(dir, "life_calendar_03-01-2000.pdf"))
}

func TestRunMain_VCardWithoutBirthday(t *testing.T) {
	dir := t.TempDir()
	vcf := filepath.Join(dir, "ada.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte("BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ada\r\nEND:VCARD\r\n"), 0o600))
	out := filepath.Join(dir, "ada.pdf")

	res := runCLI(t, "06-07-1990", "--vcard", vcf, "-f", out)

	require.Equal(t, config.ExitCodeSuccess, res.code, res.stderr)
	assert.Equal(t, "Created "+out+"\n", res.stdout)
	assertPDF(t, out)

	// Without a positional date the card alone cannot supply a birth date.
	res = runCLI(t, "--vcard", vcf, "-f", filepath.Join(dir, "none.pdf"))
	assert.Equal(t, config.ExitCodeError, res.code)
	assert.Contains(t, res.stderr, config.ErrNoBirthday)
	assert.NoFileExists(t, filepath.Join(dir, "none.pdf"))
}

func TestRunMain_VCardAndICS(t *testing.T) {
	dir := t.TempDir()
	vcf := filepath.Join(dir, "ada.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte("BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ada Lovelace\r\nBDAY:1815-12-10\r\nEND:VCARD\r\n"), 0o600))

	res := runCLI(t,
		"--vcard", vcf,
		"--ics", filepath.Join(dir, "birthdays"),
		"-f", filepath.Join(dir, "ada.pdf"),
		"--years", "40",
		"--lang", "fr",
	)

	require.Equal(t, config.ExitCodeSuccess, res.code, res.stderr)
	assertPDF(t, filepath.Join(dir, "ada.pdf"))

	ics, err := os.ReadFile(filepath.Join(dir, "birthdays.ics"))
	require.NoError(t, err)
	assert.Equal(t, 40, strings.Count(string(ics), "BEGIN:VEVENT"))
	assert.Contains(t, string(ics), "Ada Lovelace")
	assert.Contains(t, res.stdout, "birthdays.ics")
}

func TestRunMain_LayoutFile(t *testing.T) {
	dir := t.TempDir()
	hcl := filepath.Join(dir, "a4.hcl")
	require.NoError(t, os.WriteFile(hcl, []byte("page {\n  width = 210 * mm\n  height = 297 * mm\n}\ngrid {\n  y_margin = 60\n  box_margin = 2\n  header_offset = 10\n  x_offset = 10\n}\n"), 0o600))

	res := runCLI(t, "06-07-1990", "--layout", hcl, "-f", filepath.Join(dir, "a4.pdf"))
	require.Equal(t, config.ExitCodeSuccess, res.code, res.stderr)
	assertPDF(t, filepath.Join(dir, "a4.pdf"))

	require.NoError(t, os.WriteFile(hcl, []byte("page { width = \n"), 0o600))
	res = runCLI(t, "06-07-1990", "--layout", hcl, "-f", filepath.Join(dir, "bad.pdf"))
	assert.Equal(t, config.ExitCodeError, res.code)
	assert.Contains(t, res.stderr, config.ErrLayout)
}

func TestWithExtension(t *testing.T) {
	tests := map[string]string{
		"life_calendar.pdf": "life_calendar.pdf",
		"out":               "out.pdf",
		"out.txt":           "out.pdf",
		"dir/out.tar.gz":    "dir/out.tar.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, withExtension(in, ".pdf"), in)
	}
}
