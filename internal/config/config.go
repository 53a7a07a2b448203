package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Version is injected via -ldflags.
var Version = "dev"

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Life Calendar"
	AppID       = "com.github.tartampluch.go-life-calendar"
	BinaryName  = "go-life-calendar"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for log files.
	FilePermUserRW fs.FileMode = 0600

	// FilePermPublic represents -rw-r--r--. Generated documents are meant to be shared.
	FilePermPublic fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagFilename      = "filename"
	FlagTitle         = "title"
	FlagEnd           = "end"
	FlagVCard         = "vcard"
	FlagICS           = "ics"
	FlagLayout        = "layout"
	FlagLang          = "lang"
	FlagYears         = "years"
	FlagCalendarYears = "calendar-years"
	FlagHiBirthday    = "highlight-birthday"
	FlagHiNewYear     = "highlight-new-year"
	FlagHiToday       = "highlight-today"
	FlagLegend        = "legend"
	FlagFontRegular   = "font-regular"
	FlagFontBold      = "font-bold"
	FlagFontItalic    = "font-italic"
	FlagVersion       = "version"
	FlagDebug         = "debug"

	FlagDescFilename      = "output filename"
	FlagDescTitle         = "calendar title text"
	FlagDescEnd           = "end date; when set, one calendar is generated for each day between the start date and this date"
	FlagDescVCard         = "read the birth date (and default title) from a local vCard file"
	FlagDescICS           = "also write an iCalendar file with one birthday event per year of life"
	FlagDescLayout        = "HCL file overriding the page layout"
	FlagDescLang          = "language for month and legend labels"
	FlagDescYears         = "number of years of life covered by the calendar"
	FlagDescCalendarYears = "start every page on the 1st of January instead of the birthday"
	FlagDescHiBirthday    = "shade the cell containing each birthday"
	FlagDescHiNewYear     = "shade the cell containing each 1st of January"
	FlagDescHiToday       = "shade the cell containing today"
	FlagDescLegend        = "draw a key for the shaded cells"
	FlagDescFontRegular   = "TTF path for regular font"
	FlagDescFontBold      = "TTF path for bold font"
	FlagDescFontItalic    = "TTF path for italic font"
	FlagDescVersion       = "Show application version and exit"
	FlagDescDebug         = "Enable debug logging to stderr"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgUsage         = "Usage: %s [flags] date\n\nGenerate a personalized \"Life Calendar\".\nThe date is your birthday, in either dd/mm/yyyy or dd-mm-yyyy format.\n\nFlags:\n"
	MsgCreated       = "Created %s\n"
	MsgErrorLine     = "Error: %v\n"
)

// -----------------------------------------------------------------------------
// Calendar Defaults
// -----------------------------------------------------------------------------

const (
	DefaultDocName    = "life_calendar.pdf"
	DefaultTitle      = "LIFE CALENDAR"
	DefaultLanguage   = "en"
	DefaultLifeSpan   = 90
	MaxTitleSize      = 30
	DocExtension      = ".pdf"
	ICSExtension      = ".ics"
	RangeNameFormat   = "life_calendar_%s.pdf"
	CurrentWeekLength = 7 * 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Page Layout (reference constants, in layout units)
// -----------------------------------------------------------------------------

const (
	DocWidth     = 1872 // 26 inches
	DocHeight    = 2880 // 40 inches
	NumRows      = 20
	NumColumns   = 12
	YMargin      = 300
	BoxMargin    = 6
	BoxLineWidth = 3
	HeaderOffset = 36
	XOffset      = 50

	// Label placement relative to the grid.
	LabelNudge = 70

	// UnitsPerInch maps the layout units onto inches (72 dpi-equivalent).
	UnitsPerInch = 72.0
	UnitsPerMM   = UnitsPerInch / 25.4
)

// -----------------------------------------------------------------------------
// Typography
// -----------------------------------------------------------------------------

const (
	CoreFontFamily = "Helvetica"
	TTFFontFamily  = "LifeCalendar"
	BigFontSize    = 40
	SmallFontSize  = 28
	TinyFontSize   = 36

	// CapHeightRatio approximates the ink height of digits and capitals,
	// gofpdf exposes no glyph extents.
	CapHeightRatio = 0.7
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Calendar//Engine//EN"
	ICalCalName = "Life Calendar"
	ICalScale   = "GREGORIAN"
	ICalMethod  = "PUBLISH"
	ICalDomain  = "golifecalendar"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// Date layouts
	DateFormatDash      = "02-01-2006"
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDSalt         = "go-life-calendar-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	FallbackName       = "Unknown"
	FallbackSummary    = "Birthday: %s (%d)"
	FallbackSummaryDay = "Birth: %s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyMonthPrefix   = "month_abbr_" // followed by 1..12
	TKeyLegendBday    = "legend_birthday"
	TKeyLegendNewYear = "legend_new_year"
	TKeyLegendToday   = "legend_today"
)

// SupportedLanguages defines the list of bundled label languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr", "de"}

// -----------------------------------------------------------------------------
// Error Messages
// -----------------------------------------------------------------------------

const (
	ErrInvalidDateFormat = "incorrect date format: must be dd-mm-yyyy or dd/mm/yyyy"
	ErrTitleTooLong      = "title can't be longer than 30 characters"
	ErrInvalidRange      = "end date is before start date"
	ErrLayout            = "invalid page layout"
	ErrSurface           = "drawing surface failed"
	ErrInvalidSpan       = "life span must be a positive number of years"
	ErrNoBirthday        = "no contact with a full birth date found"
	ErrMissingDate       = "a start date is required"
	ErrTooManyArgs       = "too many arguments"
	ErrUnknownLanguage   = "unsupported language"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrVCardParse        = "failed to parse vCard stream"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrFontSetup         = "font setup failed"
	ErrMissingFonts      = "regular, bold, and italic fonts must all be provided"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application finished"
	MsgGenStarted     = "Document generation started"
	MsgGenSuccess     = "Document generation successful"
	MsgPageDrawn      = "Page drawn"
	MsgBatchStarted   = "Batch generation started"
	MsgBatchAborted   = "Batch generation aborted"
	MsgSkippedDate    = "Skipping contact without usable birth date"
	MsgLayoutLoaded   = "Layout file loaded"
	MsgGeometry       = "Page geometry computed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgSurfaceDiscard = "Discarding partial document"
	MsgICSWritten     = "iCalendar file written"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgProgressDesc   = "Generating calendars..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPage      = "page"
	LogKeyPages     = "pages"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeyDays      = "days"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyBoxSize   = "box_size"
	LogKeyXMargin   = "x_margin"
	LogKeyEvents    = "events"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompEngine  = "engine"
	CompLayout  = "layout"
	CompSurface = "pdfsurface"
	CompI18n    = "i18n"
)
