package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/tartampluch/go-life-calendar/internal/calendar"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/engine"
	"github.com/tartampluch/go-life-calendar/internal/layout"
	"github.com/tartampluch/go-life-calendar/internal/locale"
	"github.com/tartampluch/go-life-calendar/internal/pdfsurface"
	"github.com/tartampluch/go-life-calendar/internal/render"
	"golang.org/x/term"
)

var (
	errMissingDate = errors.New(config.ErrMissingDate)
	errTooManyArgs = errors.New(config.ErrTooManyArgs)
)

// options holds the parsed command line.
type options struct {
	date          string
	filename      string
	title         string
	titleSet      bool
	end           string
	vcard         string
	ics           string
	layoutFile    string
	lang          string
	years         int
	calendarYears bool
	highlight     render.Highlight
	legend        bool
	fonts         pdfsurface.Fonts
	debug         bool
	version       bool
}

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses args, runs the generator and maps the outcome to an exit
// code. Failures are reported as a single "Error: ..." line on stderr.
func runMain(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		return config.ExitCodeUsage
	}

	if opts.version {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(opts.debug, stderr)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts, stdout, stderr); err != nil {
		slog.Error(err.Error(), config.LogKeyComponent, config.CompMain)
		fmt.Fprintf(stderr, config.MsgErrorLine, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet(config.BinaryName, pflag.ContinueOnError)

	flags.StringVarP(&opts.filename, config.FlagFilename, "f", config.DefaultDocName, config.FlagDescFilename)
	flags.StringVarP(&opts.title, config.FlagTitle, "t", config.DefaultTitle, config.FlagDescTitle)
	flags.StringVarP(&opts.end, config.FlagEnd, "e", "", config.FlagDescEnd)
	flags.StringVar(&opts.vcard, config.FlagVCard, "", config.FlagDescVCard)
	flags.StringVar(&opts.ics, config.FlagICS, "", config.FlagDescICS)
	flags.StringVar(&opts.layoutFile, config.FlagLayout, "", config.FlagDescLayout)
	flags.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flags.IntVar(&opts.years, config.FlagYears, config.DefaultLifeSpan, config.FlagDescYears)
	flags.BoolVar(&opts.calendarYears, config.FlagCalendarYears, false, config.FlagDescCalendarYears)
	flags.BoolVar(&opts.highlight.Birthday, config.FlagHiBirthday, false, config.FlagDescHiBirthday)
	flags.BoolVar(&opts.highlight.NewYear, config.FlagHiNewYear, false, config.FlagDescHiNewYear)
	flags.BoolVar(&opts.highlight.Today, config.FlagHiToday, false, config.FlagDescHiToday)
	flags.BoolVar(&opts.legend, config.FlagLegend, false, config.FlagDescLegend)
	flags.StringVar(&opts.fonts.Regular, config.FlagFontRegular, "", config.FlagDescFontRegular)
	flags.StringVar(&opts.fonts.Bold, config.FlagFontBold, "", config.FlagDescFontBold)
	flags.StringVar(&opts.fonts.Italic, config.FlagFontItalic, "", config.FlagDescFontItalic)
	flags.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)

	flags.SetInterspersed(true)
	// pflag may report parse errors itself; usage is printed only for --help
	// and every other failure is a single error line.
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(stderr, config.MsgUsage, config.BinaryName)
			fmt.Fprint(stderr, flags.FlagUsages())
		} else {
			fmt.Fprintf(stderr, config.MsgErrorLine, err)
		}
		return nil, err
	}
	opts.titleSet = flags.Changed(config.FlagTitle)

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.date = rest[0]
	default:
		fmt.Fprintf(stderr, config.MsgErrorLine, fmt.Errorf("%w: %s", errTooManyArgs, strings.Join(rest[1:], " ")))
		return nil, errTooManyArgs
	}
	return opts, nil
}

// run wires the layout, labels, renderer and PDF backend, then produces
// either one document or one per day of the requested range.
func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	subject, err := resolveSubject(ctx, opts)
	if err != nil {
		return err
	}

	title := opts.title
	if opts.vcard != "" && !opts.titleSet {
		if name := strings.ToUpper(subject.Name); name != "" && utf8.RuneCountInString(name) <= config.MaxTitleSize {
			title = name
		}
	}
	if err := render.ValidateTitle(title); err != nil {
		return err
	}

	var end calendar.Date
	if opts.end != "" {
		if end, err = calendar.Parse(opts.end); err != nil {
			return err
		}
	}

	gen, err := newGenerator(opts)
	if err != nil {
		return err
	}

	if opts.end != "" {
		if isTerminal(stderr) {
			gen.Progress = stderr
		}
		paths, err := gen.GenerateRange(ctx, engine.RangeRequest{
			Dir:           filepath.Dir(opts.filename),
			Title:         title,
			Start:         subject.Birth,
			End:           end,
			Span:          opts.years,
			CalendarYears: opts.calendarYears,
		})
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(stdout, config.MsgCreated, p)
		}
	} else {
		path, err := gen.Generate(ctx, engine.Request{
			Path:          withExtension(opts.filename, config.DocExtension),
			Title:         title,
			Birth:         subject.Birth,
			Span:          opts.years,
			CalendarYears: opts.calendarYears,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCreated, path)
	}

	if opts.ics != "" {
		path, err := writeICS(opts.ics, subject, opts.years, gen.Clock)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, config.MsgCreated, path)
	}
	return nil
}

// resolveSubject reads the birth date from the positional argument, the
// vCard file, or both. The positional date wins when both are given.
func resolveSubject(ctx context.Context, opts *options) (engine.Subject, error) {
	var subject engine.Subject
	if opts.vcard != "" {
		f, err := os.Open(opts.vcard)
		if err != nil {
			return engine.Subject{}, err
		}
		defer func() { _ = f.Close() }()

		subject, err = engine.ReadSubject(ctx, f)
		switch {
		case errors.Is(err, engine.ErrNoBirthday) && opts.date != "":
			// The positional date supplies the birth; keep the card's name.
		case err != nil:
			return engine.Subject{}, err
		}
	}

	if opts.date == "" {
		if opts.vcard == "" {
			return engine.Subject{}, errMissingDate
		}
		return subject, nil
	}

	birth, err := calendar.Parse(opts.date)
	if err != nil {
		return engine.Subject{}, err
	}
	return engine.NewSubject(subject.Name, birth), nil
}

func newGenerator(opts *options) (*engine.Generator, error) {
	l := layout.Default()
	if opts.layoutFile != "" {
		var err error
		if l, err = layout.LoadFile(opts.layoutFile, l); err != nil {
			return nil, err
		}
	}
	geo, err := layout.New(l)
	if err != nil {
		return nil, err
	}
	slog.Debug(config.MsgGeometry,
		config.LogKeyComponent, config.CompLayout,
		config.LogKeyBoxSize, geo.BoxSize,
		config.LogKeyXMargin, geo.XMargin,
	)

	labels, err := locale.New(opts.lang)
	if err != nil {
		return nil, err
	}

	factory := pdfsurface.Factory{Fonts: opts.fonts}
	if err := factory.Validate(); err != nil {
		return nil, err
	}

	renderer := render.New(geo, labels)
	renderer.Highlight = opts.highlight
	renderer.Style.Legend = opts.legend

	return engine.NewGenerator(factory, renderer), nil
}

func writeICS(path string, subject engine.Subject, span int, clock engine.Clock) (string, error) {
	data, err := engine.BirthdayCalendar(subject, span, clock.Now())
	if err != nil {
		return "", err
	}
	path = withExtension(path, config.ICSExtension)
	if err := os.WriteFile(path, data, config.FilePermPublic); err != nil {
		return "", err
	}
	slog.Info(config.MsgICSWritten,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, path,
	)
	return path, nil
}

// withExtension replaces any extension of name with ext.
func withExtension(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging sends JSON logs to a file in the user cache directory. Debug
// mode lowers the level and mirrors the logs on stderr.
func setupLogging(debugMode bool, stderr io.Writer) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC keeps only the last run.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else if debugMode {
			fmt.Fprintf(stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
