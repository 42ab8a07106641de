package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkpreview"
	"github.com/fwojciec/linkpreview/bloom"
	"github.com/fwojciec/linkpreview/goquery"
	lphttp "github.com/fwojciec/linkpreview/http"
	"github.com/fwojciec/linkpreview/pipeline"
	"github.com/fwojciec/linkpreview/rod"
	lpslog "github.com/fwojciec/linkpreview/slog"
	"github.com/fwojciec/linkpreview/sqlite"
	"github.com/fwojciec/linkpreview/text"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB

	// Previews is the preview history service, set once the DB is open.
	Previews linkpreview.PreviewService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkpreview"),
		kong.Description("Extract Open Graph link previews from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"user_agent": lphttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkpreview --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	// Global flags may precede the subcommand, so take its name from kong.
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return nil
	}
	cmd := fields[0]

	needsDB := cmd == "history" || cmd == "delete" || (cmd == "fetch" && cli.Fetch.Save)
	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LINKPREVIEW_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Previews = sqlite.NewPreviewService(m.DB)
		deps.Previews = m.Previews
	}

	if cmd == "fetch" {
		f := cli.Fetch

		var fetcher linkpreview.Fetcher
		if f.Render {
			rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(f.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = lphttp.NewFetcher(
				lphttp.WithTimeout(f.Timeout),
				lphttp.WithUserAgent(f.UserAgent),
			)
		}
		fetcher = lpslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer fetcher.Close()

		previewer := pipeline.NewPreviewer(fetcher, text.NewDecoder(), goquery.NewParser())

		deps.Batch = &pipeline.BatchPreviewer{
			Previewer:   lpslog.NewLoggingPreviewer(previewer, deps.Logger),
			RateLimiter: pipeline.NewDomainLimiter(f.RPS),
			Seen:        bloom.NewFilter(uint(max(len(f.URLs), 16)), 0.001),
			Concurrency: f.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("LINKPREVIEW_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "linkpreview.db"
	}
	dir := filepath.Join(home, ".linkpreview")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "linkpreview.db")
}
