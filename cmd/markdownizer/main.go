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
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/fs"
	"github.com/fwojciec/markdownizer/goquery"
	"github.com/fwojciec/markdownizer/html"
	"github.com/fwojciec/markdownizer/htmltomarkdown"
	mdhttp "github.com/fwojciec/markdownizer/http"
	"github.com/fwojciec/markdownizer/pipeline"
	"github.com/fwojciec/markdownizer/readability"
	"github.com/fwojciec/markdownizer/rod"
	mdslog "github.com/fwojciec/markdownizer/slog"
	"github.com/fwojciec/markdownizer/sqlite"
	"github.com/fwojciec/markdownizer/trafilatura"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by commands that take an optional FILE argument.
	Stdin io.Reader

	// SQLite database holding the local identity mirror.
	DB *sqlite.DB

	// NewID generates user IDs. Defaults to uuid.NewString.
	NewID func() string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
		NewID: uuid.NewString,
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
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("markdownizer"),
		kong.Description("Convert web pages to Markdown without sending their text to the converter."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_home": defaultHome()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'markdownizer --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Skeletonizer = mdslog.NewLoggingSkeletonizer(html.NewSkeletonizer(), deps.Logger)

	if cmd == "convert" || cmd == "whoami" {
		if err := m.openIdentity(deps, cli.Home); err != nil {
			return err
		}
		defer m.Close()
	}

	if cmd == "convert" {
		fetcher, err := newFetcher(cli.Convert, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Pipeline = &pipeline.Pipeline{
			Fetcher:      mdslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor:    mdslog.NewLoggingExtractor(newExtractor(), deps.Logger),
			Skeletonizer: deps.Skeletonizer,
			Converter:    mdslog.NewLoggingConversionService(newConversionService(cli.Convert), deps.Logger),
		}

		if cli.Convert.Output != "" {
			deps.Writer = fs.NewWriter(cli.Convert.Output, fs.WithFrontMatter(cli.Convert.FrontMatter))
		}
	}

	if cmd == "serve" {
		local := htmltomarkdown.NewService(htmltomarkdown.NewConverter())
		deps.Service = mdslog.NewLoggingConversionService(local, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openIdentity opens the state database and wires the identity resolver.
func (m *Main) openIdentity(deps *Dependencies, home string) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return fmt.Errorf("failed to create home directory %q: %w", home, err)
	}

	path := filepath.Join(home, "state.db")
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set MARKDOWNIZER_HOME to use a different state directory\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}

	deps.Identity = &markdownizer.IdentityResolver{
		Sync:  fs.NewIdentityStore(filepath.Join(home, "identity.json")),
		Local: sqlite.NewIdentityStore(m.DB),
		NewID: m.NewID,
	}
	return nil
}

// newFetcher returns a headless Chrome fetcher when --browser is set and a
// plain HTTP fetcher otherwise.
func newFetcher(c ConvertCmd, stderr io.Writer) (markdownizer.Fetcher, error) {
	if c.Browser {
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithChromeBin(c.Chrome))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	}
	return mdhttp.NewFetcher(mdhttp.WithTimeout(c.Timeout)), nil
}

// newExtractor returns the extraction chain: semantic elements first, then
// the readability and trafilatura heuristics.
func newExtractor() markdownizer.Extractor {
	return markdownizer.ExtractorChain{
		goquery.NewExtractor(),
		readability.NewExtractor(),
		trafilatura.NewExtractor(),
	}
}

// newConversionService returns the remote server client when an API URL is
// configured and the in-process converter otherwise.
func newConversionService(c ConvertCmd) markdownizer.ConversionService {
	if c.APIURL != "" {
		var opts []mdhttp.ClientOption
		if c.Origin != "" {
			opts = append(opts, mdhttp.WithOrigin(c.Origin))
		}
		return mdhttp.NewClient(c.APIURL, opts...)
	}
	return htmltomarkdown.NewService(htmltomarkdown.NewConverter())
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".markdownizer"
	}
	return filepath.Join(home, ".markdownizer")
}
