package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/htmltomarkdown"
	askwebslog "github.com/fwojciec/askweb/slog"
	"github.com/fwojciec/askweb/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

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

	// Config files read before flags are resolved. Missing files are skipped.
	ConfigPaths []string

	// Input for the interactive chat command.
	Stdin io.Reader

	// SQLite database used by the history service.
	DB *sqlite.DB

	// Services for end-to-end testing.
	History askweb.HistoryService

	// Capabilities built from flags. Tests may set these to skip
	// constructing real network clients.
	Capabilities *Capabilities
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		ConfigPaths: []string{defaultConfigPath},
		Stdin:       os.Stdin,
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
		kong.Name("askweb"),
		kong.Description("Answer questions from live web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAMLConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'askweb --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.Options.Validate(); err != nil {
		return err
	}
	command := kongCtx.Selected().Name

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// History is kept for ask and chat unless disabled, and is required
	// for the history command itself.
	if command == "history" || ((command == "ask" || command == "chat") && !cli.NoHistory) {
		path := m.DBPath
		if cli.DB != "" {
			path = cli.DB
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ASKWEB_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		m.History = sqlite.NewHistoryService(m.DB)
		deps.History = m.History
	}

	if command == "history" {
		return kongCtx.Run(deps)
	}

	caps := m.Capabilities
	if caps == nil {
		caps = &Capabilities{}
	}

	if caps.Fetcher == nil {
		fetcher, err := buildFetcher(&cli.Options)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		caps.Fetcher = fetcher
	}
	if caps.Extractor == nil {
		caps.Extractor = buildExtractor(&cli.Options)
	}
	deps.Fetcher, deps.Extractor = caps.Fetcher, caps.Extractor
	if logger != nil {
		deps.Fetcher = askwebslog.NewLoggingFetcher(caps.Fetcher, logger)
		deps.Extractor = askwebslog.NewLoggingExtractor(caps.Extractor, logger)
	}

	if command == "extract" {
		deps.Converter = htmltomarkdown.NewConverter()
		return kongCtx.Run(deps)
	}

	if caps.Search == nil {
		urls := cli.Ask.URLs
		if command == "chat" {
			urls = cli.Chat.URLs
		}
		search, err := buildSearch(ctx, &cli.Options, urls)
		if err != nil {
			if askweb.ErrorCode(err) == askweb.EINVALID {
				fmt.Fprintln(stderr, "Hint: --search=google needs GOOGLE_API_KEY and GOOGLE_CSE_ID")
			}
			return err
		}
		caps.Search = search
	}
	if caps.Embedder == nil || caps.Chat == nil {
		models, err := buildModels(ctx, &cli.Options)
		if err != nil {
			if cli.Provider == providerGemini {
				fmt.Fprintln(stderr, "Hint: Get a Gemini API key at https://aistudio.google.com/apikey")
			}
			return err
		}
		caps.Embedder, caps.Chat, caps.Tokens = models.Embedder, models.Chat, models.Tokens
	}

	deps.Asker = newAsker(caps, &cli.Options, logger, progressPrinter(stderr, cli.Quiet || cli.Verbose))

	return kongCtx.Run(deps)
}

const defaultConfigPath = "~/.config/askweb/config.yaml"

func defaultDBPath() string {
	if path := os.Getenv("ASKWEB_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "askweb.db"
	}
	dir := filepath.Join(home, ".askweb")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "askweb.db")
}
