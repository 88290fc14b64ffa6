// Command webvision runs the website metadata cataloging API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webvision/catalog"
	"github.com/fwojciec/webvision/gemini"
	webgin "github.com/fwojciec/webvision/gin"
	"github.com/fwojciec/webvision/goquery"
	webhttp "github.com/fwojciec/webvision/http"
	"github.com/fwojciec/webvision/sqlite"
	webslog "github.com/fwojciec/webvision/slog"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

const shutdownTimeout = 10 * time.Second

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Addr           string        `help:"HTTP listen address." default:":5001" env:"WEBVISION_ADDR"`
	DB             string        `help:"SQLite database path." env:"WEBVISION_DB"`
	GeminiAPIKey   string        `help:"Gemini API key; when unset the enhancer runs in fallback mode." env:"GEMINI_API_KEY"`
	AllowedOrigins []string      `help:"CORS origin allow-list." default:"http://localhost:5173" env:"WEBVISION_ORIGINS"`
	FetchTimeout   time.Duration `help:"Page fetch timeout." default:"15s" env:"WEBVISION_FETCH_TIMEOUT"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webvision"),
		kong.Description("Website metadata extraction and cataloging API."),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Hosting platforms often hand out only a port.
	if port := os.Getenv("PORT"); port != "" && cli.Addr == ":5001" {
		cli.Addr = ":" + port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	db := sqlite.NewDB(dbPath)
	if err := db.Open(); err != nil {
		fmt.Fprintln(os.Stderr, "Hint: Set WEBVISION_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer db.Close()

	var client *genai.Client
	if cli.GeminiAPIKey != "" {
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set; descriptions will use templated fallbacks")
	}

	fetcher := webhttp.NewFetcher(webhttp.WithTimeout(cli.FetchTimeout))
	defer fetcher.Close()

	catalogService := &catalog.Service{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Enhancer:  gemini.NewEnhancer(client, logger),
		Websites:  sqlite.NewWebsiteService(db),
	}

	server := &http.Server{
		Addr: cli.Addr,
		Handler: webgin.NewServer(
			webslog.NewLoggingCatalogService(catalogService, logger),
			webgin.WithLogger(logger),
			webgin.WithAllowedOrigins(cli.AllowedOrigins...),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("webvision API listening", "addr", cli.Addr, "db", dbPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webvision.db"
	}
	dir := filepath.Join(home, ".webvision")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webvision.db")
}
