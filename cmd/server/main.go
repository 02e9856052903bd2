/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Toga practice engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Build zap logger
  3. Initialize SQLite store
  4. Load fiscal parameters (built-in table or -fiscal JSON file)
  5. Wire the Gemini importer when an API key is present
  6. Start HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: toga.db)
           Use ":memory:" for an in-memory database
  -fiscal  Optional JSON file overriding the transport subsidy and
           holiday table (see factory/fiscal.go for the format)
  -model   Gemini model name (default: gemini-1.5-flash)

ENVIRONMENT:
  GEMINI_API_KEY  Enables the jurisprudence import endpoint. Without it
                  the calculators still work; /api/jurisprudence/import
                  answers 503.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Calculators only
  ./server -db="./data/toga.db"

  # Full pipeline with jurisprudence import
  GEMINI_API_KEY=... ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/fiscal.go: Fiscal parameter loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/toga/practice-engine/api"
	"github.com/toga/practice-engine/extract"
	"github.com/toga/practice-engine/factory"
	"github.com/toga/practice-engine/gemini"
	"github.com/toga/practice-engine/jurisprudence"
	"github.com/toga/practice-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "toga.db", "SQLite database path")
	fiscalPath := flag.String("fiscal", "", "fiscal parameters JSON file (optional)")
	model := flag.String("model", gemini.DefaultModel, "Gemini model name")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	// Fiscal parameters
	fiscal := factory.Defaults()
	if *fiscalPath != "" {
		data, err := os.ReadFile(*fiscalPath)
		if err != nil {
			log.Fatal("Failed to read fiscal config", zap.Error(err))
		}
		fiscal, err = factory.ParseFiscalConfig(data)
		if err != nil {
			log.Fatal("Invalid fiscal config", zap.Error(err))
		}
		log.Info("Loaded fiscal config", zap.String("path", *fiscalPath))
	}

	// Jurisprudence import pipeline, only when a key is configured
	var importer *jurisprudence.Importer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		client, err := gemini.New(context.Background(), gemini.Config{
			APIKey: key,
			Model:  *model,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
		// Text files are read locally; PDFs and scans go to the model.
		extractor := extract.Fallback{extract.Plain{}, client}
		importer = jurisprudence.NewImporter(extractor, client, store, log)
		log.Info("Jurisprudence import enabled", zap.String("model", *model))
	} else {
		log.Warn("GEMINI_API_KEY not set, jurisprudence import disabled")
	}

	handler := api.NewHandler(store, fiscal, importer, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // import calls wait on the model
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.Int("port", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
