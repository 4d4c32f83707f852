package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lavishq/docpilot/internal/api"
	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/llm"
	"github.com/lavishq/docpilot/internal/mapping"
	"github.com/lavishq/docpilot/internal/sqlite"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("docpilot: .env file not loaded", "error", err)
	} else {
		logger.Info("docpilot: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	storeKind := flag.String("store", envOr("DOCPILOT_STORE", "sqlite"), "learned-field store backend (sqlite or file)")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite learned-field database")
	mappingsPath := flag.String("mappings", defaultMappingsPath(), "path to the JSON learned-field file (file store only)")
	templatesDir := flag.String("templates", os.Getenv("DOCPILOT_TEMPLATES_DIR"), "directory of extra template payloads (optional)")
	flag.Parse()

	logger.Info("docpilot: startup initiated", "addr", *addr, "store", *storeKind)

	catalog := doctmpl.NewCatalog()
	defer catalog.Close()
	if dir := strings.TrimSpace(*templatesDir); dir != "" {
		if err := catalog.LoadDir(dir); err != nil {
			logger.Error("docpilot: template directory load failed", "dir", dir, "error", err)
			fmt.Println("template directory error:", err)
			os.Exit(1)
		}
		logger.Info("docpilot: template directory watched", "dir", dir)
	}

	store, err := openStore(*storeKind, *catalogPath, *mappingsPath)
	if err != nil {
		logger.Error("docpilot: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	provider := llm.NewProvider()
	logger.Info("docpilot: llm provider ready", "provider", provider.Name())

	server, err := api.NewServer(catalog, store, provider)
	if err != nil {
		logger.Error("docpilot: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("docpilot: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("docpilot: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func openStore(kind, catalogPath, mappingsPath string) (mapping.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "sqlite":
		cfg, err := sqlite.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("sqlite config: %w", err)
		}
		if trimmed := strings.TrimSpace(catalogPath); trimmed != "" {
			cfg.Path = trimmed
		}
		return sqlite.OpenWithConfig(cfg)
	case "file":
		return mapping.NewFileStore(mappingsPath)
	case "memory":
		return mapping.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func defaultCatalogPath() string {
	return filepath.Join("data", "learned_fields.db")
}

func defaultMappingsPath() string {
	return filepath.Join("data", "learned_fields.json")
}
