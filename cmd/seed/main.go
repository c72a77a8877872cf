package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"readscape/internal/cache"
	"readscape/internal/config"
	"readscape/internal/db"
	"readscape/internal/repository"
	"readscape/internal/service"
	"readscape/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Load catalog data into the readscape database",
		SilenceUsage: true,
	}
	root.AddCommand(newBooksCmd())
	return root
}

func newBooksCmd() *cobra.Command {
	var (
		manifest string
		scan     bool
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Upsert books from a JSON manifest and/or the books storage directory",
		Example: `  seed books --manifest catalog.json
  seed books --scan`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if manifest == "" && !scan {
				return errors.New("nothing to do: pass --manifest, --scan or both")
			}
			return runBooks(cmd.Context(), manifest, scan)
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "path to a JSON array of {title, author, category, file_name, cover_image}")
	cmd.Flags().BoolVar(&scan, "scan", false, "create a book for every .txt file in BOOKS_STORAGE not yet in the catalog")
	return cmd
}

func runBooks(ctx context.Context, manifest string, scan bool) error {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close(gormDB)
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, false); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Println("Database migrations completed")

	importer := newImporter(cfg, gormDB)

	if manifest != "" {
		entries, err := readManifest(manifest)
		if err != nil {
			return err
		}
		log.Printf("Read %d entries from %s", len(entries), manifest)

		res, err := importer.ImportManifest(ctx, entries)
		if err != nil {
			return fmt.Errorf("import manifest: %w", err)
		}
		log.Printf("Manifest: %d created, %d updated, %d skipped", res.Created, res.Updated, res.Skipped)
	}

	if scan {
		log.Printf("Scanning %s for new books", cfg.BooksStorage)
		res, err := importer.ScanStorage(ctx)
		if err != nil {
			return fmt.Errorf("scan storage: %w", err)
		}
		log.Printf("Scan: %d created, %d skipped", res.Created, res.Skipped)
	}

	log.Println("Seed completed")
	return nil
}

func newImporter(cfg *config.Config, gormDB *gorm.DB) *service.CatalogImporter {
	var cacheClient *cache.Client
	if cfg.CacheEnabled {
		// listings cached by a running server must not outlive the import
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	return service.NewCatalogImporter(
		repository.NewBookRepository(gormDB, cfg.DBQueryTimeout),
		storage.NewOSContentStore(cfg.BooksStorage, cfg.CoversStorage),
		cacheClient,
		log.Printf,
	)
}

func readManifest(path string) ([]service.ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var entries []service.ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return entries, nil
}
