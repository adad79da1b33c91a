// Imports books.csv into the books table. Expects a header row followed by
// isbn,title,author,year records. Rows whose ISBN already exists are
// skipped, so re-running the import is safe.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/pkg/database"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "books.csv", "path to the books CSV file")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	books := repository.NewBookRepository(db, logger)

	file, err := os.Open(*path)
	if err != nil {
		logger.Fatal("Failed to open CSV file", zap.Error(err), zap.String("file", *path))
	}
	defer file.Close()

	imported, skipped, err := importBooks(context.Background(), csv.NewReader(file), books, logger)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err), zap.String("file", *path))
	}

	logger.Info("Import completed",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
}

// importBooks reads isbn,title,author,year records from the reader and
// inserts them through the catalog repository. Rows with a wrong field
// count, an unparseable year, or an already-imported ISBN are skipped; any
// other read or insert fault aborts the import with an error, never a
// silent truncation.
func importBooks(ctx context.Context, reader *csv.Reader, books repository.BookRepository, logger *zap.Logger) (imported, skipped int, err error) {
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, 0, fmt.Errorf("read csv header: %w", err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			logger.Warn("Skipping malformed record", zap.Strings("record", record))
			skipped++
			continue
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read csv record: %w", err)
		}

		year, err := strconv.Atoi(record[3])
		if err != nil {
			logger.Warn("Skipping record with bad year",
				zap.String("isbn", record[0]),
				zap.String("year", record[3]))
			skipped++
			continue
		}

		book := &entity.Book{
			ID:     uuid.New(),
			ISBN:   record[0],
			Title:  record[1],
			Author: record[2],
			Year:   year,
		}

		if err := books.Create(ctx, book); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				logger.Warn("Skipping duplicate ISBN", zap.String("isbn", book.ISBN))
				skipped++
				continue
			}
			return imported, skipped, fmt.Errorf("insert book %s: %w", book.ISBN, err)
		}
		imported++
	}

	return imported, skipped, nil
}
