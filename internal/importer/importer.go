/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package importer seeds the catalog from the CSV files shipped with the
// project data dumps. Rows keep the ids of the dump so genre_title.csv can
// link titles and genres, and every insert is get-or-create: running the
// import twice leaves the database as it was.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"yamdb/internal/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Importer loads the CSV seed files of a directory into the database.
type Importer struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Run imports category.csv, genre.csv, titles.csv and genre_title.csv from
// dir, in that order so that the link table finds its endpoints.
func (i *Importer) Run(dir string) error {
	steps := []struct {
		file string
		load func(string) (int, error)
	}{
		{"category.csv", i.loadCategories},
		{"genre.csv", i.loadGenres},
		{"titles.csv", i.loadTitles},
		{"genre_title.csv", i.loadTitleGenres},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		count, err := step.load(path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", step.file, err)
		}
		i.logger.Info("imported",
			zap.String("file", step.file),
			zap.Int("rows", count),
		)
	}
	return nil
}

// readRows opens a CSV file, checks its header and streams the records to fn.
func readRows(path string, header []string, fn func(record []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	first, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	if len(first) != len(header) {
		return 0, fmt.Errorf("expected columns %v, got %v", header, first)
	}
	for idx, name := range header {
		if first[idx] != name {
			return 0, fmt.Errorf("expected columns %v, got %v", header, first)
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if err := fn(record); err != nil {
			return count, fmt.Errorf("row %d: %w", count+2, err)
		}
		count++
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", raw)
	}
	return uint(id), nil
}

func (i *Importer) loadCategories(path string) (int, error) {
	return readRows(path, []string{"id", "name", "slug"}, func(record []string) error {
		id, err := parseID(record[0])
		if err != nil {
			return err
		}
		category := entity.Category{ID: id, Name: record[1], Slug: record[2]}
		return i.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
	})
}

func (i *Importer) loadGenres(path string) (int, error) {
	return readRows(path, []string{"id", "name", "slug"}, func(record []string) error {
		id, err := parseID(record[0])
		if err != nil {
			return err
		}
		genre := entity.Genre{ID: id, Name: record[1], Slug: record[2]}
		return i.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&genre).Error
	})
}

func (i *Importer) loadTitles(path string) (int, error) {
	return readRows(path, []string{"id", "name", "year", "category"}, func(record []string) error {
		id, err := parseID(record[0])
		if err != nil {
			return err
		}
		year, err := strconv.Atoi(record[2])
		if err != nil {
			return fmt.Errorf("bad year %q", record[2])
		}
		categoryID, err := parseID(record[3])
		if err != nil {
			return err
		}
		title := entity.Title{ID: id, Name: record[1], Year: year, CategoryID: &categoryID}
		return i.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&title).Error
	})
}

// loadTitleGenres fills the many to many link table. The dump carries its own
// row id, which the table does not keep, only the pair matters.
func (i *Importer) loadTitleGenres(path string) (int, error) {
	return readRows(path, []string{"id", "title_id", "genre_id"}, func(record []string) error {
		titleID, err := parseID(record[1])
		if err != nil {
			return err
		}
		genreID, err := parseID(record[2])
		if err != nil {
			return err
		}
		return i.db.
			Table("title_genres").
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(map[string]interface{}{"title_id": titleID, "genre_id": genreID}).Error
	})
}
