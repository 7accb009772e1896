// +build ignore

package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Row is one line of the import file: description,location,category[,people_needed]
type Row struct {
	Description  string
	Location     string
	Category     string
	PeopleNeeded sql.NullInt64
}

var validCategories = map[string]bool{
	"service":      true,
	"organization": true,
	"support":      true,
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	dbPath := flag.String("db", "", "Database path (default: ~/.vocare/vocare.db)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/import_needs.go [--dry-run] [--db path] needs.csv")
		os.Exit(2)
	}

	if *dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		*dbPath = filepath.Join(homeDir, ".vocare", "vocare.db")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	if len(rows) == 0 {
		fmt.Println("No needs found to import")
		return
	}

	fmt.Printf("Found %d need(s) to import:\n\n", len(rows))
	for _, r := range rows {
		fmt.Printf("  [%s] %s @ %s\n", r.Category, r.Description, r.Location)
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	imported, err := importRows(db, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Import complete: %d/%d needs imported ===\n", imported, len(rows))
}

func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(record[0], "description") {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 fields, got %d", line, len(record))
		}

		row := Row{
			Description: strings.TrimSpace(record[0]),
			Location:    strings.TrimSpace(record[1]),
			Category:    strings.ToLower(strings.TrimSpace(record[2])),
		}
		if row.Description == "" || row.Location == "" {
			return nil, fmt.Errorf("line %d: description and location are required", line)
		}
		if !validCategories[row.Category] {
			return nil, fmt.Errorf("line %d: unknown category %q", line, row.Category)
		}
		if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(record[3]))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("line %d: people_needed must be a positive integer", line)
			}
			row.PeopleNeeded = sql.NullInt64{Int64: int64(n), Valid: true}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func importRows(db *sql.DB, rows []Row) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO hunger_feed (id, description, location, category, creator_display_name, people_needed, status, active)
		VALUES (?, ?, ?, ?, 'Import', ?, 'open', 1)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(uuid.NewString(), r.Description, r.Location, r.Category, r.PeopleNeeded); err != nil {
			return 0, fmt.Errorf("insert %q: %w", r.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
