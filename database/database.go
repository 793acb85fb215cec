package database

import (
	"database/sql"
	"fmt"
	"time"

	"iconmaker/logging"
	"iconmaker/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase opens the conversion manifest, creating its tables if needed
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_path TEXT NOT NULL UNIQUE,
		output_path TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		source_size INTEGER,
		modified_at TEXT,
		format TEXT,
		source_width INTEGER,
		source_height INTEGER,
		width INTEGER,
		height INTEGER,
		run_id TEXT,
		converted_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_output_path ON conversions(output_path);
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		source_dir TEXT,
		dest_dir TEXT,
		started_at TEXT,
		finished_at TEXT,
		converted INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0,
		failed INTEGER DEFAULT 0
	);`

	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	// source_mode was added after the first manifests were written
	if err := ensureColumn(db, "conversions", "source_mode", "TEXT"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func ensureColumn(db *sql.DB, table, column, sqlType string) error {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?", table)
	err := db.QueryRow(query, column).Scan(&count)
	if err != nil {
		return fmt.Errorf("error checking for %s column: %v", column, err)
	}
	if count > 0 {
		return nil
	}

	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;", table, column, sqlType)); err != nil {
		return fmt.Errorf("error adding %s column: %v", column, err)
	}
	logging.DebugLog("Added '%s' column to existing manifest schema", column)
	return nil
}

// GetConversion returns the stored record for sourcePath, if any
func GetConversion(db *sql.DB, sourcePath string) (*types.ConversionRecord, bool, error) {
	var rec types.ConversionRecord
	var mode sql.NullString
	err := db.QueryRow(`
		SELECT id, source_path, output_path, source_hash, source_size, modified_at, format,
			source_mode, source_width, source_height, width, height, run_id, converted_at
		FROM conversions WHERE source_path = ?`, sourcePath).Scan(
		&rec.ID, &rec.SourcePath, &rec.OutputPath, &rec.SourceHash, &rec.SourceSize, &rec.ModifiedAt, &rec.Format,
		&mode, &rec.SourceWidth, &rec.SourceHeight, &rec.Width, &rec.Height, &rec.RunID, &rec.ConvertedAt,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("manifest lookup for %s: %v", sourcePath, err)
	}
	rec.SourceMode = mode.String
	return &rec, true, nil
}

// StoreConversion inserts or replaces the record for rec.SourcePath
func StoreConversion(db *sql.DB, rec types.ConversionRecord) error {
	if rec.ConvertedAt == "" {
		rec.ConvertedAt = time.Now().Format(time.RFC3339)
	}

	stmt, err := db.Prepare(`
		INSERT INTO conversions (
			source_path, output_path, source_hash, source_size, modified_at, format,
			source_mode, source_width, source_height, width, height, run_id, converted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			output_path = excluded.output_path,
			source_hash = excluded.source_hash,
			source_size = excluded.source_size,
			modified_at = excluded.modified_at,
			format = excluded.format,
			source_mode = excluded.source_mode,
			source_width = excluded.source_width,
			source_height = excluded.source_height,
			width = excluded.width,
			height = excluded.height,
			run_id = excluded.run_id,
			converted_at = excluded.converted_at
	`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %v", rec.SourcePath, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		rec.SourcePath,
		rec.OutputPath,
		rec.SourceHash,
		rec.SourceSize,
		rec.ModifiedAt,
		rec.Format,
		rec.SourceMode,
		rec.SourceWidth,
		rec.SourceHeight,
		rec.Width,
		rec.Height,
		rec.RunID,
		rec.ConvertedAt,
	)
	if err != nil {
		return fmt.Errorf("cannot store manifest entry for %s: %v", rec.SourcePath, err)
	}
	return nil
}

// StoreRunSummary inserts or updates the row for summary.RunID
func StoreRunSummary(db *sql.DB, summary types.RunSummary) error {
	_, err := db.Exec(`
		INSERT INTO runs (run_id, source_dir, dest_dir, started_at, finished_at, converted, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			finished_at = excluded.finished_at,
			converted = excluded.converted,
			skipped = excluded.skipped,
			failed = excluded.failed`,
		summary.RunID, summary.SourceDir, summary.DestDir, summary.StartedAt, summary.FinishedAt,
		summary.Converted, summary.Skipped, summary.Failed,
	)
	if err != nil {
		return fmt.Errorf("cannot store run %s: %v", summary.RunID, err)
	}
	return nil
}

// ManifestStats contains totals across every recorded run
type ManifestStats struct {
	Conversions   int
	UniqueSources int
	Runs          int
	LastRun       *types.RunSummary
}

// GetRunStats retrieves totals from the manifest
func GetRunStats(db *sql.DB) (*ManifestStats, error) {
	var stats ManifestStats

	if err := db.QueryRow("SELECT COUNT(*) FROM conversions").Scan(&stats.Conversions); err != nil {
		return nil, fmt.Errorf("failed to count conversions: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(DISTINCT source_hash) FROM conversions").Scan(&stats.UniqueSources); err != nil {
		return nil, fmt.Errorf("failed to count unique sources: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.Runs); err != nil {
		return nil, fmt.Errorf("failed to count runs: %v", err)
	}

	var last types.RunSummary
	var finished sql.NullString
	err := db.QueryRow(`
		SELECT run_id, source_dir, dest_dir, started_at, finished_at, converted, skipped, failed
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`).Scan(
		&last.RunID, &last.SourceDir, &last.DestDir, &last.StartedAt, &finished,
		&last.Converted, &last.Skipped, &last.Failed,
	)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to read last run: %v", err)
	default:
		last.FinishedAt = finished.String
		stats.LastRun = &last
	}

	return &stats, nil
}
