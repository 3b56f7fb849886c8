package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// databaseFile is the catalog file name inside the data directory.
const databaseFile = "catalog.db"

// Store is the SQLite-backed filing catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.holdings/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".holdings", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, databaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign keys are per connection; pin one so the cascade always applies.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FilingStore returns a FilingStore interface backed by this store.
func (s *Store) FilingStore() driven.FilingStore {
	return &filingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Filing Store ====================

// filingStore implements driven.FilingStore.
type filingStore struct {
	store *Store
}

var _ driven.FilingStore = (*filingStore)(nil)

const filingColumns = `id, accession_number, submission_type, period, filer_name, cik,
	source_path, output_path, holding_count, skipped_count, total_value, converted_at`

// SaveFiling stores or replaces a filing and its holdings. A filing already
// catalogued under the same accession number keeps its ID.
func (s *filingStore) SaveFiling(ctx context.Context, filing *domain.StoredFiling, holdings []domain.HoldingRecord) error {
	if filing == nil || filing.AccessionNumber == "" {
		return fmt.Errorf("saving filing: accession number required: %w", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var existingID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM filings WHERE accession_number = ?", filing.AccessionNumber,
	).Scan(&existingID)
	switch {
	case err == nil:
		filing.ID = existingID
	case err == sql.ErrNoRows:
		if filing.ID == "" {
			filing.ID = uuid.New().String()
		}
	default:
		return fmt.Errorf("looking up filing: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO filings (`+filingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			submission_type = excluded.submission_type,
			period = excluded.period,
			filer_name = excluded.filer_name,
			cik = excluded.cik,
			source_path = excluded.source_path,
			output_path = excluded.output_path,
			holding_count = excluded.holding_count,
			skipped_count = excluded.skipped_count,
			total_value = excluded.total_value,
			converted_at = excluded.converted_at
	`, filing.ID, filing.AccessionNumber, filing.SubmissionType, filing.Period, filing.FilerName,
		filing.CIK, filing.SourcePath, filing.OutputPath, filing.HoldingCount, filing.SkippedCount,
		filing.TotalValue, filing.ConvertedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving filing: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM holdings WHERE filing_id = ?", filing.ID); err != nil {
		return fmt.Errorf("clearing holdings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO holdings (filing_id, position, issuer_name, class_title, cusip, value, amount,
			amount_type, put_call, discretion, other_manager, vote_sole, vote_shared, vote_none)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, h := range holdings {
		if _, err := stmt.ExecContext(ctx, filing.ID, i, h.IssuerName, h.ClassTitle, h.CUSIP,
			h.Value, h.Amount, h.AmountType, h.PutCall, h.InvestmentDiscretion, h.OtherManager,
			h.Voting.Sole, h.Voting.Shared, h.Voting.None); err != nil {
			return fmt.Errorf("saving holding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetFiling retrieves a filing by accession number.
func (s *filingStore) GetFiling(ctx context.Context, accession string) (*domain.StoredFiling, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+filingColumns+" FROM filings WHERE accession_number = ?", accession)

	filing, err := scanFiling(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning filing: %w", err)
	}
	return filing, nil
}

// ListFilings returns all filings, newest period first.
func (s *filingStore) ListFilings(ctx context.Context) ([]domain.StoredFiling, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+filingColumns+" FROM filings ORDER BY period DESC, accession_number")
	if err != nil {
		return nil, fmt.Errorf("querying filings: %w", err)
	}
	defer rows.Close()

	var filings []domain.StoredFiling //nolint:prealloc // size unknown from query
	for rows.Next() {
		filing, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning filing: %w", err)
		}
		filings = append(filings, *filing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filings: %w", err)
	}

	return filings, nil
}

// GetHoldings returns a filing's holdings in document order.
func (s *filingStore) GetHoldings(ctx context.Context, accession string) ([]domain.HoldingRecord, error) {
	filing, err := s.GetFiling(ctx, accession)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT issuer_name, class_title, cusip, value, amount, amount_type, put_call,
			discretion, other_manager, vote_sole, vote_shared, vote_none
		FROM holdings WHERE filing_id = ? ORDER BY position
	`, filing.ID)
	if err != nil {
		return nil, fmt.Errorf("querying holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]domain.HoldingRecord, 0, filing.HoldingCount)
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holdings: %w", err)
	}

	return holdings, nil
}

// FindByCUSIP returns every stored holding with the given CUSIP,
// newest period first.
func (s *filingStore) FindByCUSIP(ctx context.Context, cusip string) ([]domain.HoldingMatch, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT f.id, f.accession_number, f.submission_type, f.period, f.filer_name, f.cik,
			f.source_path, f.output_path, f.holding_count, f.skipped_count, f.total_value, f.converted_at,
			h.issuer_name, h.class_title, h.cusip, h.value, h.amount, h.amount_type, h.put_call,
			h.discretion, h.other_manager, h.vote_sole, h.vote_shared, h.vote_none
		FROM holdings h
		JOIN filings f ON f.id = h.filing_id
		WHERE h.cusip = ? COLLATE NOCASE
		ORDER BY f.period DESC, f.accession_number, h.position
	`, strings.TrimSpace(cusip))
	if err != nil {
		return nil, fmt.Errorf("querying holdings: %w", err)
	}
	defer rows.Close()

	var matches []domain.HoldingMatch //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.HoldingMatch
		var convertedAt sql.NullTime
		h := &m.Holding
		if err := rows.Scan(&m.Filing.ID, &m.Filing.AccessionNumber, &m.Filing.SubmissionType,
			&m.Filing.Period, &m.Filing.FilerName, &m.Filing.CIK, &m.Filing.SourcePath,
			&m.Filing.OutputPath, &m.Filing.HoldingCount, &m.Filing.SkippedCount,
			&m.Filing.TotalValue, &convertedAt,
			&h.IssuerName, &h.ClassTitle, &h.CUSIP, &h.Value, &h.Amount, &h.AmountType,
			&h.PutCall, &h.InvestmentDiscretion, &h.OtherManager,
			&h.Voting.Sole, &h.Voting.Shared, &h.Voting.None); err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}
		if convertedAt.Valid {
			m.Filing.ConvertedAt = convertedAt.Time
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holdings: %w", err)
	}

	return matches, nil
}

// DeleteFiling removes a filing and its holdings.
func (s *filingStore) DeleteFiling(ctx context.Context, accession string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM filings WHERE accession_number = ?", accession)
	if err != nil {
		return fmt.Errorf("deleting filing: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting filing: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFiling(row scanner) (*domain.StoredFiling, error) {
	var f domain.StoredFiling
	var convertedAt sql.NullTime
	if err := row.Scan(&f.ID, &f.AccessionNumber, &f.SubmissionType, &f.Period, &f.FilerName,
		&f.CIK, &f.SourcePath, &f.OutputPath, &f.HoldingCount, &f.SkippedCount,
		&f.TotalValue, &convertedAt); err != nil {
		return nil, err
	}
	if convertedAt.Valid {
		f.ConvertedAt = convertedAt.Time
	}
	return &f, nil
}

func scanHolding(row scanner) (domain.HoldingRecord, error) {
	var h domain.HoldingRecord
	err := row.Scan(&h.IssuerName, &h.ClassTitle, &h.CUSIP, &h.Value, &h.Amount, &h.AmountType,
		&h.PutCall, &h.InvestmentDiscretion, &h.OtherManager,
		&h.Voting.Sole, &h.Voting.Shared, &h.Voting.None)
	return h, err
}
