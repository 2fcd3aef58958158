// Package sqlite reads launch records from a local SQLite copy of the table.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

var _ launch.Store = (*Store)(nil)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store runs a full-table SELECT over an externally managed launches table.
type Store struct {
	dbConn *sqlx.DB
	query  string
}

// Open connects read-only to the SQLite file at path.
// The file and table must already exist; nothing here creates schema.
func Open(path, table string) (*Store, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	db, err := sqlx.Connect("sqlite", fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}
	return New(db, table)
}

// New wraps an open connection.
func New(db *sqlx.DB, table string) (*Store, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	// Columns are coerced to text so numeric ids and NULLs scan into strings.
	query := fmt.Sprintf(`SELECT
		CAST(COALESCE(launch_id, '') AS TEXT) AS launch_id,
		COALESCE(mission_name, '') AS mission_name,
		COALESCE(rocket_name, '') AS rocket_name,
		COALESCE(launch_date, '') AS launch_date,
		COALESCE(status, '') AS status
	FROM %q
	ORDER BY rowid`, table)

	return &Store{dbConn: db, query: query}, nil
}

// Scan returns every row of the table in rowid order.
func (s *Store) Scan(ctx context.Context) ([]launch.Launch, error) {
	items := make([]launch.Launch, 0)
	if err := s.dbConn.SelectContext(ctx, &items, s.query); err != nil {
		return nil, fmt.Errorf("selecting launches: %w", err)
	}
	return items, nil
}

// Close terminates the database connection.
func (s *Store) Close() error {
	if err := s.dbConn.Close(); err != nil {
		return fmt.Errorf("closing store : %w", err)
	}
	return nil
}
