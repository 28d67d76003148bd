// Package storage provides SQLite-based persistence for finished flights.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored for a flight.
const (
	OutcomeLanded  = "landed"
	OutcomeCrashed = "crashed"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the flight log.
type Store struct {
	db *sql.DB
}

// Flight is a single finished flight.
type Flight struct {
	ID         string // UUID, assigned by SaveFlight when empty
	GameID     string
	Pilot      string // SSH user or local user name
	Outcome    string // OutcomeLanded or OutcomeCrashed
	Cause      string // Crash cause, empty for landings
	FuelLeft   float64
	Ticks      int
	TouchdownX float64
	Score      int
	CreatedAt  time.Time
}

// Landed reports whether the flight ended in a successful landing.
func (f Flight) Landed() bool {
	return f.Outcome == OutcomeLanded
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flights (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			pilot TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			fuel_left REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			touchdown_x REAL NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flights_game_id ON flights(game_id);
		CREATE INDEX IF NOT EXISTS idx_flights_top ON flights(game_id, outcome, score DESC);
		CREATE INDEX IF NOT EXISTS idx_flights_recent ON flights(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFlight records a finished flight and returns its ID.
func (s *Store) SaveFlight(f Flight) (string, error) {
	if f.Outcome != OutcomeLanded && f.Outcome != OutcomeCrashed {
		return "", fmt.Errorf("storage: invalid outcome %q", f.Outcome)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO flights (id, game_id, pilot, outcome, cause, fuel_left, ticks, touchdown_x, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.GameID, f.Pilot, f.Outcome, f.Cause, f.FuelLeft, f.Ticks, f.TouchdownX, f.Score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save flight: %w", err)
	}

	return f.ID, nil
}

// TopFlights retrieves the best N landings for the given game.
// Results are ordered by score descending; crashes are not included.
func (s *Store) TopFlights(gameID string, limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryFlights(
		`SELECT id, game_id, pilot, outcome, cause, fuel_left, ticks, touchdown_x, score, created_at
		 FROM flights
		 WHERE game_id = ? AND outcome = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		gameID, OutcomeLanded, limit,
	)
}

// RecentFlights retrieves the most recent N flights for the given game, crashes included.
func (s *Store) RecentFlights(gameID string, limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryFlights(
		`SELECT id, game_id, pilot, outcome, cause, fuel_left, ticks, touchdown_x, score, created_at
		 FROM flights
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// FlightByID retrieves a single flight. Returns nil if it does not exist.
func (s *Store) FlightByID(id string) (*Flight, error) {
	flights, err := s.queryFlights(
		`SELECT id, game_id, pilot, outcome, cause, fuel_left, ticks, touchdown_x, score, created_at
		 FROM flights
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, nil
	}
	return &flights[0], nil
}

func (s *Store) queryFlights(query string, args ...any) ([]Flight, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var f Flight
		var createdAt any
		if err := rows.Scan(&f.ID, &f.GameID, &f.Pilot, &f.Outcome, &f.Cause,
			&f.FuelLeft, &f.Ticks, &f.TouchdownX, &f.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return flights, nil
}

// HighScore returns the best landing score for the given game.
// Returns 0 if nobody has landed yet.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM flights WHERE game_id = ? AND outcome = ?",
		gameID, OutcomeLanded,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearFlights deletes all flights for the given game.
func (s *Store) ClearFlights(gameID string) error {
	_, err := s.db.Exec("DELETE FROM flights WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// FlightStats contains aggregated statistics for a game.
type FlightStats struct {
	GameID      string
	Flights     int
	Landed      int
	Crashed     int
	BestScore   int
	AvgFuelLeft float64 // Average over landings
	LastFlown   time.Time
}

// LandingRate returns the share of flights that landed, in [0, 1].
func (st FlightStats) LandingRate() float64 {
	if st.Flights == 0 {
		return 0
	}
	return float64(st.Landed) / float64(st.Flights)
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (*FlightStats, error) {
	stats := &FlightStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN score END), 0),
		        COALESCE(AVG(CASE WHEN outcome = ? THEN fuel_left END), 0)
		 FROM flights WHERE game_id = ?`,
		OutcomeLanded, OutcomeLanded, OutcomeLanded, gameID,
	).Scan(&stats.Flights, &stats.Landed, &stats.BestScore, &stats.AvgFuelLeft)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get flight stats: %w", err)
	}
	stats.Crashed = stats.Flights - stats.Landed

	var lastFlown any
	err = s.db.QueryRow(
		`SELECT created_at FROM flights WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastFlown)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last flight: %w", err)
	}
	if err == nil {
		stats.LastFlown = parseTime(lastFlown)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
