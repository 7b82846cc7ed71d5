package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shuffle-app/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

type SQLiteOptions struct {
	MigrationsDir string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/sqlite"
	}
	if err := applyMigrations(db, migrationsDir, sqliteDialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListPlayers() []model.Player {
	rows, err := s.db.Query(`SELECT id, name, gender, level, previous_ratio FROM players ORDER BY name, id`)
	if err != nil {
		s.logger.Error("list players failed", "err", err)
		return nil
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayerRow(rows)
		if err != nil {
			s.logger.Error("scan player failed", "err", err)
			continue
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("list players failed", "err", err)
	}
	return players
}

func (s *SQLiteStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, gender, level, previous_ratio FROM players WHERE id = ?`, id)
	p, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *SQLiteStore) CreatePlayer(player model.Player) (model.Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	_, err := s.db.Exec(`INSERT INTO players (id, name, gender, level, previous_ratio, created_at) VALUES (?,?,?,?,?,?)`,
		player.ID, player.Name, string(player.Gender), string(player.Level), string(toJSON(player.Previous5Ratio)), timeValueString(time.Now().UTC()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, ErrPlayerExists
		}
		return model.Player{}, err
	}
	return player, nil
}

func (s *SQLiteStore) UpdatePlayer(player model.Player) error {
	return updatePlayer(s.db, `UPDATE players SET name = ?, gender = ?, level = ?, previous_ratio = ? WHERE id = ?`, player)
}

func (s *SQLiteStore) GetSession() (model.Session, bool) {
	row := s.db.QueryRow(`SELECT id, games_per_match, num_rounds, selected, games, updated_at FROM sessions WHERE id = ?`, CurrentSessionID)
	var updatedAt sql.NullString
	session, err := scanSessionRow(row, &updatedAt)
	if err != nil {
		return model.Session{}, false
	}
	if updatedAt.Valid {
		if parsed, ok := parseTimeString(updatedAt.String); ok {
			session.UpdatedAt = parsed
		}
	}
	return session, true
}

const sqliteUpsertSession = `
INSERT INTO sessions (id, games_per_match, num_rounds, selected, games, updated_at)
VALUES (?,?,?,?,?,?)
ON CONFLICT (id) DO UPDATE SET
  games_per_match = excluded.games_per_match,
  num_rounds = excluded.num_rounds,
  selected = excluded.selected,
  games = excluded.games,
  updated_at = excluded.updated_at`

func (s *SQLiteStore) SaveSession(session model.Session) error {
	return saveSession(s.db, sqliteUpsertSession, session, timeValueString)
}

func (s *SQLiteStore) FinalizeSession(players []model.Player, session model.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	for _, p := range players {
		if err := updatePlayer(tx, `UPDATE players SET name = ?, gender = ?, level = ?, previous_ratio = ? WHERE id = ?`, p); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := saveSession(tx, sqliteUpsertSession, session, timeValueString); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func updatePlayer(db execer, query string, player model.Player) error {
	res, err := db.Exec(query,
		player.Name, string(player.Gender), string(player.Level), string(toJSON(player.Previous5Ratio)), player.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func saveSession(db execer, query string, session model.Session, stamp func(time.Time) any) error {
	if session.ID == "" {
		session.ID = CurrentSessionID
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}
	_, err := db.Exec(query,
		session.ID,
		session.GamesPerMatch,
		session.NumOfRounds,
		string(toJSON(nonNilStrings(session.Selected))),
		string(toJSON(session.Games)),
		stamp(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func scanPlayerRow(scanner interface{ Scan(dest ...any) error }) (model.Player, error) {
	var p model.Player
	var gender, level string
	var ratioJSON sql.NullString
	if err := scanner.Scan(&p.ID, &p.Name, &gender, &level, &ratioJSON); err != nil {
		return model.Player{}, err
	}
	p.Gender = model.Gender(gender)
	p.Level = model.Level(level)
	if ratioJSON.Valid && strings.TrimSpace(ratioJSON.String) != "" {
		_ = json.Unmarshal([]byte(ratioJSON.String), &p.Previous5Ratio)
	}
	return p, nil
}

// scanSessionRow leaves the timestamp column to the caller since the two
// backends store it differently.
func scanSessionRow(scanner interface{ Scan(dest ...any) error }, updatedAt any) (model.Session, error) {
	var session model.Session
	var selectedJSON, gamesJSON sql.NullString
	if err := scanner.Scan(
		&session.ID,
		&session.GamesPerMatch,
		&session.NumOfRounds,
		&selectedJSON,
		&gamesJSON,
		updatedAt,
	); err != nil {
		return model.Session{}, err
	}
	if selectedJSON.Valid && strings.TrimSpace(selectedJSON.String) != "" {
		_ = json.Unmarshal([]byte(selectedJSON.String), &session.Selected)
	}
	if gamesJSON.Valid && strings.TrimSpace(gamesJSON.String) != "" {
		_ = json.Unmarshal([]byte(gamesJSON.String), &session.Games)
	}
	if session.Selected == nil {
		session.Selected = []string{}
	}
	return session, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
