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
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

type PostgresOptions struct {
	MigrationsDir string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir, postgresDialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ListPlayers() []model.Player {
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

func (s *PostgresStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, gender, level, previous_ratio FROM players WHERE id = $1`, id)
	p, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *PostgresStore) CreatePlayer(player model.Player) (model.Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	_, err := s.db.Exec(`INSERT INTO players (id, name, gender, level, previous_ratio) VALUES ($1,$2,$3,$4,$5)`,
		player.ID, player.Name, string(player.Gender), string(player.Level), string(toJSON(player.Previous5Ratio)),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, ErrPlayerExists
		}
		return model.Player{}, err
	}
	return player, nil
}

const postgresUpdatePlayer = `UPDATE players SET name = $1, gender = $2, level = $3, previous_ratio = $4 WHERE id = $5`

func (s *PostgresStore) UpdatePlayer(player model.Player) error {
	return updatePlayer(s.db, postgresUpdatePlayer, player)
}

func (s *PostgresStore) GetSession() (model.Session, bool) {
	row := s.db.QueryRow(`SELECT id, games_per_match, num_rounds, selected, games, updated_at FROM sessions WHERE id = $1`, CurrentSessionID)
	var updatedAt sql.NullTime
	session, err := scanSessionRow(row, &updatedAt)
	if err != nil {
		return model.Session{}, false
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}
	return session, true
}

const postgresUpsertSession = `
INSERT INTO sessions (id, games_per_match, num_rounds, selected, games, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
  games_per_match = EXCLUDED.games_per_match,
  num_rounds = EXCLUDED.num_rounds,
  selected = EXCLUDED.selected,
  games = EXCLUDED.games,
  updated_at = EXCLUDED.updated_at`

func (s *PostgresStore) SaveSession(session model.Session) error {
	return saveSession(s.db, postgresUpsertSession, session, timeValue)
}

func (s *PostgresStore) FinalizeSession(players []model.Player, session model.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	for _, p := range players {
		if err := updatePlayer(tx, postgresUpdatePlayer, p); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := saveSession(tx, postgresUpsertSession, session, timeValue); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}
	return nil
}

func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func toJSON(v any) []byte {
	if v == nil {
		return []byte("null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return data
}
