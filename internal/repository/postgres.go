package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"intake/internal/model"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// leadRow maps the leads table. State, reasons and history are stored
// as JSONB documents.
type leadRow struct {
	ID        uuid.UUID `db:"id"`
	State     []byte    `db:"state"`
	Mode      string    `db:"mode"`
	Score     int       `db:"score"`
	Reasons   []byte    `db:"reasons"`
	History   []byte    `db:"history"`
	PhoneE164 string    `db:"phone_e164"`
	CreatedAt time.Time `db:"created_at"`
}

// CreateLead appends a lead record and returns its generated id.
func (r *PostgresRepository) CreateLead(ctx context.Context, lead model.Lead) (uuid.UUID, error) {
	id := uuid.New()

	stateJSON, err := json.Marshal(lead.State)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal lead state: %w", err)
	}
	reasonsJSON, err := json.Marshal(lead.Reasons)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal lead reasons: %w", err)
	}
	historyJSON, err := json.Marshal(lead.History)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal lead history: %w", err)
	}

	phone := ""
	if lead.State.Phone != nil {
		phone = normalizePhoneE164(*lead.State.Phone)
	}

	query := `
		INSERT INTO leads (id, state, mode, score, reasons, history, phone_e164, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err = r.db.ExecContext(ctx, query, id, stateJSON, string(lead.Mode), lead.Score, reasonsJSON, historyJSON, phone)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert lead: %w", err)
	}

	return id, nil
}

// GetLead retrieves a single lead by its id, or nil when absent.
func (r *PostgresRepository) GetLead(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	var row leadRow
	query := `
		SELECT id, state, mode, score, reasons, history, phone_e164, created_at
		FROM leads
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	lead := model.Lead{
		ID:        row.ID,
		Mode:      model.Mode(row.Mode),
		Score:     row.Score,
		PhoneE164: row.PhoneE164,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.State, &lead.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lead state: %w", err)
	}
	if len(row.Reasons) > 0 {
		if err := json.Unmarshal(row.Reasons, &lead.Reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead reasons: %w", err)
		}
	}
	if len(row.History) > 0 {
		if err := json.Unmarshal(row.History, &lead.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead history: %w", err)
		}
	}

	return &lead, nil
}
