package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

const pgUniqueViolation = "23505"

var leadSchema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		phone           VARCHAR(13) NOT NULL,
		source          TEXT NOT NULL DEFAULT 'landing_page',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		whatsapp_joined BOOLEAN NOT NULL DEFAULT FALSE,
		ebook_sent      BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS leads_created_at_id_idx ON leads (created_at DESC, id ASC)`,
}

const leadColumns = `id, email, phone, source, created_at, updated_at, whatsapp_joined, ebook_sent`

// PostgresLeadRepository stores leads in Postgres. The UNIQUE constraint on email is
// what settles concurrent duplicate inserts.
type PostgresLeadRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

var _ entity.LeadRepositoryInterface = (*PostgresLeadRepository)(nil)

func NewPostgresLeadRepository(db *sql.DB, timeout time.Duration) *PostgresLeadRepository {
	return &PostgresLeadRepository{DB: db, Timeout: timeout}
}

func (r *PostgresLeadRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range leadSchema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure leads schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.CreatedAt,
		lead.UpdatedAt,
		lead.WhatsAppJoined,
		lead.EbookSent,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *PostgresLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	return r.findOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE email = $1`, email)
}

func (r *PostgresLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.findOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
}

func (r *PostgresLeadRepository) findOne(ctx context.Context, query string, arg string) (*entity.Lead, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

func (r *PostgresLeadRepository) List(ctx context.Context, skip, limit int) ([]*entity.Lead, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + leadColumns + `
		FROM leads
		ORDER BY created_at DESC, id ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	return leads, nil
}

func (r *PostgresLeadRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		count int64
		err   error
	)
	if since.IsZero() {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

func (r *PostgresLeadRepository) SetFlag(ctx context.Context, id string, flag entity.LeadFlag, at time.Time) error {
	if !flag.Valid() {
		return entity.ErrInvalidFlag
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// flag is whitelisted above, safe to use as a column name
	query := `UPDATE leads SET ` + string(flag) + ` = TRUE, updated_at = $1 WHERE id = $2`

	res, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresLeadRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresLeadRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *PostgresLeadRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		id, email, phone, source string
		createdAt, updatedAt     time.Time
		whatsappJoined, ebook    bool
	)
	if err := row.Scan(&id, &email, &phone, &source, &createdAt, &updatedAt, &whatsappJoined, &ebook); err != nil {
		return nil, err
	}
	return entity.RestoreLead(id, email, phone, source, createdAt, updatedAt, whatsappJoined, ebook), nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
