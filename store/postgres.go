// File: store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit-portal/models"
)

// uniqueViolation is the PostgreSQL error code raised by a unique
// constraint. The UNIQUE(user_id, domain_id) index on applications is the
// final backstop for the duplicate-apply race; services only pre-check for
// nicer error messages.
const uniqueViolation = "23505"

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against databaseURL and verifies the connection.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() { p.pool.Close() }

// Ping verifies connectivity, used by the health endpoint.
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ---------------- users ----------------

const userColumns = `id, srn, name, email, phone, year, role`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.SRN, &u.Name, &u.Email, &u.Phone, &u.Year, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = models.ParseRole(role)
	return &u, nil
}

// GetUserBySRN fetches the account for an immutable external identifier.
func (p *Postgres) GetUserBySRN(ctx context.Context, srn string) (*models.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE srn = $1`, srn)
	return scanUser(row)
}

// UpsertUser inserts or refreshes a user keyed by SRN, returning the stored
// row. The role column is written as given; preserving escalated roles
// across logins is the caller's policy, not the store's.
func (p *Postgres) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	row := p.pool.QueryRow(ctx, `
INSERT INTO users (srn, name, email, phone, year, role)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (srn) DO UPDATE
SET name = EXCLUDED.name, email = EXCLUDED.email,
    phone = EXCLUDED.phone, year = EXCLUDED.year, role = EXCLUDED.role
RETURNING `+userColumns,
		u.SRN, u.Name, u.Email, u.Phone, u.Year, u.Role.String())
	return scanUser(row)
}

// CountUsersWithRole counts accounts holding exactly the given role string.
func (p *Postgres) CountUsersWithRole(ctx context.Context, role string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}

// ---------------- domains ----------------

const domainColumns = `id, name, slug, venue, description, icon, whatsapp_link`

func scanDomain(row pgx.Row) (*models.Domain, error) {
	var d models.Domain
	err := row.Scan(&d.ID, &d.Name, &d.Slug, &d.Venue, &d.Description, &d.Icon, &d.WhatsAppLink)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDomains returns all domains ordered by name.
func (p *Postgres) ListDomains(ctx context.Context) ([]models.Domain, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+domainColumns+` FROM domains ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var domains []models.Domain
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, *d)
	}
	return domains, rows.Err()
}

// GetDomainByID fetches a single domain.
func (p *Postgres) GetDomainByID(ctx context.Context, id string) (*models.Domain, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE id = $1`, id)
	return scanDomain(row)
}

// GetDomainBySlug fetches a domain by its stable slug.
func (p *Postgres) GetDomainBySlug(ctx context.Context, slug string) (*models.Domain, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE slug = $1`, slug)
	return scanDomain(row)
}

// SetDomainWhatsAppLink updates a domain's group link; nil clears it.
func (p *Postgres) SetDomainWhatsAppLink(ctx context.Context, id string, link *string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE domains SET whatsapp_link = $2 WHERE id = $1`, id, link)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- applications ----------------

const applicationColumns = `id, user_id, domain_id, status, score, interview_done, created_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(&a.ID, &a.UserID, &a.DomainID, &a.Status, &a.Score, &a.InterviewDone, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a fresh interview_left application. A unique
// violation on (user_id, domain_id) is returned as ErrDuplicate.
func (p *Postgres) CreateApplication(ctx context.Context, userID, domainID string) (*models.Application, error) {
	row := p.pool.QueryRow(ctx, `
INSERT INTO applications (user_id, domain_id, status)
VALUES ($1, $2, $3)
RETURNING `+applicationColumns,
		userID, domainID, models.StatusInterviewLeft)
	app, err := scanApplication(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	return app, err
}

// DeleteApplication removes a student's application for a domain. The
// (userID, domainID) filter is what enforces ownership.
func (p *Postgres) DeleteApplication(ctx context.Context, userID, domainID string) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM applications WHERE user_id = $1 AND domain_id = $2`, userID, domainID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetApplicationByID fetches an application with its domain slug attached.
func (p *Postgres) GetApplicationByID(ctx context.Context, id string) (*ApplicationRecord, error) {
	var rec ApplicationRecord
	err := p.pool.QueryRow(ctx, `
SELECT a.id, a.user_id, a.domain_id, a.status, a.score, a.interview_done, a.created_at, d.slug
FROM applications a
JOIN domains d ON d.id = a.domain_id
WHERE a.id = $1`, id).
		Scan(&rec.ID, &rec.UserID, &rec.DomainID, &rec.Status, &rec.Score,
			&rec.InterviewDone, &rec.CreatedAt, &rec.DomainSlug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CountApplicationsByUser counts how many domains a user has applied to.
func (p *Postgres) CountApplicationsByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM applications WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// ListApplicationsByUser returns a student's applications newest first,
// each joined with its domain.
func (p *Postgres) ListApplicationsByUser(ctx context.Context, userID string) ([]StudentApplication, error) {
	rows, err := p.pool.Query(ctx, `
SELECT a.id, a.user_id, a.domain_id, a.status, a.score, a.interview_done, a.created_at,
       d.id, d.name, d.slug, d.venue, d.description, d.icon, d.whatsapp_link
FROM applications a
JOIN domains d ON d.id = a.domain_id
WHERE a.user_id = $1
ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []StudentApplication
	for rows.Next() {
		var sa StudentApplication
		if err := rows.Scan(
			&sa.ID, &sa.UserID, &sa.DomainID, &sa.Status, &sa.Score, &sa.InterviewDone, &sa.CreatedAt,
			&sa.Domain.ID, &sa.Domain.Name, &sa.Domain.Slug, &sa.Domain.Venue,
			&sa.Domain.Description, &sa.Domain.Icon, &sa.Domain.WhatsAppLink,
		); err != nil {
			return nil, err
		}
		apps = append(apps, sa)
	}
	return apps, rows.Err()
}

// ListApplicationsByDomain returns one page of a domain's applicants newest
// first, plus the total count for pagination.
func (p *Postgres) ListApplicationsByDomain(ctx context.Context, domainID string, offset, limit int) ([]DomainApplicant, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM applications WHERE domain_id = $1`, domainID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := p.pool.Query(ctx, `
SELECT a.id, a.user_id, a.domain_id, a.status, a.score, a.interview_done, a.created_at,
       u.id, u.srn, u.name, u.email, u.phone, u.year, u.role
FROM applications a
JOIN users u ON u.id = a.user_id
WHERE a.domain_id = $1
ORDER BY a.created_at DESC
OFFSET $2 LIMIT $3`, domainID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []DomainApplicant
	for rows.Next() {
		var da DomainApplicant
		var role string
		if err := rows.Scan(
			&da.ID, &da.UserID, &da.DomainID, &da.Status, &da.Score, &da.InterviewDone, &da.CreatedAt,
			&da.User.ID, &da.User.SRN, &da.User.Name, &da.User.Email, &da.User.Phone, &da.User.Year, &role,
		); err != nil {
			return nil, 0, err
		}
		da.User.Role = models.ParseRole(role)
		apps = append(apps, da)
	}
	return apps, total, rows.Err()
}

// ListDomainApplications returns every application for a domain, used by
// the coordinator dashboard summary.
func (p *Postgres) ListDomainApplications(ctx context.Context, domainID string) ([]models.Application, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE domain_id = $1`, domainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// ListAllApplications returns every application joined with user and
// domain, newest first. Admin-only consumers: export and overview stats.
func (p *Postgres) ListAllApplications(ctx context.Context) ([]ExportRow, error) {
	rows, err := p.pool.Query(ctx, `
SELECT a.id, a.user_id, a.domain_id, a.status, a.score, a.interview_done, a.created_at,
       u.id, u.srn, u.name, u.email, u.phone, u.year, u.role,
       d.name
FROM applications a
JOIN users u ON u.id = a.user_id
JOIN domains d ON d.id = a.domain_id
ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var r ExportRow
		var role string
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.DomainID, &r.Status, &r.Score, &r.InterviewDone, &r.CreatedAt,
			&r.User.ID, &r.User.SRN, &r.User.Name, &r.User.Email, &r.User.Phone, &r.User.Year, &role,
			&r.DomainName,
		); err != nil {
			return nil, err
		}
		r.User.Role = models.ParseRole(role)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetApplicationScore writes a score without touching status.
func (p *Postgres) SetApplicationScore(ctx context.Context, id string, score int) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE applications SET score = $2 WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkApplicationInterviewed flips interview_done, moves the application to
// applied, and optionally records a score in the same update.
func (p *Postgres) MarkApplicationInterviewed(ctx context.Context, id string, score *int) error {
	tag, err := p.pool.Exec(ctx, `
UPDATE applications
SET interview_done = TRUE, status = $2, score = COALESCE($3, score)
WHERE id = $1`, id, models.StatusApplied, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApplicationStatus records a coordinator decision.
func (p *Postgres) SetApplicationStatus(ctx context.Context, id string, status models.Status) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- system settings ----------------

// GetSettings reads the singleton freeze/publish row.
func (p *Postgres) GetSettings(ctx context.Context) (*models.SystemSettings, error) {
	var s models.SystemSettings
	err := p.pool.QueryRow(ctx,
		`SELECT frozen, results_published, updated_at FROM system_settings WHERE id = 1`).
		Scan(&s.Frozen, &s.ResultsPublished, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetFrozen toggles the global freeze flag.
func (p *Postgres) SetFrozen(ctx context.Context, frozen bool) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE system_settings SET frozen = $1, updated_at = now() WHERE id = 1`, frozen)
	return err
}

// PublishResults sets frozen and results_published together in a single
// update; there is no published-but-unfrozen state.
func (p *Postgres) PublishResults(ctx context.Context) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE system_settings SET frozen = TRUE, results_published = TRUE, updated_at = now() WHERE id = 1`)
	return err
}
