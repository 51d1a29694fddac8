package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries { return &queries{db: db} }

const accountColumns = `id, username, password_hash, email, pending_email, first_name, last_name,
	birthday, registration_date, photo_reference, roles, verification_code, enabled,
	created_at, updated_at`

type accountRow struct {
	ID               string
	Username         string
	PasswordHash     string
	Email            string
	PendingEmail     sql.NullString
	FirstName        string
	LastName         string
	Birthday         sql.NullString
	RegistrationDate string
	PhotoReference   sql.NullString
	Roles            string
	VerificationCode string
	Enabled          int64
	CreatedAt        string
	UpdatedAt        string

	// Written only; see foldKey.
	UsernameKey string
	EmailKey    string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (accountRow, error) {
	var r accountRow
	err := s.Scan(
		&r.ID, &r.Username, &r.PasswordHash, &r.Email, &r.PendingEmail,
		&r.FirstName, &r.LastName, &r.Birthday, &r.RegistrationDate,
		&r.PhotoReference, &r.Roles, &r.VerificationCode, &r.Enabled,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const getAccountByUsername = `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`

func (q *queries) GetAccountByUsername(ctx context.Context, username string) (accountRow, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByUsername, username))
}

const getAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email_key = ?`

func (q *queries) GetAccountByEmail(ctx context.Context, email string) (accountRow, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByEmail, email))
}

const getAccountByVerificationCode = `SELECT ` + accountColumns + ` FROM accounts WHERE verification_code = ?`

func (q *queries) GetAccountByVerificationCode(ctx context.Context, code string) (accountRow, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByVerificationCode, code))
}

const accountExistsByUsername = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username_key = ?)`

func (q *queries) AccountExistsByUsername(ctx context.Context, username string) (bool, error) {
	return q.exists(ctx, accountExistsByUsername, username)
}

const accountExistsByEmail = `SELECT EXISTS (SELECT 1 FROM accounts WHERE email_key = ?)`

func (q *queries) AccountExistsByEmail(ctx context.Context, email string) (bool, error) {
	return q.exists(ctx, accountExistsByEmail, email)
}

const accountExistsByVerificationCode = `SELECT EXISTS (SELECT 1 FROM accounts WHERE verification_code = ?)`

func (q *queries) AccountExistsByVerificationCode(ctx context.Context, code string) (bool, error) {
	return q.exists(ctx, accountExistsByVerificationCode, code)
}

const accountExistsWithRole = `SELECT EXISTS (SELECT 1 FROM accounts WHERE ' ' || roles || ' ' LIKE '% ' || ? || ' %')`

func (q *queries) AccountExistsWithRole(ctx context.Context, role string) (bool, error) {
	return q.exists(ctx, accountExistsWithRole, role)
}

const upsertAccount = `INSERT INTO accounts (` + accountColumns + `, username_key, email_key)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	username          = excluded.username,
	username_key      = excluded.username_key,
	password_hash     = excluded.password_hash,
	email             = excluded.email,
	email_key         = excluded.email_key,
	pending_email     = excluded.pending_email,
	first_name        = excluded.first_name,
	last_name         = excluded.last_name,
	birthday          = excluded.birthday,
	registration_date = excluded.registration_date,
	photo_reference   = excluded.photo_reference,
	roles             = excluded.roles,
	verification_code = excluded.verification_code,
	enabled           = excluded.enabled,
	updated_at        = excluded.updated_at`

func (q *queries) UpsertAccount(ctx context.Context, r accountRow) error {
	_, err := q.db.ExecContext(ctx, upsertAccount,
		r.ID, r.Username, r.PasswordHash, r.Email, r.PendingEmail,
		r.FirstName, r.LastName, r.Birthday, r.RegistrationDate,
		r.PhotoReference, r.Roles, r.VerificationCode, r.Enabled,
		r.CreatedAt, r.UpdatedAt, r.UsernameKey, r.EmailKey,
	)
	return err
}

const deleteAccount = `DELETE FROM accounts WHERE id = ?`

func (q *queries) DeleteAccount(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countAccounts = `SELECT COUNT(*) FROM accounts`

func (q *queries) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAccounts).Scan(&n)
	return n, err
}

const countEnabledAccounts = `SELECT COUNT(*) FROM accounts WHERE enabled = 1`

func (q *queries) CountEnabledAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEnabledAccounts).Scan(&n)
	return n, err
}

const listAccounts = `SELECT ` + accountColumns + ` FROM accounts ORDER BY username ASC, id ASC LIMIT ? OFFSET ?`

func (q *queries) ListAccounts(ctx context.Context, limit, offset int) ([]accountRow, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []accountRow
	for rows.Next() {
		r, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const invitationColumns = `id, email, inviter_id, date_sent, statuses, status, created_at, updated_at`

type invitationRow struct {
	ID        string
	Email     string
	InviterID string
	DateSent  string
	Statuses  string
	Status    string
	CreatedAt string
	UpdatedAt string

	EmailKey string // written only
}

func scanInvitation(s rowScanner) (invitationRow, error) {
	var r invitationRow
	err := s.Scan(&r.ID, &r.Email, &r.InviterID, &r.DateSent, &r.Statuses, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const getOpenInvitationByEmail = `SELECT ` + invitationColumns + ` FROM invitations
WHERE email_key = ? AND status = 'PENDING'`

func (q *queries) GetOpenInvitationByEmail(ctx context.Context, email string) (invitationRow, error) {
	return scanInvitation(q.db.QueryRowContext(ctx, getOpenInvitationByEmail, email))
}

const openInvitationExistsByEmail = `SELECT EXISTS (
	SELECT 1 FROM invitations WHERE email_key = ? AND status = 'PENDING'
)`

func (q *queries) OpenInvitationExistsByEmail(ctx context.Context, email string) (bool, error) {
	return q.exists(ctx, openInvitationExistsByEmail, email)
}

const upsertInvitation = `INSERT INTO invitations (` + invitationColumns + `, email_key)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	email      = excluded.email,
	email_key  = excluded.email_key,
	inviter_id = excluded.inviter_id,
	date_sent  = excluded.date_sent,
	statuses   = excluded.statuses,
	status     = excluded.status,
	updated_at = excluded.updated_at`

func (q *queries) UpsertInvitation(ctx context.Context, r invitationRow) error {
	_, err := q.db.ExecContext(ctx, upsertInvitation,
		r.ID, r.Email, r.InviterID, r.DateSent, r.Statuses, r.Status, r.CreatedAt, r.UpdatedAt, r.EmailKey,
	)
	return err
}

const listInvitationsByInviter = `SELECT ` + invitationColumns + ` FROM invitations
WHERE inviter_id = ?
ORDER BY date_sent DESC, status DESC, id DESC
LIMIT ? OFFSET ?`

func (q *queries) ListInvitationsByInviter(ctx context.Context, inviterID string, limit, offset int) ([]invitationRow, error) {
	rows, err := q.db.QueryContext(ctx, listInvitationsByInviter, inviterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []invitationRow
	for rows.Next() {
		r, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *queries) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&ok)
	return ok, err
}
