package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

type accountsRepo struct {
	q *queries
}

func (r *accountsRepo) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	row, err := r.q.GetAccountByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return mapAccount(row)
}

func (r *accountsRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, foldKey(email))
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return mapAccount(row)
}

func (r *accountsRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ok, err := r.q.AccountExistsByUsername(ctx, foldKey(username))
	return ok, mapErr(err)
}

func (r *accountsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ok, err := r.q.AccountExistsByEmail(ctx, foldKey(email))
	return ok, mapErr(err)
}

func (r *accountsRepo) FindByVerificationCode(ctx context.Context, code string) (domain.Account, error) {
	row, err := r.q.GetAccountByVerificationCode(ctx, code)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return mapAccount(row)
}

func (r *accountsRepo) ExistsByVerificationCode(ctx context.Context, code string) (bool, error) {
	ok, err := r.q.AccountExistsByVerificationCode(ctx, code)
	return ok, mapErr(err)
}

func (r *accountsRepo) Save(ctx context.Context, a domain.Account) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return mapErr(r.q.UpsertAccount(ctx, accountToRow(a)))
}

func (r *accountsRepo) DeleteByID(ctx context.Context, id string) error {
	n, err := r.q.DeleteAccount(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.q.CountAccounts(ctx)
	return n, mapErr(err)
}

func (r *accountsRepo) CountEnabled(ctx context.Context) (int64, error) {
	n, err := r.q.CountEnabledAccounts(ctx)
	return n, mapErr(err)
}

func (r *accountsRepo) Page(ctx context.Context, req store.PageRequest) (store.Page[domain.Account], error) {
	// Fetch one extra row to learn whether another page follows.
	rows, err := r.q.ListAccounts(ctx, req.Size+1, req.Offset())
	if err != nil {
		return store.Page[domain.Account]{}, mapErr(err)
	}

	last := len(rows) <= req.Size
	if !last {
		rows = rows[:req.Size]
	}

	items := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		a, err := mapAccount(row)
		if err != nil {
			return store.Page[domain.Account]{}, err
		}
		items = append(items, a)
	}
	return store.Page[domain.Account]{Items: items, Last: last}, nil
}

func (r *accountsRepo) AnyWithRole(ctx context.Context, role domain.Role) (bool, error) {
	ok, err := r.q.AccountExistsWithRole(ctx, string(role))
	return ok, mapErr(err)
}

func accountToRow(a domain.Account) accountRow {
	row := accountRow{
		ID:               a.ID,
		Username:         a.Username,
		PasswordHash:     a.PasswordHash,
		Email:            a.Email,
		PendingEmail:     mapStringNull(a.PendingEmail),
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		RegistrationDate: formatDay(a.RegistrationDate),
		PhotoReference:   mapStringNull(a.PhotoReference),
		Roles:            joinWords(a.Roles),
		VerificationCode: a.VerificationCode,
		Enabled:          boolInt(a.Enabled),
		CreatedAt:        formatTime(a.CreatedAt),
		UpdatedAt:        formatTime(a.UpdatedAt),
		UsernameKey:      foldKey(a.Username),
		EmailKey:         foldKey(a.Email),
	}
	if a.Birthday != nil {
		row.Birthday = mapStringNull(formatDay(*a.Birthday))
	}
	return row
}

func mapAccount(row accountRow) (domain.Account, error) {
	a := domain.Account{
		ID:               row.ID,
		Username:         row.Username,
		PasswordHash:     row.PasswordHash,
		Email:            row.Email,
		PendingEmail:     mapNullString(row.PendingEmail),
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		PhotoReference:   mapNullString(row.PhotoReference),
		Roles:            splitWords[domain.Role](row.Roles),
		VerificationCode: row.VerificationCode,
		Enabled:          row.Enabled != 0,
	}

	var err error
	if a.RegistrationDate, err = parseDay(row.RegistrationDate); err != nil {
		return domain.Account{}, fmt.Errorf("%w: account %s registration date: %w", store.ErrUnavailable, row.ID, err)
	}
	if row.Birthday.Valid {
		b, err := parseDay(row.Birthday.String)
		if err != nil {
			return domain.Account{}, fmt.Errorf("%w: account %s birthday: %w", store.ErrUnavailable, row.ID, err)
		}
		a.Birthday = &b
	}
	if a.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("%w: account %s created_at: %w", store.ErrUnavailable, row.ID, err)
	}
	if a.UpdatedAt, err = parseTime(row.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("%w: account %s updated_at: %w", store.ErrUnavailable, row.ID, err)
	}
	return a, nil
}
