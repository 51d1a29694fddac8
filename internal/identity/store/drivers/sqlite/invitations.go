package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

type invitationsRepo struct {
	q *queries
}

func (r *invitationsRepo) FindOpenByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	row, err := r.q.GetOpenInvitationByEmail(ctx, foldKey(email))
	if err != nil {
		return domain.Invitation{}, mapErr(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) ExistsOpenByEmail(ctx context.Context, email string) (bool, error) {
	ok, err := r.q.OpenInvitationExistsByEmail(ctx, foldKey(email))
	return ok, mapErr(err)
}

func (r *invitationsRepo) Save(ctx context.Context, inv domain.Invitation) error {
	now := time.Now()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = now
	}
	if len(inv.Statuses) == 0 {
		inv.Statuses = []domain.InvitationStatus{domain.InvitationPending}
	}

	return mapErr(r.q.UpsertInvitation(ctx, invitationRow{
		ID:        inv.ID,
		Email:     inv.Email,
		EmailKey:  foldKey(inv.Email),
		InviterID: inv.InviterID,
		DateSent:  formatDay(inv.DateSent),
		Statuses:  joinWords(inv.Statuses),
		Status:    string(inv.Status()),
		CreatedAt: formatTime(inv.CreatedAt),
		UpdatedAt: formatTime(inv.UpdatedAt),
	}))
}

func (r *invitationsRepo) PageByInviter(
	ctx context.Context,
	inviterID string,
	req store.PageRequest,
) (store.Page[domain.Invitation], error) {
	rows, err := r.q.ListInvitationsByInviter(ctx, inviterID, req.Size+1, req.Offset())
	if err != nil {
		return store.Page[domain.Invitation]{}, mapErr(err)
	}

	last := len(rows) <= req.Size
	if !last {
		rows = rows[:req.Size]
	}

	items := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		inv, err := mapInvitation(row)
		if err != nil {
			return store.Page[domain.Invitation]{}, err
		}
		items = append(items, inv)
	}
	return store.Page[domain.Invitation]{Items: items, Last: last}, nil
}

func mapInvitation(row invitationRow) (domain.Invitation, error) {
	inv := domain.Invitation{
		ID:        row.ID,
		Email:     row.Email,
		InviterID: row.InviterID,
		Statuses:  splitWords[domain.InvitationStatus](row.Statuses),
	}

	var err error
	if inv.DateSent, err = parseDay(row.DateSent); err != nil {
		return domain.Invitation{}, fmt.Errorf("%w: invitation %s date_sent: %w", store.ErrUnavailable, row.ID, err)
	}
	if inv.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return domain.Invitation{}, fmt.Errorf("%w: invitation %s created_at: %w", store.ErrUnavailable, row.ID, err)
	}
	if inv.UpdatedAt, err = parseTime(row.UpdatedAt); err != nil {
		return domain.Invitation{}, fmt.Errorf("%w: invitation %s updated_at: %w", store.ErrUnavailable, row.ID, err)
	}
	return inv, nil
}
