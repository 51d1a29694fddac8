package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

type InvitationService struct {
	Store    store.Store
	Notifier Notifier
	BaseURL  string

	// PageSize is the store page size used while listing.
	PageSize int
}

// Invite records that inviter proposed email join and notifies the address.
func (s *InvitationService) Invite(ctx context.Context, inviter domain.Account, email string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the address
	email = strings.TrimSpace(email)
	if err := domain.ValidateEmail(email); err != nil {
		return domain.Invitation{}, invalidInput(err)
	}

	// 2. Already a member?
	taken, err := s.Store.Accounts().ExistsByEmail(ctx, email)
	if err != nil {
		return domain.Invitation{}, err
	}
	if taken {
		log.Warn("invitation for registered email", slog.String("inviter", inviter.Username))
		return domain.Invitation{}, ErrEmailTaken
	}

	// 3. Already invited?
	open, err := s.Store.Invitations().ExistsOpenByEmail(ctx, email)
	if err != nil {
		return domain.Invitation{}, err
	}
	if open {
		log.Warn("duplicate invitation", slog.String("inviter", inviter.Username))
		return domain.Invitation{}, ErrAlreadyInvited
	}

	// 4. Persist; the partial unique index settles concurrent invites
	now := time.Now()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     email,
		InviterID: inviter.ID,
		DateSent:  domain.Day(now),
		Statuses:  []domain.InvitationStatus{domain.InvitationPending},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Invitations().Save(ctx, inv); err != nil {
		return domain.Invitation{}, conflictFromStore(err)
	}

	// 5. Notify
	s.Notifier.Send(ctx, invitationMessage(s.BaseURL, inviter, email))

	log.Info("invitation sent",
		slog.String("invitation_id", inv.ID),
		slog.String("inviter", inviter.Username),
	)
	return inv, nil
}

// List returns every invitation sent by account, newest first. Paging
// through the store is internal.
func (s *InvitationService) List(ctx context.Context, account domain.Account) ([]domain.Invitation, error) {
	fetch := func(ctx context.Context, req store.PageRequest) (store.Page[domain.Invitation], error) {
		return s.Store.Invitations().PageByInviter(ctx, account.ID, req)
	}

	invs, err := store.Collect(store.All(ctx, s.PageSize, fetch))
	if err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []domain.Invitation{}
	}
	return invs, nil
}
