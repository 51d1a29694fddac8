package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/google/uuid"
)

// AccountService owns the account state machine. Every account mutation
// goes through Accounts.Write so the lookup cache is evicted before the
// method returns.
type AccountService struct {
	Store    store.Store
	Accounts *cache.Repository
	Tokens   *TokenService
	Hasher   *cryptox.PasswordHasher
	Notifier Notifier
	Photos   PhotoStore

	// BaseURL prefixes links in notifications.
	BaseURL string

	ExportPageSize int
}

// Session is a freshly minted token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Roles     domain.Roles
}

// Signup registers a disabled account and sends the verification link.
// Public signup cannot request ADMIN.
func (s *AccountService) Signup(ctx context.Context, data domain.SignupData) (domain.Account, error) {
	data.Normalize()
	if data.Roles.Has(domain.RoleAdmin) {
		slogx.FromContext(ctx).Warn("signup requested admin role", slog.String("username", data.Username))
		return domain.Account{}, ErrForbidden
	}

	a, err := s.create(ctx, data, false)
	if err != nil {
		return domain.Account{}, err
	}

	s.Notifier.Send(ctx, verificationMessage(s.BaseURL, a))
	return a, nil
}

// create validates, hashes and persists a new account, closing any open
// invitation for its email in the same transaction.
func (s *AccountService) create(ctx context.Context, data domain.SignupData, enabled bool) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate shape
	data.Normalize()
	if err := data.Validate(); err != nil {
		log.Debug("signup rejected", slog.Any("error", err))
		return domain.Account{}, invalidInput(err)
	}

	// 2. Fast path uniqueness checks; the unique indexes have the final say
	taken, err := s.Store.Accounts().ExistsByUsername(ctx, data.Username)
	if err != nil {
		return domain.Account{}, err
	}
	if taken {
		return domain.Account{}, ErrUsernameTaken
	}
	taken, err = s.Store.Accounts().ExistsByEmail(ctx, data.Email)
	if err != nil {
		return domain.Account{}, err
	}
	if taken {
		return domain.Account{}, ErrEmailTaken
	}

	// 3. Hash the password and pick a verification code
	hash, err := s.Hasher.Hash(data.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}
	code, err := s.newVerificationCode(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	now := time.Now()
	a := domain.Account{
		ID:               idx.New().String(),
		Username:         data.Username,
		PasswordHash:     hash,
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Birthday:         data.Birthday,
		RegistrationDate: domain.Day(now),
		Roles:            data.Roles,
		VerificationCode: code,
		Enabled:          enabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if a.Birthday != nil {
		day := domain.Day(*a.Birthday)
		a.Birthday = &day
	}

	// 4. Persist and consume any open invitation
	err = s.write(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().Save(ctx, a); err != nil {
			return err
		}

		inv, err := tx.Invitations().FindOpenByEmail(ctx, a.Email)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		inv.Close()
		inv.UpdatedAt = now
		if err := tx.Invitations().Save(ctx, inv); err != nil {
			return err
		}
		log.Info("invitation closed by signup", slog.String("invitation_id", inv.ID))
		return nil
	})
	if err != nil {
		err = conflictFromStore(err)
		if errors.Is(err, ErrValidationConflict) {
			log.Warn("signup lost uniqueness race", slog.String("username", a.Username), slog.Any("error", err))
		} else {
			log.Error("failed to persist account", slog.Any("error", err))
		}
		return domain.Account{}, err
	}

	log.Info("account created",
		slog.String("account_id", a.ID),
		slog.String("username", a.Username),
		slog.Bool("enabled", a.Enabled),
	)
	return a, nil
}

func (s *AccountService) newVerificationCode(ctx context.Context) (string, error) {
	for range 3 {
		code := uuid.NewString()
		used, err := s.Store.Accounts().ExistsByVerificationCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !used {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique verification code")
}

// Verify enables the account holding code. A second Verify with the same
// code succeeds without changing anything.
func (s *AccountService) Verify(ctx context.Context, code string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Account{}, ErrNoSuchCode
	}

	var a domain.Account
	err := s.write(ctx, func(tx store.Tx) error {
		var err error
		a, err = tx.Accounts().FindByVerificationCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchCode
		}
		if err != nil {
			return err
		}
		if a.Enabled {
			return nil
		}

		a.Enabled = true
		a.UpdatedAt = time.Now()
		return tx.Accounts().Save(ctx, a)
	})
	if err != nil {
		if errors.Is(err, ErrNoSuchCode) {
			log.Warn("verification with unknown code")
		}
		return domain.Account{}, err
	}

	log.Info("account verified", slog.String("username", a.Username))
	return a, nil
}

// RequestEmailChange parks newEmail as pending and mails a confirmation link
// to it. The link carries the account's existing verification code.
func (s *AccountService) RequestEmailChange(ctx context.Context, account domain.Account, newEmail string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	newEmail = strings.TrimSpace(newEmail)
	if err := domain.ValidateEmail(newEmail); err != nil {
		return domain.Account{}, invalidInput(err)
	}

	taken, err := s.Store.Accounts().ExistsByEmail(ctx, newEmail)
	if err != nil {
		return domain.Account{}, err
	}
	if taken {
		log.Warn("email change to address in use", slog.String("username", account.Username))
		return domain.Account{}, ErrEmailTaken
	}

	a, err := s.mutate(ctx, account.Username, func(a *domain.Account) error {
		a.PendingEmail = newEmail
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	s.Notifier.Send(ctx, emailChangeMessage(s.BaseURL, a))
	log.Info("email change requested", slog.String("username", a.Username))
	return a, nil
}

// ConfirmEmailChange promotes the pending email of the account holding code.
func (s *AccountService) ConfirmEmailChange(ctx context.Context, code string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Account{}, ErrNoSuchCode
	}

	var a domain.Account
	err := s.write(ctx, func(tx store.Tx) error {
		var err error
		a, err = tx.Accounts().FindByVerificationCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchCode
		}
		if err != nil {
			return err
		}
		if !a.HasPendingEmail() {
			return ErrNoPendingEmail
		}

		a.Email = a.PendingEmail
		a.PendingEmail = ""
		a.UpdatedAt = time.Now()
		return tx.Accounts().Save(ctx, a)
	})
	if err != nil {
		return domain.Account{}, conflictFromStore(err)
	}

	log.Info("email change confirmed", slog.String("username", a.Username))
	return a, nil
}

// UpdateProfile changes the caller's own names.
func (s *AccountService) UpdateProfile(ctx context.Context, account domain.Account, firstName, lastName string) (domain.Account, error) {
	return s.updateNames(ctx, account.Username, firstName, lastName)
}

// AdminUpdateProfile changes the names of any account.
func (s *AccountService) AdminUpdateProfile(ctx context.Context, username, firstName, lastName string) (domain.Account, error) {
	return s.updateNames(ctx, username, firstName, lastName)
}

func (s *AccountService) updateNames(ctx context.Context, username, firstName, lastName string) (domain.Account, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if err := domain.ValidateName(firstName); err != nil {
		return domain.Account{}, invalidInput(fmt.Errorf("first_name: %w", err))
	}
	if err := domain.ValidateName(lastName); err != nil {
		return domain.Account{}, invalidInput(fmt.Errorf("last_name: %w", err))
	}

	a, err := s.mutate(ctx, username, func(a *domain.Account) error {
		a.FirstName = firstName
		a.LastName = lastName
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	slogx.FromContext(ctx).Info("profile updated", slog.String("username", username))
	return a, nil
}

// Delete removes the account. Invitations it sent are kept.
func (s *AccountService) Delete(ctx context.Context, username string) error {
	err := s.write(ctx, func(tx store.Tx) error {
		a, err := tx.Accounts().FindByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchUser
		}
		if err != nil {
			return err
		}
		return tx.Accounts().DeleteByID(ctx, a.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("account deleted", slog.String("username", username))
	return nil
}

// Signin treats login as an email first and as a username otherwise.
func (s *AccountService) Signin(ctx context.Context, login, password string) (Session, error) {
	log := slogx.FromContext(ctx)
	login = strings.TrimSpace(login)

	// 1. Resolve login to an account
	a, err := s.Store.Accounts().FindByEmail(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		a, err = s.Accounts.Get(ctx, login)
	}
	if errors.Is(err, store.ErrNotFound) {
		log.Info("signin for unknown login")
		return Session{}, ErrBadCredentials
	}
	if err != nil {
		return Session{}, err
	}

	// 2. Check the password before revealing anything about the account
	if err := s.Hasher.Verify(password, a.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable", slog.String("username", a.Username), slog.Any("error", err))
		}
		log.Info("signin with wrong password", slog.String("username", a.Username))
		return Session{}, ErrBadCredentials
	}

	// 3. Only verified accounts get a token
	if !a.Enabled {
		log.Info("signin before verification", slog.String("username", a.Username))
		return Session{}, ErrNotVerified
	}

	return s.issue(a)
}

// Refresh mints a new token with the account's current roles.
func (s *AccountService) Refresh(ctx context.Context, account domain.Account) (Session, error) {
	return s.issue(account)
}

func (s *AccountService) issue(a domain.Account) (Session, error) {
	token, exp, err := s.Tokens.Issue(a.Username, a.Roles)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, Username: a.Username, Roles: a.Roles}, nil
}

// Search is a cached lookup by username.
func (s *AccountService) Search(ctx context.Context, username string) (domain.Account, error) {
	a, err := s.Accounts.Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrNoSuchUser
	}
	return a, err
}

// Stats summarises the account population.
type Stats struct {
	Accounts int64 `json:"accounts"`
	Verified int64 `json:"verified"`
}

func (s *AccountService) Stats(ctx context.Context) (Stats, error) {
	total, err := s.Store.Accounts().Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	verified, err := s.Store.Accounts().CountEnabled(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Accounts: total, Verified: verified}, nil
}

// write runs fn through the repository. An eviction failure after a
// successful commit is logged, not returned: the mutation is durable and
// replaying it would fail or repeat side effects.
func (s *AccountService) write(ctx context.Context, fn func(tx store.Tx) error) error {
	err := s.Accounts.Write(ctx, fn)
	if errors.Is(err, cache.ErrEvictFailed) {
		slogx.FromContext(ctx).Error("account cache eviction failed after commit", slog.Any("error", err))
		return nil
	}
	return err
}

// mutate re-reads username inside a transaction, applies fn and saves.
func (s *AccountService) mutate(ctx context.Context, username string, fn func(a *domain.Account) error) (domain.Account, error) {
	var a domain.Account
	err := s.write(ctx, func(tx store.Tx) error {
		var err error
		a, err = tx.Accounts().FindByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchUser
		}
		if err != nil {
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		a.UpdatedAt = time.Now()
		return tx.Accounts().Save(ctx, a)
	})
	if err != nil {
		return domain.Account{}, conflictFromStore(err)
	}
	return a, nil
}
