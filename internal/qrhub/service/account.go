package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/mailer"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/observability"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/cryptox"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

// deleteConcurrency bounds parallel project deletes during account removal.
const deleteConcurrency = 4

var (
	absentHashOnce sync.Once
	absentHash     string
)

// absentAccountHash is verified against when no account matches, so an
// unknown email costs the same argon2id work as a wrong password.
func absentAccountHash() string {
	absentHashOnce.Do(func() {
		if h, err := cryptox.HashPassword("qrhub-absent-account"); err == nil {
			absentHash = h
		}
	})
	return absentHash
}

type AccountService struct {
	Store   store.Store
	Mailer  mailer.Mailer
	Issuer  *jwtx.Issuer
	Metrics *observability.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Birthday string
}

// Register creates an unverified account and mails its verification code.
// When the mail fails the account is kept and ErrMailDelivery is returned
// alongside it; the caller can resend later.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return domain.Account{}, ErrInvalidInput
	}

	if _, err := s.Store.Accounts().FindByEmail(ctx, email); err == nil {
		return domain.Account{}, ErrAccountExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}
	code, expiresAt, err := cryptox.GenerateCode(s.now())
	if err != nil {
		return domain.Account{}, err
	}

	now := s.now()
	acct := domain.Account{
		ID:           email,
		Kind:         domain.KindAccount,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Birthday:     strings.TrimSpace(in.Birthday),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	acct.SetPendingVerification(&domain.PendingToken{Code: code, ExpiresAt: expiresAt})

	acct, err = s.Store.Accounts().Create(ctx, acct)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Account{}, ErrAccountExists
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}
	log.Info("account registered", slog.String("account_id", acct.ID))

	if err := s.send(ctx, acct.Email, code, mailer.KindVerification); err != nil {
		return acct, err
	}
	return acct, nil
}

// Authenticate checks credentials. An unknown email and a wrong password
// are indistinguishable to the caller. Legacy hashes are upgraded to
// argon2id on success.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Account{}, ErrInvalidInput
	}

	acct, err := s.Store.Accounts().FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, absentAccountHash())
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := cryptox.VerifyPassword(password, acct.PasswordHash); err != nil {
		log.Info("login rejected", slog.String("account_id", acct.ID))
		return domain.Account{}, ErrInvalidCredentials
	}
	if !acct.Verified {
		return domain.Account{}, ErrNotVerified
	}

	if cryptox.NeedsRehash(acct.PasswordHash) {
		acct = s.rehash(ctx, acct, password)
	}
	return acct, nil
}

func (s *AccountService) rehash(ctx context.Context, acct domain.Account, password string) domain.Account {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("rehash failed", slog.String("account_id", acct.ID), slog.Any("error", err))
		return acct
	}

	upgraded := acct
	upgraded.PasswordHash = hash
	upgraded.UpdatedAt = s.now()

	written, err := s.Store.Accounts().Replace(ctx, upgraded)
	if err != nil {
		// The old hash still works; the next login tries again.
		log.Warn("rehash not persisted", slog.String("account_id", acct.ID), slog.Any("error", err))
		return acct
	}
	log.Info("legacy password upgraded", slog.String("account_id", acct.ID))
	return written
}

// Login authenticates and mints a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.Account, error) {
	acct, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", domain.Account{}, err
	}
	token, err := s.IssueSession(acct)
	if err != nil {
		return "", domain.Account{}, err
	}
	return token, acct, nil
}

// IssueSession refuses unverified accounts.
func (s *AccountService) IssueSession(acct domain.Account) (string, error) {
	if !acct.Verified {
		return "", ErrNotVerified
	}
	token, _, err := s.Issuer.Mint(acct.ID, acct.Email)
	if err != nil {
		return "", fmt.Errorf("mint session: %w", err)
	}
	return token, nil
}

// VerifyEmail consumes the pending verification code.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) error {
	acct, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if acct.Verified {
		return ErrAlreadyVerified
	}

	now := s.now()
	if err := acct.PendingVerification().Check(strings.TrimSpace(code), now); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}

	acct.MarkVerified(now)
	if _, err := s.Store.Accounts().Replace(ctx, acct); err != nil {
		return s.conflict(writeErr(err, ErrAccountNotFound))
	}
	slogx.FromContext(ctx).Info("email verified", slog.String("account_id", acct.ID))
	return nil
}

// ResendVerification replaces the pending verification code with a new one.
func (s *AccountService) ResendVerification(ctx context.Context, email string) error {
	acct, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if acct.Verified {
		return ErrAlreadyVerified
	}

	code, expiresAt, err := cryptox.GenerateCode(s.now())
	if err != nil {
		return err
	}
	acct.SetPendingVerification(&domain.PendingToken{Code: code, ExpiresAt: expiresAt})
	acct.UpdatedAt = s.now()

	if _, err := s.Store.Accounts().Replace(ctx, acct); err != nil {
		return s.conflict(writeErr(err, ErrAccountNotFound))
	}
	return s.send(ctx, acct.Email, code, mailer.KindVerification)
}

// ForgotPassword issues a reset code and mails it.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	acct, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}

	code, expiresAt, err := cryptox.GenerateCode(s.now())
	if err != nil {
		return err
	}
	acct.SetPendingReset(&domain.PendingToken{Code: code, ExpiresAt: expiresAt})
	acct.UpdatedAt = s.now()

	if _, err := s.Store.Accounts().Replace(ctx, acct); err != nil {
		return s.conflict(writeErr(err, ErrAccountNotFound))
	}
	return s.send(ctx, acct.Email, code, mailer.KindReset)
}

// ResetPassword consumes a reset code and sets a new password. A missing
// account is reported as ErrInvalidCode so the endpoint cannot be used to
// probe for emails.
func (s *AccountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	acct, err := s.lookup(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}

	now := s.now()
	if err := acct.PendingReset().Check(strings.TrimSpace(code), now); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if cryptox.VerifyPassword(newPassword, acct.PasswordHash) == nil {
		return ErrSamePassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	acct.PasswordHash = hash
	acct.SetPendingReset(nil)
	acct.UpdatedAt = now

	if _, err := s.Store.Accounts().Replace(ctx, acct); err != nil {
		return s.conflict(writeErr(err, ErrInvalidCode))
	}
	slogx.FromContext(ctx).Info("password reset", slog.String("account_id", acct.ID))
	return nil
}

// UpdateProfile applies patch to the account owning email.
func (s *AccountService) UpdateProfile(ctx context.Context, email string, patch domain.AccountPatch) (domain.Account, error) {
	acct, err := s.lookup(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	if !patch.Apply(&acct, s.now()) {
		return acct, nil
	}

	written, err := s.Store.Accounts().Replace(ctx, acct)
	if err != nil {
		return domain.Account{}, s.conflict(writeErr(err, ErrAccountNotFound))
	}
	return written, nil
}

// DeleteByEmail removes the account only. Projects it owns are left behind,
// matching the unauthenticated legacy endpoint.
func (s *AccountService) DeleteByEmail(ctx context.Context, email string) error {
	acct, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if err := s.Store.Accounts().Delete(ctx, acct.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// DeleteWithProjects removes every project owned by accountID and then the
// account itself. The account survives if any project delete fails, so a
// retry can finish the job.
func (s *AccountService) DeleteWithProjects(ctx context.Context, accountID string) (int, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Accounts().Get(ctx, accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("get account: %w", err)
	}

	projects, err := s.Store.Projects().ListByOwner(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("list projects: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, p := range projects {
		g.Go(func() error {
			err := s.Store.Projects().Delete(gctx, p.ID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("delete project %s: %w", p.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.Store.Accounts().Delete(ctx, accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("delete account: %w", err)
	}

	log.Info("account deleted",
		slog.String("account_id", accountID),
		slog.Int("projects", len(projects)),
	)
	return len(projects), nil
}

func (s *AccountService) lookup(ctx context.Context, email string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Account{}, ErrInvalidInput
	}

	acct, err := s.Store.Accounts().FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return acct, nil
}

func (s *AccountService) send(ctx context.Context, to, code string, kind mailer.Kind) error {
	err := s.Mailer.Send(ctx, mailer.Message{To: to, Code: code, Kind: kind})
	s.Metrics.MailSent(string(kind), err)
	if err != nil {
		slogx.FromContext(ctx).Error("mail delivery failed",
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	return nil
}

func (s *AccountService) conflict(err error) error {
	if errors.Is(err, ErrConflict) {
		s.Metrics.Conflict("accounts")
	}
	return err
}
