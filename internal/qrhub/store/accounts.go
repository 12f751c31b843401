package store

import (
	"context"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
)

type Accounts interface {
	// Get is a point read by id, which is the email.
	Get(ctx context.Context, id string) (domain.Account, error)

	// FindByEmail matches the email field ignoring case, since older
	// records kept the address as typed. An exact match wins.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	Create(ctx context.Context, a domain.Account) (domain.Account, error)

	// Replace writes a back conditioned on a.ETag.
	Replace(ctx context.Context, a domain.Account) (domain.Account, error)

	Delete(ctx context.Context, id string) error

	// ListWithPendingTokens returns accounts carrying a verification or
	// reset code, for housekeeping.
	ListWithPendingTokens(ctx context.Context) ([]domain.Account, error)
}

type accountsRepo struct{ c Container }

func (r *accountsRepo) Get(ctx context.Context, id string) (domain.Account, error) {
	it, err := r.c.Read(ctx, id, id)
	if err != nil {
		return domain.Account{}, err
	}
	return toAccount(it)
}

func (r *accountsRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	items, err := r.c.Query(ctx, Query{Conditions: []Condition{EqFold("email", email)}})
	if err != nil {
		return domain.Account{}, err
	}
	if len(items) == 0 {
		return domain.Account{}, ErrNotFound
	}

	var first domain.Account
	for i, it := range items {
		a, err := toAccount(it)
		if err != nil {
			return domain.Account{}, err
		}
		if a.Email == email {
			return a, nil
		}
		if i == 0 {
			first = a
		}
	}
	return first, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	if a.Kind == "" {
		a.Kind = domain.KindAccount
	}
	it, err := encode(a.ID, a)
	if err != nil {
		return domain.Account{}, err
	}
	created, err := r.c.Create(ctx, it)
	if err != nil {
		return domain.Account{}, err
	}
	a.ETag = created.ETag
	return a, nil
}

func (r *accountsRepo) Replace(ctx context.Context, a domain.Account) (domain.Account, error) {
	it, err := encode(a.ID, a)
	if err != nil {
		return domain.Account{}, err
	}
	written, err := r.c.Replace(ctx, it, a.ETag)
	if err != nil {
		return domain.Account{}, err
	}
	a.ETag = written.ETag
	return a, nil
}

func (r *accountsRepo) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, id, id)
}

func (r *accountsRepo) ListWithPendingTokens(ctx context.Context) ([]domain.Account, error) {
	seen := make(map[string]struct{})
	var out []domain.Account

	for _, field := range []string{"verificationExpires", "resetExpires"} {
		items, err := r.c.Query(ctx, Query{Conditions: []Condition{Defined(field)}})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}

			a, err := toAccount(it)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func toAccount(it Item) (domain.Account, error) {
	var a domain.Account
	if err := decode(it, &a); err != nil {
		return domain.Account{}, err
	}
	a.ETag = it.ETag
	return a, nil
}
