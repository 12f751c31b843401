package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/mailer"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/qrhub/pkg/cryptox"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "qrhub-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store    store.Store
	mail     *mailer.Memory
	clock    *clock
	accounts *AccountService
	projects *ProjectService
}

// wrap lets a test decorate the projects container.
func newFixture(t *testing.T, wrap ...func(store.Container) store.Container) *fixture {
	t.Helper()

	db, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "svc.db") + "?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations())

	var projects store.Container = db.Container("projects")
	for _, w := range wrap {
		projects = w(projects)
	}
	st := store.New(db.Container("accounts"), projects, db.Close)
	t.Cleanup(func() { _ = st.Close() })

	clk := newClock()
	iss, err := jwtx.NewIssuer(testSecret, jwtx.WithClock(clk.Now))
	require.NoError(t, err)

	mail := &mailer.Memory{}
	return &fixture{
		store: st,
		mail:  mail,
		clock: clk,
		accounts: &AccountService{
			Store:  st,
			Mailer: mail,
			Issuer: iss,
			Now:    clk.Now,
		},
		projects: &ProjectService{
			Store:   st,
			BaseURL: "http://qr.test",
			Now:     clk.Now,
		},
	}
}

// seedAccount writes an account directly, bypassing registration.
func (f *fixture) seedAccount(t *testing.T, email, passwordHash string, verified bool) domain.Account {
	t.Helper()
	acct, err := f.store.Accounts().Create(context.Background(), domain.Account{
		ID:           email,
		Name:         "Seed",
		Email:        email,
		PasswordHash: passwordHash,
		Verified:     verified,
		CreatedAt:    f.clock.Now(),
	})
	require.NoError(t, err)
	return acct
}

// conflictingContainer fails the first n replaces with a stale etag.
type conflictingContainer struct {
	store.Container

	mu sync.Mutex
	n  int
}

func (c *conflictingContainer) Replace(ctx context.Context, it store.Item, ifMatch string) (store.Item, error) {
	c.mu.Lock()
	if c.n > 0 {
		c.n--
		c.mu.Unlock()
		return store.Item{}, store.ErrPreconditionFailed
	}
	c.mu.Unlock()
	return c.Container.Replace(ctx, it, ifMatch)
}
