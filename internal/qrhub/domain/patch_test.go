package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestAccountPatchIgnoresEmpty(t *testing.T) {
	before := time.Unix(100, 0).UTC()
	now := time.Unix(200, 0).UTC()
	acct := domain.Account{Name: "Ada", Phone: "555", UpdatedAt: before}

	changed := domain.AccountPatch{Name: ptr(""), Phone: ptr("   "), Birthday: nil}.Apply(&acct, now)
	require.False(t, changed)
	require.Equal(t, "Ada", acct.Name)
	require.Equal(t, "555", acct.Phone)
	require.Equal(t, before, acct.UpdatedAt)
}

func TestAccountPatchOverwritesProvided(t *testing.T) {
	now := time.Unix(200, 0).UTC()
	acct := domain.Account{Name: "Ada", Phone: "555"}

	changed := domain.AccountPatch{Name: ptr("Grace"), Birthday: ptr("1906-12-09")}.Apply(&acct, now)
	require.True(t, changed)
	require.Equal(t, "Grace", acct.Name)
	require.Equal(t, "555", acct.Phone)
	require.Equal(t, "1906-12-09", acct.Birthday)
	require.Equal(t, now, acct.UpdatedAt)
}

func TestProjectPatchColorsOnly(t *testing.T) {
	now := time.Unix(200, 0).UTC()
	p := domain.Project{Name: "menu", Payload: "example.com", FgColor: "#000000"}

	patch := domain.ProjectPatch{Name: ptr("hijack"), Payload: ptr("evil.example"), FgColor: ptr("#ff0000")}
	require.True(t, patch.ColorsOnly().Apply(&p, now))

	require.Equal(t, "menu", p.Name)
	require.Equal(t, "example.com", p.Payload)
	require.Equal(t, "#ff0000", p.FgColor)
}

func TestProjectApplyDefaults(t *testing.T) {
	var p domain.Project
	p.ApplyDefaults()

	require.Equal(t, domain.DefaultFgColor, p.FgColor)
	require.Equal(t, domain.DefaultBgColor, p.BgColor)
	require.NotNil(t, p.ScanEvents)
}
