package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/crmkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_OnlyForAdmins(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, "")
	ctx := context.Background()

	require.ErrorIs(t, a.Admin(ctx, nil), common.ErrNotAuthenticated)

	loginAs(t, a, "mia@x.io")
	require.ErrorIs(t, a.Admin(ctx, nil), common.ErrForbidden)
}

func TestAdmin_Dashboard(t *testing.T) {
	b := newBackend(t)
	a, out := newTestApp(t, b, "")
	loginAs(t, a, "ann@x.io")
	out.Reset()

	require.NoError(t, a.Admin(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "totalLeads:")
	assert.Contains(t, s, "Managers: 1, sales executives: 1")
}

func TestAdmin_AuditLogsWithQuery(t *testing.T) {
	b := newBackend(t)
	a, out := newTestApp(t, b, "")
	loginAs(t, a, "ann@x.io")
	out.Reset()

	require.NoError(t, a.Admin(context.Background(), []string{"audit", "page=2", "limit=5", "action=LOGIN"}))

	q := b.query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "LOGIN", q.Get("action"))
	assert.Contains(t, out.String(), "LOGIN")
	assert.Contains(t, out.String(), "Page 2 of 2 (6 total)")
}

func TestAdmin_BadArguments(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, "")
	ctx := context.Background()
	loginAs(t, a, "ann@x.io")

	require.ErrorContains(t, a.Admin(ctx, []string{"managers", "page=x"}), "page")
	require.ErrorContains(t, a.Admin(ctx, []string{"payroll"}), `unknown admin section "payroll"`)
}

func TestUsers(t *testing.T) {
	b := newBackend(t)
	a, out := newTestApp(t, b, "")
	ctx := context.Background()
	loginAs(t, a, "mia@x.io")

	out.Reset()
	require.NoError(t, a.Users(ctx, []string{"sales"}))
	assert.Equal(t, "sales_executive", b.query().Get("role"))
	assert.Contains(t, out.String(), "Sam")
	assert.NotContains(t, out.String(), "Ann")

	out.Reset()
	require.NoError(t, a.Users(ctx, nil))
	assert.False(t, b.query().Has("role"))
	assert.Contains(t, out.String(), "Ann")
	assert.Len(t, a.state.Users.Snapshot().Users, 3)
}
