package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{`"abc-1"`, "abc-1", false},
		{`42`, "42", false},
		{`null`, "", false},
		{`{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestLead_DecodesBackendShape(t *testing.T) {
	raw := `{"id":7,"leadname":"Jane Doe","company":"Acme","email":"jane@acme.com",
		"mobile":"+15551234567","priority":"Medium","status":"New",
		"owner_id":3,"owner_name":"Bob","created_at":"2026-01-02T03:04:05Z"}`

	var l Lead
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, Lead{
		ID: "7", LeadName: "Jane Doe", Company: "Acme", Email: "jane@acme.com",
		Mobile: "+15551234567", Priority: PriorityMedium, Status: StatusNew,
		OwnerID: "3", OwnerName: "Bob", CreatedAt: "2026-01-02T03:04:05Z",
	}, l)
}

func TestEnums(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRole("salesexecutive")
	assert.Error(t, err)

	for _, p := range Priorities {
		assert.True(t, p.Valid())
	}
	_, err = ParsePriority("Urgent")
	assert.Error(t, err)

	assert.Len(t, Statuses, 7)
	_, err = ParseStatus("won")
	assert.Error(t, err, "status values are case-sensitive")

	assert.Equal(t, "Sales Executive", RoleSalesExecutive.Label())
}

func TestAuthResponse_Grant(t *testing.T) {
	top := AuthResponse{Token: "t1", User: &User{ID: "1"}}
	tok, u := top.Grant()
	assert.Equal(t, "t1", tok)
	assert.Equal(t, ID("1"), u.ID)

	nested := AuthResponse{Data: &AuthGrant{Token: "t2", User: &User{ID: "2"}}}
	tok, u = nested.Grant()
	assert.Equal(t, "t2", tok)
	assert.Equal(t, ID("2"), u.ID)

	tok, u = AuthResponse{}.Grant()
	assert.Empty(t, tok)
	assert.Nil(t, u)
}

func TestLeadFilters_MergeAndQuery(t *testing.T) {
	f := LeadFilters{Status: StatusNew, Search: "acme"}
	f = f.Merge(LeadFilters{Priority: PriorityHigh, OwnerID: "9"})

	assert.Equal(t, LeadFilters{Status: StatusNew, Priority: PriorityHigh, OwnerID: "9", Search: "acme"}, f)
	assert.Equal(t, "owner_id=9&priority=High&status=New", f.Query().Encode())
	assert.Empty(t, LeadFilters{Search: "x"}.Query().Encode())
}

func TestPageQuery_Values(t *testing.T) {
	assert.Equal(t, "limit=10&page=1&search=", PageQuery{}.Values().Encode())
	assert.Equal(t, "limit=25&page=3&search=bob", PageQuery{Page: 3, Limit: 25, Search: "bob"}.Values().Encode())
}

func TestStats_Int(t *testing.T) {
	var s Stats
	require.NoError(t, json.Unmarshal([]byte(`{"total":12,"label":"x"}`), &s))
	assert.Equal(t, 12, s.Int("total"))
	assert.Equal(t, 0, s.Int("label"))
	assert.Equal(t, 0, s.Int("absent"))
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ann", User{Name: "Ann", Username: "ann1", Email: "a@x.io"}.DisplayName())
	assert.Equal(t, "ann1", User{Username: "ann1", Email: "a@x.io"}.DisplayName())
	assert.Equal(t, "a@x.io", User{Email: "a@x.io"}.DisplayName())
}

func TestInputFrom_RoundTripsEditableFields(t *testing.T) {
	l := Lead{ID: "1", LeadName: "A", Company: "B", Email: "c@d.ef", Mobile: "123", Priority: PriorityLow, Status: StatusWon, OwnerID: "5"}
	in := InputFrom(l)
	assert.Equal(t, LeadInput{LeadName: "A", Company: "B", Email: "c@d.ef", Mobile: "123", Priority: PriorityLow, Status: StatusWon, OwnerID: "5"}, in)
	assert.Equal(t, LeadInput{Priority: PriorityMedium, Status: StatusNew}, NewLeadInput())
}
