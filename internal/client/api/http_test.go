package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	query   string
	auth    string
	reqID   string
	ctype   string
	body    map[string]any
	leadID  string
	hasAuth bool
}

func newBackend(t *testing.T, setup func(r chi.Router, got *captured)) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			got.method = req.Method
			got.path = req.URL.Path
			got.query = req.URL.RawQuery
			got.auth = req.Header.Get("Authorization")
			_, got.hasAuth = req.Header["Authorization"]
			got.reqID = req.Header.Get("X-Request-ID")
			got.ctype = req.Header.Get("Content-Type")
			got.body = nil
			if req.Body != nil {
				_ = json.NewDecoder(req.Body).Decode(&got.body)
			}
			next.ServeHTTP(w, req)
		})
	})
	setup(r, got)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, got
}

func reply(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func staticToken(tok string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) { return tok, nil })
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("/api")
	require.Error(t, err)

	_, err = NewHTTPClient("http://localhost:5000/")
	require.NoError(t, err)
}

func TestListLeads_SendsBearerAndFilters(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/leads", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{
				"success": true,
				"count":   2,
				"data": []map[string]any{
					{"id": 1, "leadname": "A", "priority": "High", "status": "New"},
					{"id": "2", "leadname": "B", "priority": "Low", "status": "Won"},
				},
			})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("tok-1")))
	require.NoError(t, err)

	res, err := c.ListLeads(context.Background(), models.LeadFilters{Status: models.StatusNew, OwnerID: "4", Search: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", got.auth)
	assert.Equal(t, "application/json", got.ctype)
	assert.NotEmpty(t, got.reqID)
	assert.Equal(t, "owner_id=4&status=New", got.query)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Data, 2)
	assert.Equal(t, models.ID("1"), res.Data[0].ID)
	assert.Equal(t, models.ID("2"), res.Data[1].ID)
}

func TestAuthenticatedCall_NoTokenOmitsHeader(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/leads/my/leads", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("")))
	require.NoError(t, err)

	_, err = c.MyLeads(context.Background())
	require.NoError(t, err)
	assert.False(t, got.hasAuth)
}

func TestLogin_DoesNotSendToken(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{
				"success": true,
				"token":   "jwt",
				"user":    map[string]any{"id": 9, "email": "a@b.co", "role": "manager"},
			})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("stale")))
	require.NoError(t, err)

	resp, err := c.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	assert.False(t, got.hasAuth)
	assert.Equal(t, map[string]any{"email": "a@b.co", "password": "pw"}, got.body)
	tok, u := resp.Grant()
	assert.Equal(t, "jwt", tok)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleManager, u.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router, _ *captured) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
		})
	})

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "bad"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", Message(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestFailures_UseFallbackMessage(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router, _ *captured) {
		r.Post("/api/leads", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>boom</html>"))
		})
		r.Get("/api/leads/{id}", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusNotFound, map[string]any{"success": false})
		})
		r.Get("/api/leads/stats/overview", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{"success": false})
		})
	})

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.CreateLead(ctx, models.NewLeadInput())
	assert.ErrorIs(t, err, common.ErrRejected)
	assert.Equal(t, "Failed to create lead", Message(err))

	_, err = c.GetLead(ctx, "42")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "Failed to fetch lead", Message(err))

	_, err = c.LeadStats(ctx)
	assert.ErrorIs(t, err, common.ErrRejected)
	assert.Equal(t, "Failed to fetch lead statistics", Message(err))
}

func TestMalformedSuccessBody(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/leads/my/leads", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})
	})

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)

	_, err = c.MyLeads(context.Background())
	assert.ErrorIs(t, err, common.ErrMalformedResponse)
	assert.Equal(t, "Failed to fetch your leads", Message(err))
}

func TestEmptySuccessBody(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Delete("/api/leads/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/api/leads/my/leads", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/api/users", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/api/leads/stats/overview", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("tok")))
	require.NoError(t, err)
	ctx := context.Background()

	res, err := c.DeleteLead(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, models.Result[struct{}]{}, res)
	assert.Equal(t, http.MethodDelete, got.method)

	mine, err := c.MyLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine.Data)

	us, err := c.Users(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, us)

	_, err = c.LeadStats(ctx)
	assert.ErrorIs(t, err, common.ErrRejected)
	assert.Equal(t, "Failed to fetch lead statistics", Message(err))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url)
	require.NoError(t, err)

	_, err = c.ListLeads(context.Background(), models.LeadFilters{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnavailable)
	assert.NotEmpty(t, Message(err))
}

func TestCancelledContext(t *testing.T) {
	release := make(chan struct{})
	srv, _ := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/leads", func(w http.ResponseWriter, _ *http.Request) {
			<-release
			reply(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
		})
	})
	defer close(release)

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = c.ListLeads(ctx, models.LeadFilters{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "request cancelled", Message(err))
}

func TestTimeoutOption(t *testing.T) {
	release := make(chan struct{})
	srv, _ := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/admin/dashboard", func(w http.ResponseWriter, _ *http.Request) {
			<-release
		})
	})
	defer close(release)

	c, err := NewHTTPClient(srv.URL, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = c.AdminDashboard(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "request timed out", Message(err))
}

func TestLeadMutations_Paths(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, got *captured) {
		lead := func(w http.ResponseWriter, req *http.Request) {
			got.leadID = chi.URLParam(req, "id")
			reply(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "ok",
				"data":    map[string]any{"id": chi.URLParam(req, "id"), "leadname": "X", "priority": "High", "status": "Won"},
			})
		}
		r.Put("/api/leads/{id}", lead)
		r.Patch("/api/leads/{id}/status", lead)
		r.Patch("/api/leads/{id}/priority", lead)
		r.Delete("/api/leads/{id}", func(w http.ResponseWriter, req *http.Request) {
			got.leadID = chi.URLParam(req, "id")
			reply(w, http.StatusOK, map[string]any{"success": true, "message": "Lead deleted"})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("t")))
	require.NoError(t, err)
	ctx := context.Background()

	res, err := c.UpdateLead(ctx, "5", models.LeadInput{LeadName: "X"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "5", got.leadID)
	assert.Equal(t, "X", got.body["leadname"])
	assert.Equal(t, "ok", res.Message)

	_, err = c.UpdateLeadStatus(ctx, "6", models.StatusWon)
	require.NoError(t, err)
	assert.Equal(t, "/api/leads/6/status", got.path)
	assert.Equal(t, map[string]any{"status": "Won"}, got.body)

	_, err = c.UpdateLeadPriority(ctx, "7", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, "/api/leads/7/priority", got.path)
	assert.Equal(t, map[string]any{"priority": "High"}, got.body)

	del, err := c.DeleteLead(ctx, "a b")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "a b", got.leadID)
	assert.Equal(t, "Lead deleted", del.Message)
}

func TestAdminListings(t *testing.T) {
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/admin/sales-records", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"leads":      []map[string]any{{"id": 1, "leadname": "L", "priority": "Low", "status": "Lost"}},
					"pagination": map[string]any{"page": 2, "limit": 5, "total": 6, "pages": 2},
				},
			})
		})
		r.Get("/api/admin/audit-logs", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"auditLogs":  []map[string]any{{"id": 3, "action": "LOGIN"}},
					"pagination": map[string]any{"page": 1, "limit": 10, "total": 1, "pages": 1},
				},
			})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("t")))
	require.NoError(t, err)
	ctx := context.Background()

	recs, err := c.AdminSalesRecords(ctx, models.PageQuery{Page: 2, Limit: 5, Status: "Lost"})
	require.NoError(t, err)
	assert.Equal(t, "limit=5&page=2&search=&status=Lost", got.query)
	assert.Equal(t, models.Page{Page: 2, Limit: 5, Total: 6, Pages: 2}, recs.Pagination)
	require.Len(t, recs.Leads, 1)

	logs, err := c.AdminAuditLogs(ctx, models.PageQuery{Action: "LOGIN"})
	require.NoError(t, err)
	assert.Equal(t, "action=LOGIN&limit=10&page=1&search=", got.query)
	require.Len(t, logs.AuditLogs, 1)
	assert.Equal(t, "LOGIN", logs.AuditLogs[0].Action)
}

func TestUsers_EnvelopeOrBareList(t *testing.T) {
	bare := false
	srv, got := newBackend(t, func(r chi.Router, _ *captured) {
		r.Get("/api/users", func(w http.ResponseWriter, _ *http.Request) {
			users := []map[string]any{{"id": 1, "email": "s@x.io", "role": "sales_executive"}}
			if bare {
				reply(w, http.StatusOK, users)
				return
			}
			reply(w, http.StatusOK, map[string]any{"success": true, "data": users})
		})
	})

	c, err := NewHTTPClient(srv.URL, WithTokenSource(staticToken("t")))
	require.NoError(t, err)

	us, err := c.Users(context.Background(), models.RoleSalesExecutive)
	require.NoError(t, err)
	assert.Equal(t, "role=sales_executive", got.query)
	require.Len(t, us, 1)

	bare = true
	us, err = c.Users(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got.query)
	require.Len(t, us, 1)
	assert.Equal(t, models.RoleSalesExecutive, us[0].Role)
}
