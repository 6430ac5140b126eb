package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

func leadPath(id models.ID, rest ...string) []string {
	return append([]string{"api", "leads", url.PathEscape(string(id))}, rest...)
}

func (c *HTTPClient) auth(ctx context.Context, path string, body any, fallback string) (models.AuthResponse, error) {
	raw, err := c.send(ctx, request{
		method:   http.MethodPost,
		path:     []string{"api", "auth", path},
		body:     body,
		fallback: fallback,
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.AuthResponse{}, &APIError{StatusCode: http.StatusOK, Message: fallback, kind: common.ErrMalformedResponse}
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (models.AuthResponse, error) {
	return c.auth(ctx, "register", r, "Registration failed")
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (models.AuthResponse, error) {
	return c.auth(ctx, "login", cr, "Login failed")
}

func (c *HTTPClient) ListLeads(ctx context.Context, f models.LeadFilters) (models.Result[[]models.Lead], error) {
	return call[[]models.Lead](ctx, c, request{
		method:   http.MethodGet,
		path:     []string{"api", "leads"},
		query:    f.Query(),
		auth:     true,
		fallback: "Failed to fetch leads",
	})
}

func (c *HTTPClient) GetLead(ctx context.Context, id models.ID) (models.Result[models.Lead], error) {
	return call[models.Lead](ctx, c, request{
		method:   http.MethodGet,
		path:     leadPath(id),
		auth:     true,
		fallback: "Failed to fetch lead",
	})
}

func (c *HTTPClient) CreateLead(ctx context.Context, in models.LeadInput) (models.Result[models.Lead], error) {
	return call[models.Lead](ctx, c, request{
		method:   http.MethodPost,
		path:     []string{"api", "leads"},
		body:     in,
		auth:     true,
		fallback: "Failed to create lead",
	})
}

func (c *HTTPClient) UpdateLead(ctx context.Context, id models.ID, in models.LeadInput) (models.Result[models.Lead], error) {
	return call[models.Lead](ctx, c, request{
		method:   http.MethodPut,
		path:     leadPath(id),
		body:     in,
		auth:     true,
		fallback: "Failed to update lead",
	})
}

func (c *HTTPClient) UpdateLeadStatus(ctx context.Context, id models.ID, s models.Status) (models.Result[models.Lead], error) {
	return call[models.Lead](ctx, c, request{
		method:   http.MethodPatch,
		path:     leadPath(id, "status"),
		body:     map[string]models.Status{"status": s},
		auth:     true,
		fallback: "Failed to update lead status",
	})
}

func (c *HTTPClient) UpdateLeadPriority(ctx context.Context, id models.ID, p models.Priority) (models.Result[models.Lead], error) {
	return call[models.Lead](ctx, c, request{
		method:   http.MethodPatch,
		path:     leadPath(id, "priority"),
		body:     map[string]models.Priority{"priority": p},
		auth:     true,
		fallback: "Failed to update lead priority",
	})
}

func (c *HTTPClient) DeleteLead(ctx context.Context, id models.ID) (models.Result[struct{}], error) {
	return call[struct{}](ctx, c, request{
		method:   http.MethodDelete,
		path:     leadPath(id),
		auth:     true,
		fallback: "Failed to delete lead",
	})
}

func (c *HTTPClient) MyLeads(ctx context.Context) (models.Result[[]models.Lead], error) {
	return call[[]models.Lead](ctx, c, request{
		method:   http.MethodGet,
		path:     []string{"api", "leads", "my", "leads"},
		auth:     true,
		fallback: "Failed to fetch your leads",
	})
}

func (c *HTTPClient) LeadStats(ctx context.Context) (models.Result[models.Stats], error) {
	return call[models.Stats](ctx, c, request{
		method:   http.MethodGet,
		path:     []string{"api", "leads", "stats", "overview"},
		auth:     true,
		fallback: "Failed to fetch lead statistics",
	})
}

func (c *HTTPClient) AdminDashboard(ctx context.Context) (models.Stats, error) {
	res, err := call[models.Stats](ctx, c, request{
		method:   http.MethodGet,
		path:     []string{"api", "admin", "dashboard"},
		auth:     true,
		fallback: "Failed to fetch dashboard statistics",
	})
	return res.Data, err
}

func adminList[T any](ctx context.Context, c *HTTPClient, path string, q url.Values, fallback string) (T, error) {
	res, err := call[T](ctx, c, request{
		method:   http.MethodGet,
		path:     []string{"api", "admin", path},
		query:    q,
		auth:     true,
		fallback: fallback,
	})
	return res.Data, err
}

func (c *HTTPClient) AdminManagers(ctx context.Context, q models.PageQuery) (models.ManagersPage, error) {
	return adminList[models.ManagersPage](ctx, c, "managers", q.Values(), "Failed to fetch managers")
}

func (c *HTTPClient) AdminSalesExecutives(ctx context.Context, q models.PageQuery) (models.SalesExecutivesPage, error) {
	return adminList[models.SalesExecutivesPage](ctx, c, "sales-executives", q.Values(), "Failed to fetch sales executives")
}

func (c *HTTPClient) AdminSalesRecords(ctx context.Context, q models.PageQuery) (models.SalesRecordsPage, error) {
	v := q.Values()
	v.Set("status", q.Status)
	return adminList[models.SalesRecordsPage](ctx, c, "sales-records", v, "Failed to fetch sales records")
}

func (c *HTTPClient) AdminAuditLogs(ctx context.Context, q models.PageQuery) (models.AuditLogsPage, error) {
	v := q.Values()
	v.Set("action", q.Action)
	return adminList[models.AuditLogsPage](ctx, c, "audit-logs", v, "Failed to fetch audit logs")
}

// Users lists users, optionally narrowed to one role. The list may arrive
// under data or as the bare body.
func (c *HTTPClient) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	var q url.Values
	fallback := "Failed to fetch users"
	if role != "" {
		q = url.Values{"role": {string(role)}}
		if role == models.RoleSalesExecutive {
			fallback = "Failed to fetch sales executives"
		}
	}

	raw, err := c.send(ctx, request{
		method:   http.MethodGet,
		path:     []string{"api", "users"},
		query:    q,
		auth:     true,
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var env models.Envelope[[]models.User]
	if err := json.Unmarshal(raw, &env); err == nil {
		return env.Data, nil
	}
	var bare []models.User
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: fallback, kind: common.ErrMalformedResponse}
	}
	return bare, nil
}
