package api

import (
	"context"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
)

// TokenSource yields the bearer token for authenticated requests. An empty
// token means "not logged in"; the request is then sent without the header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type Client interface {
	Register(ctx context.Context, r models.Registration) (models.AuthResponse, error)
	Login(ctx context.Context, c models.Credentials) (models.AuthResponse, error)

	ListLeads(ctx context.Context, f models.LeadFilters) (models.Result[[]models.Lead], error)
	GetLead(ctx context.Context, id models.ID) (models.Result[models.Lead], error)
	CreateLead(ctx context.Context, in models.LeadInput) (models.Result[models.Lead], error)
	UpdateLead(ctx context.Context, id models.ID, in models.LeadInput) (models.Result[models.Lead], error)
	UpdateLeadStatus(ctx context.Context, id models.ID, s models.Status) (models.Result[models.Lead], error)
	UpdateLeadPriority(ctx context.Context, id models.ID, p models.Priority) (models.Result[models.Lead], error)
	DeleteLead(ctx context.Context, id models.ID) (models.Result[struct{}], error)
	MyLeads(ctx context.Context) (models.Result[[]models.Lead], error)
	LeadStats(ctx context.Context) (models.Result[models.Stats], error)

	AdminDashboard(ctx context.Context) (models.Stats, error)
	AdminManagers(ctx context.Context, q models.PageQuery) (models.ManagersPage, error)
	AdminSalesExecutives(ctx context.Context, q models.PageQuery) (models.SalesExecutivesPage, error)
	AdminSalesRecords(ctx context.Context, q models.PageQuery) (models.SalesRecordsPage, error)
	AdminAuditLogs(ctx context.Context, q models.PageQuery) (models.AuditLogsPage, error)

	Users(ctx context.Context, role models.Role) ([]models.User, error)
}
