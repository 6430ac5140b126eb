package models

import (
	"net/url"
	"strconv"
)

// Page describes one page of an admin listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func DefaultPage() Page {
	return Page{Page: 1, Limit: 10}
}

// PageQuery parameterises the admin listings. Status applies to sales
// records, Action to audit logs.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
	Action string
}

// Values encodes the query; page and limit default to 1 and 10, and the
// search term is always sent, possibly empty.
func (q PageQuery) Values() url.Values {
	page, limit := q.Page, q.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	v.Set("search", q.Search)
	return v
}

type ManagersPage struct {
	Managers   []User `json:"managers"`
	Pagination Page   `json:"pagination"`
}

type SalesExecutivesPage struct {
	SalesExecutives []User `json:"salesExecutives"`
	Pagination      Page   `json:"pagination"`
}

type SalesRecordsPage struct {
	Leads      []Lead `json:"leads"`
	Pagination Page   `json:"pagination"`
}

// AuditLog is one entry of the admin audit trail.
type AuditLog struct {
	ID        ID     `json:"id"`
	Action    string `json:"action"`
	UserID    ID     `json:"user_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	Details   any    `json:"details,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type AuditLogsPage struct {
	AuditLogs  []AuditLog `json:"auditLogs"`
	Pagination Page       `json:"pagination"`
}
