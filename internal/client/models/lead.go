// Package models defines the CRM records exchanged with the backend and held
// by the client stores.
package models

import (
	"fmt"
	"net/url"
)

// Priority of a lead.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Status is the pipeline stage of a lead.
type Status string

const (
	StatusNew         Status = "New"
	StatusContacted   Status = "Contacted"
	StatusQualified   Status = "Qualified"
	StatusProposal    Status = "Proposal"
	StatusNegotiation Status = "Negotiation"
	StatusWon         Status = "Won"
	StatusLost        Status = "Lost"
)

var Statuses = []Status{
	StatusNew, StatusContacted, StatusQualified, StatusProposal,
	StatusNegotiation, StatusWon, StatusLost,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Lead is a prospective customer record. The backend owns it; the client
// only ever holds copies confirmed by a server response.
type Lead struct {
	ID        ID       `json:"id"`
	LeadName  string   `json:"leadname"`
	Company   string   `json:"company,omitempty"`
	Email     string   `json:"email,omitempty"`
	Mobile    string   `json:"mobile,omitempty"`
	Priority  Priority `json:"priority"`
	Status    Status   `json:"status"`
	OwnerID   ID       `json:"owner_id,omitempty"`
	OwnerName string   `json:"owner_name,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// LeadInput is the body of create and full-update requests.
type LeadInput struct {
	LeadName string   `json:"leadname"`
	Company  string   `json:"company"`
	Email    string   `json:"email"`
	Mobile   string   `json:"mobile"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`
	OwnerID  ID       `json:"owner_id,omitempty"`
}

// NewLeadInput returns the form defaults: Medium priority, New status.
func NewLeadInput() LeadInput {
	return LeadInput{Priority: PriorityMedium, Status: StatusNew}
}

// InputFrom prefills an edit form from an existing lead.
func InputFrom(l Lead) LeadInput {
	return LeadInput{
		LeadName: l.LeadName,
		Company:  l.Company,
		Email:    l.Email,
		Mobile:   l.Mobile,
		Priority: l.Priority,
		Status:   l.Status,
		OwnerID:  l.OwnerID,
	}
}

// LeadFilters narrows the lead listing. Search is kept client-side only.
type LeadFilters struct {
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
	OwnerID  ID       `json:"owner_id"`
	Search   string   `json:"search"`
}

// Merge overlays the non-empty fields of o onto f.
func (f LeadFilters) Merge(o LeadFilters) LeadFilters {
	if o.Status != "" {
		f.Status = o.Status
	}
	if o.Priority != "" {
		f.Priority = o.Priority
	}
	if o.OwnerID != "" {
		f.OwnerID = o.OwnerID
	}
	if o.Search != "" {
		f.Search = o.Search
	}
	return f
}

// Query encodes the server-side filters; empty ones are omitted.
func (f LeadFilters) Query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.OwnerID != "" {
		q.Set("owner_id", string(f.OwnerID))
	}
	return q
}

// Pagination of the lead listing.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultPagination matches the backend's default page.
func DefaultPagination() Pagination {
	return Pagination{Total: 0, Page: 1, Limit: 10}
}

// Stats is an aggregate object whose shape the backend decides.
type Stats map[string]any

// Int reads a numeric stat, zero when absent or not a number.
func (s Stats) Int(key string) int {
	switch v := s[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
