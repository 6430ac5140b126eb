package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/notify"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderLeads(w io.Writer, leads []models.Lead) {
	if len(leads) == 0 {
		fmt.Fprintln(w, "No leads found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tEMAIL\tPRIORITY\tSTATUS\tOWNER")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.LeadName, dash(l.Company), dash(l.Email), l.Priority, l.Status, dash(l.OwnerName))
	}
	tw.Flush()
}

func renderLead(w io.Writer, l models.Lead) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", l.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", l.LeadName)
	fmt.Fprintf(tw, "Company:\t%s\n", dash(l.Company))
	fmt.Fprintf(tw, "Email:\t%s\n", dash(l.Email))
	fmt.Fprintf(tw, "Mobile:\t%s\n", dash(l.Mobile))
	fmt.Fprintf(tw, "Priority:\t%s\n", l.Priority)
	fmt.Fprintf(tw, "Status:\t%s\n", l.Status)
	fmt.Fprintf(tw, "Owner:\t%s\n", dash(l.OwnerName))
	fmt.Fprintf(tw, "Created:\t%s\n", dash(l.CreatedAt))
	tw.Flush()
}

// renderStats prints an aggregate object with its keys sorted. Nested
// values are printed as they decoded.
func renderStats(w io.Writer, s models.Stats) {
	if len(s) == 0 {
		fmt.Fprintln(w, "No statistics available.")
		return
	}
	tw := newTable(w)
	for _, k := range slices.Sorted(maps.Keys(s)) {
		v := s[k]
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			v = int64(f)
		}
		fmt.Fprintf(tw, "%s:\t%v\n", k, v)
	}
	tw.Flush()
}

func renderUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Email, u.Role.Label())
	}
	tw.Flush()
}

func renderAuditLogs(w io.Writer, logs []models.AuditLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No audit logs found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tACTION\tUSER\tAT")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Action, dash(l.UserName), dash(l.CreatedAt))
	}
	tw.Flush()
}

func renderPage(w io.Writer, p models.Page) {
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", p.Page, max(p.Pages, 1), p.Total)
}

func renderNotes(w io.Writer, notes []notify.Notification) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return
	}
	tw := newTable(w)
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.Timestamp.Local().Format(time.TimeOnly), n.Level, n.Message, n.ID)
	}
	tw.Flush()
}

func renderFilters(w io.Writer, f models.LeadFilters) {
	tw := newTable(w)
	fmt.Fprintf(tw, "status:\t%s\n", dash(string(f.Status)))
	fmt.Fprintf(tw, "priority:\t%s\n", dash(string(f.Priority)))
	fmt.Fprintf(tw, "owner:\t%s\n", dash(string(f.OwnerID)))
	fmt.Fprintf(tw, "search:\t%s\n", dash(f.Search))
	tw.Flush()
}
