// Package validate checks forms before anything is sent to the backend.
// Failures are reported per field and never reach the stores.
package validate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return common.ErrValidation }

// Err returns e as an error, or nil when there are no field errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func Email(s string) bool { return emailRe.MatchString(s) }

// Mobile accepts 7 to 15 digits with an optional leading plus; spaces and
// dashes are ignored.
func Mobile(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	return mobileRe.MatchString(s)
}

// Lead validates the create and edit forms.
func Lead(in models.LeadInput) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.LeadName) == "" {
		errs["leadname"] = "Lead name is required"
	}
	if in.Email != "" && !Email(in.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if in.Mobile != "" && !Mobile(in.Mobile) {
		errs["mobile"] = "Mobile number is invalid"
	}
	if in.Priority != "" && !in.Priority.Valid() {
		errs["priority"] = "Priority must be one of High, Medium, Low"
	}
	if in.Status != "" && !in.Status.Valid() {
		errs["status"] = "Unknown status"
	}
	return errs
}

// ManagerLead is the stricter form managers use when assigning a lead:
// contact details and an owner are mandatory.
func ManagerLead(in models.LeadInput) FieldErrors {
	errs := Lead(in)
	if strings.TrimSpace(in.Company) == "" {
		errs["company"] = "Company is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "Email is required"
	}
	if strings.TrimSpace(in.Mobile) == "" {
		errs["mobile"] = "Mobile is required"
	}
	if in.OwnerID == "" {
		errs["owner_id"] = "Please assign a sales executive"
	}
	return errs
}

func Login(c models.Credentials) FieldErrors {
	errs := FieldErrors{}
	switch {
	case strings.TrimSpace(c.Email) == "":
		errs["email"] = "Email is required"
	case !Email(c.Email):
		errs["email"] = "Please enter a valid email address"
	}
	if c.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

func Register(r models.Registration) FieldErrors {
	errs := Login(models.Credentials{Email: r.Email, Password: r.Password})
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !r.Role.Valid() {
		errs["role"] = "Please select a role"
	}
	return errs
}
