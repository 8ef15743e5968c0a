// Package models defines client-side data models used by the SessionKeeper
// client. Profiles are server-owned: they are decoded from API replies and
// never constructed locally.
package models

import (
	"github.com/dmitrijs2005/sessionkeeper/internal/timex"
	"github.com/google/uuid"
)

// AccountType distinguishes human accounts from automation accounts.
type AccountType string

const (
	AccountTypeUser           AccountType = "user"
	AccountTypeServiceAccount AccountType = "service-account"
)

// Profile is the authenticated user's record returned by the profile endpoint.
//
// Disabled accounts can still hold a token issued before they were disabled.
type Profile struct {
	Email         string         `json:"email"`
	FullName      *string        `json:"full_name"`
	Disabled      bool           `json:"disabled"`
	AccountType   AccountType    `json:"account_type,omitempty"`
	UID           uuid.UUID      `json:"uid"`
	Organizations []Organization `json:"organizations"`
}

// DisplayName returns the full name when the server has one, else the email.
func (p *Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}

// DefaultOrganization returns the organization flagged as default, if any.
func (p *Profile) DefaultOrganization() (*Organization, bool) {
	for i := range p.Organizations {
		o := &p.Organizations[i]
		if o.IsDefaultOrg != nil && *o.IsDefaultOrg {
			return o, true
		}
	}
	return nil, false
}

// Organization is a membership listed on the profile. Timestamps may come
// without an offset; those are read as UTC.
type Organization struct {
	PublicID     string     `json:"public_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	IsDefaultOrg *bool      `json:"is_default_org,omitempty"`
	UID          uuid.UUID  `json:"uid"`
	Projects     []Project  `json:"projects"`
	CreatedAt    timex.Time `json:"created_at"`
	UpdatedAt    timex.Time `json:"updated_at"`
}

// Project belongs to an Organization.
type Project struct {
	PublicID    string  `json:"public_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
