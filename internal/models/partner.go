package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner is a connected partner storefront. A partner row is created on the
// first successful token exchange, updated on reinstall and soft-deleted on
// uninstall; rows are never hard-deleted.
type Partner struct {
	ID           string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShopDomain   string     `json:"shop_domain" gorm:"uniqueIndex;not null"`
	AccessToken  *string    `json:"-"`
	Scope        string     `json:"scope"`
	Active       bool       `json:"active" gorm:"default:true"`
	Deleted      bool       `json:"deleted" gorm:"default:false"`
	DeletedAt    *time.Time `json:"deleted_at"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type PartnerState string

const (
	PartnerStateActive      PartnerState = "ACTIVE"
	PartnerStateRevoked     PartnerState = "REVOKED"
	PartnerStateSoftDeleted PartnerState = "SOFT_DELETED"
)

// State collapses the lifecycle flags into one explicit state. Soft-deletion
// wins over everything; a missing token means revoked no matter what the
// active flag says.
func (p *Partner) State() PartnerState {
	switch {
	case p.Deleted:
		return PartnerStateSoftDeleted
	case p.AccessToken == nil || *p.AccessToken == "":
		return PartnerStateRevoked
	default:
		return PartnerStateActive
	}
}

// Usable reports whether the partner may be used for API calls.
func (p *Partner) Usable() bool {
	return p.State() == PartnerStateActive && p.Active
}

// Install applies a fresh credential. Reinstalling a soft-deleted partner
// reactivates it.
func (p *Partner) Install(token, scope string) {
	p.AccessToken = &token
	p.Scope = scope
	p.Active = true
	p.Deleted = false
	p.DeletedAt = nil
}

// Uninstall soft-deletes the partner and drops its credential.
func (p *Partner) Uninstall(now time.Time) {
	p.AccessToken = nil
	p.Active = false
	p.Deleted = true
	p.DeletedAt = &now
}

// WipeToken revokes the credential without deleting the partner.
func (p *Partner) WipeToken() {
	p.AccessToken = nil
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
