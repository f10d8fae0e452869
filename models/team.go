package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Membership roles. A user holds exactly one role per team; the founder keeps
// a lead row from team creation onward.
const (
	RoleLead   = "lead"
	RoleMember = "member"
)

// Team represents a team and its membership
type Team struct {
	gorm.Model
	Name           string `gorm:"uniqueIndex;not null" json:"name"`
	SearchableName string `gorm:"index" json:"searchable_name"`
	FounderID      uint   `gorm:"not null" json:"founder_id"` // immutable once set

	// Relations
	Memberships []Membership `gorm:"foreignKey:TeamID" json:"-"`
	Projects    []Project    `gorm:"foreignKey:TeamID" json:"-"`
}

// Membership ties a user to a team with a single role. The composite unique
// index is what makes the lead/member sets disjoint: a user cannot hold two
// rows in the same team. Rows are hard-deleted so a removed user can rejoin
// without tripping the unique index.
type Membership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamID uint   `gorm:"not null;uniqueIndex:idx_membership_team_user" json:"team_id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_membership_team_user" json:"user_id"`
	Role   string `gorm:"not null" json:"role"` // lead, member

	// Relations
	Team Team `json:"-"`
	User User `json:"-"`
}

// IsLead reports whether the user holds the lead role in this team.
// Memberships must be loaded.
func (t *Team) IsLead(userID uint) bool {
	for _, m := range t.Memberships {
		if m.UserID == userID && m.Role == RoleLead {
			return true
		}
	}
	return false
}

// IsMember reports whether the user holds the member role in this team.
func (t *Team) IsMember(userID uint) bool {
	for _, m := range t.Memberships {
		if m.UserID == userID && m.Role == RoleMember {
			return true
		}
	}
	return false
}

// BelongsTo reports whether the user holds any role in this team.
func (t *Team) BelongsTo(userID uint) bool {
	for _, m := range t.Memberships {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// LeadIDs returns the user ids holding the lead role, in membership order.
func (t *Team) LeadIDs() []uint {
	return t.roleIDs(RoleLead)
}

// MemberIDs returns the user ids holding the member role, in membership order.
func (t *Team) MemberIDs() []uint {
	return t.roleIDs(RoleMember)
}

func (t *Team) roleIDs(role string) []uint {
	ids := make([]uint, 0, len(t.Memberships))
	for _, m := range t.Memberships {
		if m.Role == role {
			ids = append(ids, m.UserID)
		}
	}
	return ids
}

// SearchableTeamName normalizes a display name for search: lower-cased with
// all whitespace removed ("New Team Name" -> "newteamname").
func SearchableTeamName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}
