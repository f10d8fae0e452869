package membership

import (
	"context"
	"errors"

	"teamdock/models"
)

// ErrNotFound is returned by store lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary the engine and gates depend on. Team
// lookups return the team with its memberships loaded. Implementations must
// keep (team, user) membership rows unique per pair.
type Store interface {
	TeamByID(ctx context.Context, id uint) (*models.Team, error)
	TeamByName(ctx context.Context, name string) (*models.Team, error)
	SearchTeams(ctx context.Context, searchable string) ([]models.Team, error)
	TeamsByUser(ctx context.Context, userID uint) ([]models.Team, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	SaveTeam(ctx context.Context, team *models.Team) error
	// DeleteTeam removes the team record and every membership row pointing at
	// it, so former leads and members lose their back-reference in one step.
	DeleteTeam(ctx context.Context, teamID uint) error

	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	UsersByEmails(ctx context.Context, emails []string) ([]models.User, error)

	AddMembership(ctx context.Context, teamID, userID uint, role string) error
	RemoveMembership(ctx context.Context, teamID, userID uint) error
	SetMembershipRole(ctx context.Context, teamID, userID uint, role string) error

	// InTx runs fn against a store bound to a single transaction. A role
	// change touches the team and the user side through the same rows, so
	// both reflect it or neither does.
	InTx(ctx context.Context, fn func(Store) error) error
}
