package membership

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"teamdock/apperr"
	"teamdock/models"
)

// Engine owns every mutation of a team's lead and member sets. The coarse
// lead/member checks happen in the gates; everything finer grained
// (who may remove whom, founder exemptions, sole-lead protection) lives here.
type Engine struct {
	store  Store
	logger *logrus.Logger
}

func NewEngine(store Store, logger *logrus.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// MemberEntry is one requested addition: an account email and the role it
// should receive.
type MemberEntry struct {
	Email  string `json:"email" validate:"required,email"`
	IsLead bool   `json:"isLead"`
}

// Outcomes reported per requested email by AddMembers.
const (
	AddOutcomeAdded         = "added"
	AddOutcomeAlreadyInTeam = "already_in_team"
	AddOutcomeNotFound      = "not_found"
)

// MemberResult reports what happened to a single AddMembers entry.
type MemberResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Create makes a new team with the caller as founder and sole lead.
func (e *Engine) Create(ctx context.Context, name string, callerID uint) (*models.Team, *models.User, error) {
	if name == "" {
		return nil, nil, apperr.InvalidRequest("Missing required parameter: name")
	}

	existing, err := e.store.TeamByName(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperr.EntryConflict("The same team name already exists")
	}

	team := &models.Team{
		Name:           name,
		SearchableName: models.SearchableTeamName(name),
		FounderID:      callerID,
	}
	err = e.store.InTx(ctx, func(tx Store) error {
		if err := tx.CreateTeam(ctx, team); err != nil {
			return err
		}
		return tx.AddMembership(ctx, team.ID, callerID, models.RoleLead)
	})
	if err != nil {
		return nil, nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"team_id":    team.ID,
		"founder_id": callerID,
	}).Info("team created")

	team, err = e.store.TeamByID(ctx, team.ID)
	if err != nil {
		return nil, nil, err
	}
	user, err := e.store.UserByID(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}
	return team, user, nil
}

// Edit renames the team and re-derives its searchable name. Membership is
// untouched.
func (e *Engine) Edit(ctx context.Context, team *models.Team, newName string) (*models.Team, error) {
	if newName == "" {
		return nil, apperr.InvalidRequest("Missing required parameter: name")
	}

	existing, err := e.store.TeamByName(ctx, newName)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != team.ID {
		return nil, apperr.EntryConflict("Existing team name")
	}

	team.Name = newName
	team.SearchableName = models.SearchableTeamName(newName)
	if err := e.store.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes the team and every lead's and member's reference to it.
func (e *Engine) Delete(ctx context.Context, team *models.Team) error {
	err := e.store.InTx(ctx, func(tx Store) error {
		return tx.DeleteTeam(ctx, team.ID)
	})
	if err != nil {
		return err
	}
	e.logger.WithField("team_id", team.ID).Info("team deleted")
	return nil
}

// AddMembers resolves each entry's email to an account and grants the
// requested role. Unknown emails are reported per entry instead of silently
// skipped; a user already in the team keeps their current role.
func (e *Engine) AddMembers(ctx context.Context, team *models.Team, entries []MemberEntry, callerID uint) (*models.Team, []MemberResult, error) {
	if len(entries) == 0 {
		return nil, nil, apperr.InvalidParameter("Missing members parameter")
	}

	emails := make([]string, 0, len(entries))
	for _, entry := range entries {
		emails = append(emails, entry.Email)
	}
	users, err := e.store.UsersByEmails(ctx, emails)
	if err != nil {
		return nil, nil, err
	}
	if len(users) == 0 {
		return nil, nil, apperr.InvalidParameter("Please enter correct email address(es)")
	}

	byEmail := make(map[string]*models.User, len(users))
	for i := range users {
		byEmail[users[i].Email] = &users[i]
	}
	for _, entry := range entries {
		if user, ok := byEmail[entry.Email]; ok && user.ID == callerID {
			return nil, nil, apperr.InvalidRequest("You cannot invite yourself")
		}
	}

	results := make([]MemberResult, 0, len(entries))
	err = e.store.InTx(ctx, func(tx Store) error {
		for _, entry := range entries {
			user, ok := byEmail[entry.Email]
			if !ok {
				results = append(results, MemberResult{Email: entry.Email, Status: AddOutcomeNotFound})
				continue
			}
			if team.BelongsTo(user.ID) {
				results = append(results, MemberResult{Email: entry.Email, Status: AddOutcomeAlreadyInTeam})
				continue
			}
			role := models.RoleMember
			if entry.IsLead {
				role = models.RoleLead
			}
			if err := tx.AddMembership(ctx, team.ID, user.ID, role); err != nil {
				return err
			}
			team.Memberships = append(team.Memberships, models.Membership{
				TeamID: team.ID,
				UserID: user.ID,
				Role:   role,
			})
			results = append(results, MemberResult{Email: entry.Email, Status: AddOutcomeAdded})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	team, err = e.store.TeamByID(ctx, team.ID)
	if err != nil {
		return nil, nil, err
	}
	return team, results, nil
}

// Remove takes a user out of the team. Guard order matters: the founder check
// runs first, then the lead-vs-lead and member-vs-member rules, and only then
// presence. Self-removal is allowed for any non-founder lead or member.
func (e *Engine) Remove(ctx context.Context, team *models.Team, userID, callerID uint) (*models.Team, error) {
	if userID == team.FounderID {
		return nil, apperr.InvalidRequest("A founder cannot be removed from team")
	}

	if team.IsLead(userID) && userID != team.FounderID &&
		callerID != userID && callerID != team.FounderID {
		return nil, apperr.UnauthorizedRequest("A team lead cannot remove another lead")
	}

	if team.IsMember(userID) && callerID != userID && team.IsMember(callerID) {
		return nil, apperr.UnauthorizedRequest("A member cannot remove another member from the team")
	}

	if !team.BelongsTo(userID) {
		return nil, apperr.NoMatchingEntity("User is not in team")
	}

	err := e.store.InTx(ctx, func(tx Store) error {
		return tx.RemoveMembership(ctx, team.ID, userID)
	})
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"team_id": team.ID,
		"user_id": userID,
	}).Info("member removed")

	return e.store.TeamByID(ctx, team.ID)
}

// Promote moves a member into the lead set.
func (e *Engine) Promote(ctx context.Context, team *models.Team, userID, callerID uint) (*models.Team, error) {
	if team.IsLead(userID) {
		return nil, apperr.InvalidOperation("Cannot promote lead")
	}
	if !team.IsMember(userID) {
		return nil, apperr.InvalidEntity("User is not a member")
	}

	err := e.store.InTx(ctx, func(tx Store) error {
		return tx.SetMembershipRole(ctx, team.ID, userID, models.RoleLead)
	})
	if err != nil {
		return nil, err
	}
	return e.store.TeamByID(ctx, team.ID)
}

// Demote moves a lead back into the member set. The sole remaining lead
// cannot demote themselves, which keeps the lead set non-empty for the
// lifetime of the team; the founder cannot be demoted at all.
func (e *Engine) Demote(ctx context.Context, team *models.Team, userID, callerID uint) (*models.Team, error) {
	leads := team.LeadIDs()
	if userID == callerID && len(leads) == 1 && leads[0] == callerID {
		return nil, apperr.InvalidRequest("You cannot demote yourself to team member when you are the only team lead")
	}
	if userID == team.FounderID {
		return nil, apperr.InvalidOperationForbidden("Founder cannot be demoted")
	}
	if !team.IsLead(userID) {
		return nil, apperr.InvalidEntity("User is not a lead")
	}

	err := e.store.InTx(ctx, func(tx Store) error {
		return tx.SetMembershipRole(ctx, team.ID, userID, models.RoleMember)
	})
	if err != nil {
		return nil, err
	}
	return e.store.TeamByID(ctx, team.ID)
}

// Search finds teams by normalized name substring, by a user's email, or the
// intersection of both.
func (e *Engine) Search(ctx context.Context, teamName, email string) ([]models.Team, error) {
	if teamName == "" && email == "" {
		return nil, apperr.InvalidRequest("Need valid entry to search")
	}

	searchable := models.SearchableTeamName(teamName)

	if email == "" {
		return e.store.SearchTeams(ctx, searchable)
	}

	user, err := e.store.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NoEntryInDB("Could not find user")
	}
	if err != nil {
		return nil, err
	}
	teams, err := e.store.TeamsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if teamName == "" {
		return teams, nil
	}

	matching := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		if strings.Contains(team.SearchableName, searchable) {
			matching = append(matching, team)
		}
	}
	return matching, nil
}
