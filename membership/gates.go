package membership

import (
	"context"
	"errors"

	"teamdock/apperr"
	"teamdock/models"
)

// ResolveLead loads the team and checks that the caller holds the lead role.
// The founder always passes: their lead membership is created with the team
// and no operation can strip it.
func ResolveLead(ctx context.Context, store Store, teamID, callerID uint) (*models.Team, error) {
	if teamID == 0 {
		return nil, apperr.InvalidTeamID("Invalid teamId")
	}
	team, err := store.TeamByID(ctx, teamID)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.InvalidTeamID("Invalid teamId")
	}
	if err != nil {
		return nil, err
	}
	if !team.IsLead(callerID) {
		return nil, apperr.UnauthorizedLead("You need to be a team lead")
	}
	return team, nil
}

// ResolveMember loads the team and checks that the caller holds any role in
// it, lead or member.
func ResolveMember(ctx context.Context, store Store, teamID, callerID uint) (*models.Team, error) {
	if teamID == 0 {
		return nil, apperr.InvalidEntry("Missing required parameter teamId")
	}
	team, err := store.TeamByID(ctx, teamID)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NoEntryInDBUnprocessable("No entry in database for teamId")
	}
	if err != nil {
		return nil, err
	}
	if !team.BelongsTo(callerID) {
		return nil, apperr.UnauthorizedMember("You need to be a member of the team")
	}
	return team, nil
}
