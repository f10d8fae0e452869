package membership

import (
	"context"

	"teamdock/models"
)

// UserInfo is the public slice of a user record shown in team views.
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TeamSummary is the search/list projection: never includes membership detail
// regardless of who asks.
type TeamSummary struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Founder UserInfo `json:"founder"`
}

// ProjectSummary and RequestSummary are placeholders until project management
// and join requests land; the detail view only ever emits them empty.
type ProjectSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RequestSummary struct {
	ID          uint   `json:"id"`
	RequesterID uint   `json:"requester_id"`
	Role        string `json:"role"`
	Approved    bool   `json:"approved"`
}

// TeamDetail is the single-team projection. Leads and Members are nil for
// callers outside the team, which omits the keys from the JSON entirely; for
// members of a thin team they are present but empty.
type TeamDetail struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Founder  UserInfo         `json:"founder"`
	Projects []ProjectSummary `json:"projects"`
	Requests []RequestSummary `json:"requests"`
	Leads    *[]UserInfo      `json:"leads,omitempty"`
	Members  *[]UserInfo      `json:"members,omitempty"`
}

// TeamRoster is the members-fetch projection.
type TeamRoster struct {
	Founder UserInfo   `json:"founder"`
	Leads   []UserInfo `json:"leads"`
	Members []UserInfo `json:"members"`
}

// Detail builds the outward-facing team representation. callerIsMember
// controls whether the lead and member rosters are included at all.
func (e *Engine) Detail(ctx context.Context, team *models.Team, callerIsMember bool) (*TeamDetail, error) {
	founder, err := e.userInfo(ctx, team.FounderID)
	if err != nil {
		return nil, err
	}

	detail := &TeamDetail{
		ID:       team.ID,
		Name:     team.Name,
		Founder:  founder,
		Projects: []ProjectSummary{},
		Requests: []RequestSummary{},
	}
	if !callerIsMember {
		return detail, nil
	}

	leads, err := e.usersInfo(ctx, team.LeadIDs())
	if err != nil {
		return nil, err
	}
	members, err := e.usersInfo(ctx, team.MemberIDs())
	if err != nil {
		return nil, err
	}
	detail.Leads = &leads
	detail.Members = &members
	return detail, nil
}

// List maps teams to their summary form for search results.
func (e *Engine) List(ctx context.Context, teams []models.Team) ([]TeamSummary, error) {
	summaries := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		founder, err := e.userInfo(ctx, team.FounderID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, TeamSummary{
			ID:      team.ID,
			Name:    team.Name,
			Founder: founder,
		})
	}
	return summaries, nil
}

// Roster resolves the full founder/leads/members breakdown. Callers must have
// passed the member gate.
func (e *Engine) Roster(ctx context.Context, team *models.Team) (*TeamRoster, error) {
	founder, err := e.userInfo(ctx, team.FounderID)
	if err != nil {
		return nil, err
	}
	leads, err := e.usersInfo(ctx, team.LeadIDs())
	if err != nil {
		return nil, err
	}
	members, err := e.usersInfo(ctx, team.MemberIDs())
	if err != nil {
		return nil, err
	}
	return &TeamRoster{Founder: founder, Leads: leads, Members: members}, nil
}

func (e *Engine) userInfo(ctx context.Context, id uint) (UserInfo, error) {
	user, err := e.store.UserByID(ctx, id)
	if err != nil {
		return UserInfo{}, err
	}
	return UserInfo{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (e *Engine) usersInfo(ctx context.Context, ids []uint) ([]UserInfo, error) {
	infos := make([]UserInfo, 0, len(ids))
	if len(ids) == 0 {
		return infos, nil
	}
	users, err := e.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			infos = append(infos, UserInfo{ID: user.ID, Email: user.Email, Name: user.Name})
		}
	}
	return infos, nil
}
