package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamdock/apperr"
	"teamdock/membership"
	"teamdock/models"
	"teamdock/utils"
)

type TeamController struct {
	Engine *membership.Engine
	Store  membership.Store
	Logger *logrus.Logger
}

func NewTeamController(engine *membership.Engine, store membership.Store, logger *logrus.Logger) *TeamController {
	return &TeamController{
		Engine: engine,
		Store:  store,
		Logger: logger,
	}
}

type createTeamRequest struct {
	Name string `json:"name"`
}

type editTeamRequest struct {
	TeamID uint   `json:"teamId"`
	Name   string `json:"name"`
}

type addMembersRequest struct {
	TeamID  uint                     `json:"teamId"`
	Members []membership.MemberEntry `json:"members"`
}

type memberActionRequest struct {
	TeamID uint `json:"teamId"`
	UserID uint `json:"userId"`
}

// FetchTeam returns the detail view, with roster visibility depending on the
// caller's relationship to the team.
func (tc *TeamController) FetchTeam(c *fiber.Ctx) error {
	teamID := utils.ParseUint(c.Query("teamId"))
	if teamID == 0 {
		return utils.RespondError(c, apperr.InvalidEntry("Missing parameter teamId"))
	}

	team, err := tc.Store.TeamByID(c.Context(), teamID)
	if errors.Is(err, membership.ErrNotFound) {
		return utils.RespondError(c, apperr.NoEntryInDB("Could not find team"))
	}
	if err != nil {
		return utils.RespondError(c, err)
	}

	user := c.Locals("user").(*models.User)
	detail, err := tc.Engine.Detail(c.Context(), team, team.BelongsTo(user.ID))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(detail)
}

// SearchTeams finds teams by normalized name, by member email, or both.
func (tc *TeamController) SearchTeams(c *fiber.Ctx) error {
	teams, err := tc.Engine.Search(c.Context(), c.Query("teamName"), c.Query("email"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	summaries, err := tc.Engine.List(c.Context(), teams)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(summaries)
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var req createTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidRequest("Missing required parameter: name"))
	}
	user := c.Locals("user").(*models.User)

	team, founder, err := tc.Engine.Create(c.Context(), req.Name, user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}

	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"team": detail,
		"user": UserPayload{
			ID:      founder.ID,
			Name:    founder.Name,
			Email:   founder.Email,
			IsAdmin: founder.IsAdmin,
			TeamIDs: userTeamIDs(founder.ID),
		},
	})
}

func (tc *TeamController) EditTeam(c *fiber.Ctx) error {
	var req editTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidRequest("Missing required parameter: name"))
	}
	team := c.Locals("team").(*models.Team)

	team, err := tc.Engine.Edit(c.Context(), team, req.Name)
	if err != nil {
		return utils.RespondError(c, err)
	}
	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(detail)
}

func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)
	if err := tc.Engine.Delete(c.Context(), team); err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{})
}

func (tc *TeamController) AddTeamMembers(c *fiber.Ctx) error {
	var req addMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidParameter("Missing members parameter"))
	}
	team := c.Locals("team").(*models.Team)
	user := c.Locals("user").(*models.User)

	team, results, err := tc.Engine.AddMembers(c.Context(), team, req.Members, user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"team":    detail,
		"results": results,
	})
}

func (tc *TeamController) RemoveTeamMember(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidRequest("Missing parameter userId"))
	}
	team := c.Locals("team").(*models.Team)
	user := c.Locals("user").(*models.User)

	team, err := tc.Engine.Remove(c.Context(), team, req.UserID, user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(detail)
}

func (tc *TeamController) PromoteMemberToLead(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidRequest("Missing parameter userId"))
	}
	team := c.Locals("team").(*models.Team)
	user := c.Locals("user").(*models.User)

	team, err := tc.Engine.Promote(c.Context(), team, req.UserID, user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(detail)
}

func (tc *TeamController) DemoteLeadToMember(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, apperr.InvalidRequest("Missing parameter userId"))
	}
	team := c.Locals("team").(*models.Team)
	user := c.Locals("user").(*models.User)

	team, err := tc.Engine.Demote(c.Context(), team, req.UserID, user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	detail, err := tc.Engine.Detail(c.Context(), team, true)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(detail)
}

// FetchTeamMembers returns the founder/leads/members roster. The member gate
// has already vetted the caller.
func (tc *TeamController) FetchTeamMembers(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)
	roster, err := tc.Engine.Roster(c.Context(), team)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(roster)
}
