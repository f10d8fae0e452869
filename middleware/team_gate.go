package middleware

import (
	"github.com/gofiber/fiber/v2"

	"teamdock/apperr"
	"teamdock/membership"
	"teamdock/models"
	"teamdock/utils"
)

type teamIDBody struct {
	TeamID uint `json:"teamId"`
}

// TeamLead resolves the team named in the request body and requires the
// caller to hold the lead role in it. The resolved team is handed to the
// handler through c.Locals("team").
func TeamLead(store membership.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body teamIDBody
		if err := c.BodyParser(&body); err != nil {
			return utils.RespondError(c, apperr.InvalidTeamID("Invalid teamId"))
		}
		user := c.Locals("user").(*models.User)

		team, err := membership.ResolveLead(c.Context(), store, body.TeamID, user.ID)
		if err != nil {
			return utils.RespondError(c, err)
		}
		c.Locals("team", team)
		return c.Next()
	}
}

// TeamMember is the looser gate: lead or member both pass.
func TeamMember(store membership.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body teamIDBody
		if err := c.BodyParser(&body); err != nil {
			return utils.RespondError(c, apperr.InvalidEntry("Missing required parameter teamId"))
		}
		user := c.Locals("user").(*models.User)

		team, err := membership.ResolveMember(c.Context(), store, body.TeamID, user.ID)
		if err != nil {
			return utils.RespondError(c, err)
		}
		c.Locals("team", team)
		return c.Next()
	}
}
