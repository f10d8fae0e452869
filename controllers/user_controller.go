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

type UserController struct {
	Store  membership.Store
	Logger *logrus.Logger
}

func NewUserController(store membership.Store, logger *logrus.Logger) *UserController {
	return &UserController{Store: store, Logger: logger}
}

type teamBrief struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	FounderID uint   `json:"founder_id"`
}

// FetchUser looks a user up by id or email and includes brief summaries of
// their teams.
func (uc *UserController) FetchUser(c *fiber.Ctx) error {
	userID := utils.ParseUint(c.Query("userId"))
	email := c.Query("email")

	var (
		user *models.User
		err  error
	)
	switch {
	case userID != 0:
		user, err = uc.Store.UserByID(c.Context(), userID)
	case email != "":
		user, err = uc.Store.UserByEmail(c.Context(), email)
	default:
		return utils.RespondError(c, apperr.InvalidRequest("Invalid parameters"))
	}
	if errors.Is(err, membership.ErrNotFound) {
		return utils.RespondError(c, apperr.InvalidEntry("Invalid User Id"))
	}
	if err != nil {
		return utils.RespondError(c, err)
	}

	teams, err := uc.Store.TeamsByUser(c.Context(), user.ID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	briefs := make([]teamBrief, 0, len(teams))
	for _, team := range teams {
		briefs = append(briefs, teamBrief{ID: team.ID, Name: team.Name, FounderID: team.FounderID})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"teams":    briefs,
		"is_admin": user.IsAdmin,
	})
}
