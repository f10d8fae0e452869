package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "teamdock/controllers"
	"teamdock/membership"
	"teamdock/middleware"
	"teamdock/store"
)

func SetupAuthRoutes(app *fiber.App) {
	// Public auth endpoints, rate limited per IP
	auth := app.Group("/auth",
		middleware.AuthRateLimiter(),
		logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))

	auth.Post("/signup", controller.SignUp)
	auth.Post("/signin", controller.SignIn)

	// Google OAuth routes
	auth.Get("/google", controller.GoogleOAuth)
	auth.Get("/google/callback", controller.GoogleOAuthCallback)
	// logout is handled by the client dropping the token from storage
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, appLogger *logrus.Logger) {
	st := store.New(db)
	engine := membership.NewEngine(st, appLogger)
	teamController := controller.NewTeamController(engine, st, appLogger)
	userController := controller.NewUserController(st, appLogger)

	// Every /api route requires a bearer principal
	api := app.Group("/api", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	api.Get("/currentUser", controller.GetCurrentUser)
	api.Get("/user/fetch", userController.FetchUser)

	// Team routes
	api.Get("/team", teamController.FetchTeam)
	api.Get("/team/search", teamController.SearchTeams)
	api.Post("/team/new", teamController.CreateTeam)
	api.Patch("/team/edit", middleware.TeamLead(st), teamController.EditTeam)
	api.Delete("/team/delete", middleware.TeamLead(st), teamController.DeleteTeam)

	// Membership routes: adds, promotions and demotions need the lead gate,
	// removals and roster fetches only need the member gate
	api.Post("/team/members/add", middleware.TeamLead(st), teamController.AddTeamMembers)
	api.Post("/team/members/remove", middleware.TeamMember(st), teamController.RemoveTeamMember)
	api.Post("/team/members/promote", middleware.TeamLead(st), teamController.PromoteMemberToLead)
	api.Post("/team/members/demote", middleware.TeamLead(st), teamController.DemoteLeadToMember)
	api.Post("/team/members/fetch", middleware.TeamMember(st), teamController.FetchTeamMembers)
}

func SetupRoutes(app *fiber.App, db *gorm.DB, appLogger *logrus.Logger) {
	controller.InitGoogleOAuth()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app)
	SetupAPIRoutes(app, db, appLogger)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
