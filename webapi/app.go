// Package webapi assembles the HTTP application.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/onramptee/openbank/config"
	accountsvc "github.com/onramptee/openbank/pkg/service/account"
	usersvc "github.com/onramptee/openbank/pkg/service/user"
	withdrawsvc "github.com/onramptee/openbank/pkg/service/withdraw"
	"github.com/onramptee/openbank/webapi/account"
	"github.com/onramptee/openbank/webapi/common"
	"github.com/onramptee/openbank/webapi/user"
	"github.com/onramptee/openbank/webapi/withdraw"
)

// NewApp builds the Fiber application with all routes and middleware wired.
func NewApp(
	userSvc *usersvc.Service,
	accountSvc *accountsvc.Service,
	withdrawSvc *withdrawsvc.Service,
	cfg *config.App,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "openbank",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if cfg.RateLimit.MaxRequests > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.MaxRequests,
			Expiration: cfg.RateLimit.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
					"Rate limit exceeded", fiber.StatusTooManyRequests)
			},
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	user.Routes(app, userSvc)
	account.Routes(app, accountSvc)
	withdraw.Routes(app, withdrawSvc)

	return app
}
