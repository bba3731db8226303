// Package user wires the user endpoints.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	usersvc "github.com/onramptee/openbank/pkg/service/user"
	"github.com/onramptee/openbank/webapi/common"
)

// CreateUserRequest is the request body for user registration.
type CreateUserRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Name          string  `json:"name" validate:"required"`
	WalletAddress *string `json:"wallet_address" validate:"omitempty"`
}

// Routes registers the user endpoints on the app.
func Routes(app *fiber.App, userSvc *usersvc.Service) {
	app.Post("/users", CreateUser(userSvc))
	app.Get("/users/:user_id", GetUser(userSvc))
	app.Get("/users/:user_id/accounts", ListAccounts(userSvc))
}

// CreateUser registers a new user.
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateUserRequest](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.CreateUser(c.Context(), input.Email, input.Name, input.WalletAddress)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// GetUser returns a user by ID.
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		u, err := userSvc.GetUser(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// ListAccounts returns all accounts owned by a user.
func ListAccounts(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		accounts, err := userSvc.ListAccounts(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts found", accounts)
	}
}
