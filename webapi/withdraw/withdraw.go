// Package withdraw wires the withdrawal and settlement endpoints.
package withdraw

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	withdrawsvc "github.com/onramptee/openbank/pkg/service/withdraw"
	"github.com/onramptee/openbank/webapi/common"
)

// WithdrawRequest is the request body for a withdrawal.
type WithdrawRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"omitempty,max=255"`
}

// WithdrawResponse reports the settlement outcome of a withdrawal.
type WithdrawResponse struct {
	Status      string `json:"status"`
	Destination string `json:"destination"`
	MinorUnits  int64  `json:"minor_units"`
}

// Routes registers the withdrawal endpoints on the app.
func Routes(app *fiber.App, withdrawSvc *withdrawsvc.Service) {
	app.Post("/withdraw", Withdraw(withdrawSvc))
	app.Get("/users/:user_id/external-balance", ExternalBalance(withdrawSvc))
	app.Get("/settlement/stats", Stats(withdrawSvc))
}

// Withdraw sends funds to the user's registered wallet through the
// settlement gateway. An outcome the gateway could not confirm is reported
// with 202 Accepted so the caller can reconcile later.
func Withdraw(withdrawSvc *withdrawsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		outcome, err := withdrawSvc.Withdraw(
			c.Context(), input.UserID, input.Amount, input.Description)
		if err != nil && outcome == nil {
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		resp := WithdrawResponse{
			Status:      string(outcome.Status),
			Destination: outcome.Destination,
			MinorUnits:  outcome.MinorUnits,
		}
		if outcome.Status == withdrawsvc.StatusUncertain {
			return common.SuccessResponseJSON(c, fiber.StatusAccepted,
				"Withdrawal outcome unknown, reconcile with external balance", resp)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal settled", resp)
	}
}

// ExternalBalance returns the settlement-side balance for a user's wallet.
func ExternalBalance(withdrawSvc *withdrawsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		bal, err := withdrawSvc.ExternalBalance(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch external balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "External balance", bal)
	}
}

// Stats returns aggregate settlement statistics.
func Stats(withdrawSvc *withdrawsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := withdrawSvc.Stats(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch settlement stats", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Settlement stats", stats)
	}
}
