// Package account wires the account and transaction endpoints.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/currency"
	accountsvc "github.com/onramptee/openbank/pkg/service/account"
	"github.com/onramptee/openbank/webapi/common"
)

// OpenAccountRequest is the request body for opening an account. The currency
// is optional and defaults to the application default.
type OpenAccountRequest struct {
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// DepositRequest is the request body for a deposit.
type DepositRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=255"`
}

// Routes registers the account endpoints on the app.
func Routes(app *fiber.App, accountSvc *accountsvc.Service) {
	app.Post("/users/register/:user_id", OpenAccount(accountSvc))
	app.Get("/accounts/:account_id", GetAccount(accountSvc))
	app.Post("/accounts/:account_id/deposit", Deposit(accountSvc))
	app.Get("/accounts/:account_id/transactions", ListTransactions(accountSvc))
}

// OpenAccount opens a new account for a user.
func OpenAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		// The body is optional; an empty body opens a default-currency account.
		var code currency.Code
		if len(c.Body()) > 0 {
			input, err := common.BindAndValidate[OpenAccountRequest](c)
			if input == nil {
				return err
			}
			code = currency.Code(input.Currency)
		}
		acct, err := accountSvc.CreateAccount(c.Context(), userID, code)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created account", acct)
	}
}

// GetAccount returns an account by ID.
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("account_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		acct, err := accountSvc.GetAccount(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", acct)
	}
}

// Deposit credits funds to an account.
func Deposit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("account_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		tx, err := accountSvc.Deposit(c.Context(), id, input.Amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't record deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit recorded", tx)
	}
}

// ListTransactions returns an account's transaction history.
func ListTransactions(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("account_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		txs, err := accountSvc.ListTransactions(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", txs)
	}
}
