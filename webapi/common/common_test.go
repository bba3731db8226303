package common_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/domain/user"
	"github.com/onramptee/openbank/webapi/common"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, fiber.StatusOK},
		{"not found", domain.NewUserNotFound(uuid.New()), fiber.StatusNotFound},
		{"duplicate email", &domain.DuplicateEmailError{Email: "a@b.c"}, fiber.StatusConflict},
		{"duplicate wallet", &domain.DuplicateWalletError{}, fiber.StatusConflict},
		{"invalid amount", &domain.InvalidAmountError{Amount: -1}, fiber.StatusBadRequest},
		{"invalid address", &domain.InvalidAddressError{}, fiber.StatusBadRequest},
		{"amount overflow", money.ErrAmountExceedsMaxSafeInt, fiber.StatusBadRequest},
		{"email required", user.ErrEmailRequired, fiber.StatusBadRequest},
		{"name required", user.ErrNameRequired, fiber.StatusBadRequest},
		{"unsupported currency", account.ErrUnsupportedCurrency, fiber.StatusUnprocessableEntity},
		{"account currency mismatch", account.ErrCurrencyMismatch, fiber.StatusUnprocessableEntity},
		{"money currency mismatch", money.ErrCurrencyMismatch, fiber.StatusUnprocessableEntity},
		{"no wallet", &domain.NoWalletAddressError{UserID: uuid.New()}, fiber.StatusUnprocessableEntity},
		{"settlement rejected", domain.ErrSettlementRejected, fiber.StatusUnprocessableEntity},
		{"settlement uncertain", domain.ErrSettlementUncertain, fiber.StatusAccepted},
		{"settlement unavailable", domain.ErrSettlementUnavailable, fiber.StatusBadGateway},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, common.ErrorToStatusCode(c.err))
		})
	}
}
