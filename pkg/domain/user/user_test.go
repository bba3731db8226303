package user_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/user"
)

func strptr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	t.Parallel()
	u, err := user.New("alice@example.com", "Alice", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Nil(t, u.WalletAddress)
	assert.Empty(t, u.AccountIDs)
}

func TestNewUserWithWallet(t *testing.T) {
	t.Parallel()
	addr := "0x" + "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"
	u, err := user.New("bob@example.com", "Bob", strptr(addr))
	require.NoError(t, err)
	require.NotNil(t, u.WalletAddress)
	assert.Equal(t, addr, *u.WalletAddress)
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()
	_, err := user.New("", "Alice", nil)
	assert.ErrorIs(t, err, user.ErrEmailRequired)

	_, err = user.New("alice@example.com", "", nil)
	assert.ErrorIs(t, err, user.ErrNameRequired)

	_, err = user.New("alice@example.com", "Alice", strptr("not-an-address"))
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = user.New("alice@example.com", "Alice", strptr("0xshort"))
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	u, err := user.New("carol@example.com", "Carol", nil)
	require.NoError(t, err)
	u.AccountIDs = append(u.AccountIDs, uuid.New())

	cp := u.Clone()
	cp.AccountIDs = append(cp.AccountIDs, uuid.New())
	cp.AccountIDs[0] = uuid.New()

	assert.Len(t, u.AccountIDs, 1)
	assert.NotEqual(t, cp.AccountIDs[0], u.AccountIDs[0])
}

func TestIsValidWalletAddress(t *testing.T) {
	t.Parallel()
	valid := "0x1234567890abcdef1234567890abcdef12345678"
	assert.True(t, domain.IsValidWalletAddress(valid))
	assert.False(t, domain.IsValidWalletAddress("1234567890abcdef1234567890abcdef12345678ab"))
	assert.False(t, domain.IsValidWalletAddress("0x1234"))
	assert.False(t, domain.IsValidWalletAddress("0x 234567890abcdef1234567890abcdef12345678"))
	assert.False(t, domain.IsValidWalletAddress(""))
}
