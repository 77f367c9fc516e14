package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDocument_DualCurrencyRoundTrip(t *testing.T) {
	registered := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	account := NewAccount(123456, "alice", registered)
	account.Credit(CurrencyTPB, 250)
	account.Credit(CurrencyTPG, 17)

	data, err := MarshalAccount(account)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":123456,"name":"alice","registered_at":1714559400,"tpb_amount":250,"tpg_amount":17}`, string(data))

	loaded, err := UnmarshalAccount(data)
	require.NoError(t, err)
	assert.Equal(t, account.ID, loaded.ID)
	assert.Equal(t, account.DisplayName, loaded.DisplayName)
	assert.True(t, registered.Equal(loaded.RegisteredAt))
	assert.Equal(t, int64(250), loaded.Balance(CurrencyTPB))
	assert.Equal(t, int64(17), loaded.Balance(CurrencyTPG))
	assert.Equal(t, int64(0), loaded.Balance(CurrencyLegacy))
}

func TestAccountDocument_LegacyRoundTrip(t *testing.T) {
	account := NewAccount(42, "bob", time.Unix(1700000000, 0).UTC())
	account.Credit(CurrencyLegacy, 90)

	data, err := MarshalAccount(account)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"name":"bob","registered_at":1700000000,"balance":90}`, string(data))

	loaded, err := UnmarshalAccount(data)
	require.NoError(t, err)
	assert.Equal(t, int64(90), loaded.Balance(CurrencyLegacy))
	_, hasTPB := loaded.Balances[CurrencyTPB]
	assert.False(t, hasTPB)
}

func TestUnmarshalAccount_LegacyExport(t *testing.T) {
	t.Run("underscore id and fractional timestamp", func(t *testing.T) {
		loaded, err := UnmarshalAccount([]byte(`{"_id":777,"name":"carol","registered_at":1700000000.25,"balance":5}`))
		require.NoError(t, err)
		assert.Equal(t, int64(777), loaded.ID)
		assert.Equal(t, int64(5), loaded.Balance(CurrencyLegacy))
		assert.Equal(t, 250*time.Millisecond, time.Duration(loaded.RegisteredAt.Nanosecond()))
	})

	t.Run("missing balances default to zero", func(t *testing.T) {
		loaded, err := UnmarshalAccount([]byte(`{"id":9,"name":"dave","registered_at":1700000000,"tpb_amount":3}`))
		require.NoError(t, err)
		assert.Equal(t, int64(3), loaded.Balance(CurrencyTPB))
		assert.Equal(t, int64(0), loaded.Balance(CurrencyTPG))
		assert.Equal(t, int64(0), loaded.Balance(CurrencyLegacy))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := UnmarshalAccount([]byte(`{"name":"nobody"}`))
		assert.ErrorIs(t, err, ErrMissingAccountID)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := UnmarshalAccount([]byte(`{"id":`))
		assert.Error(t, err)
	})
}

func TestAccount_CloneIsIndependent(t *testing.T) {
	account := NewAccount(1, "erin", time.Now())
	account.Credit(CurrencyTPB, 10)

	clone := account.Clone()
	clone.Credit(CurrencyTPB, 5)

	assert.Equal(t, int64(10), account.Balance(CurrencyTPB))
	assert.Equal(t, int64(15), clone.Balance(CurrencyTPB))
}

func TestGuess_ValidFor(t *testing.T) {
	assert.True(t, GuessHigh.ValidFor(GameHiLo))
	assert.True(t, GuessLow.ValidFor(GameHiLo))
	assert.False(t, GuessTwoHeads.ValidFor(GameHiLo))
	assert.True(t, GuessTwoTails.ValidFor(GameTwoUp))
	assert.False(t, GuessHigh.ValidFor(GameTwoUp))
}
