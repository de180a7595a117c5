package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit/errors"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin":         {coin: NewCoin(100, "STX")},
		"valid zero":         {coin: NewCoin(0, "IOV")},
		"valid negative":     {coin: NewCoin(-42, "FOO")},
		"long ticker ok":     {coin: NewCoin(1, "STABLECOIN")},
		"max length ticker":  {coin: NewCoin(1, "ABCDEFGHIJKLMNOPQRST")},
		"too long ticker":    {coin: NewCoin(1, "ABCDEFGHIJKLMNOPQRSTU"), wantErr: errors.ErrCurrency},
		"lowercase ticker":   {coin: NewCoin(1, "stx"), wantErr: errors.ErrCurrency},
		"too short ticker":   {coin: NewCoin(1, "ST"), wantErr: errors.ErrCurrency},
		"missing ticker":     {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
		"overflow":           {coin: NewCoin(MaxInt+1, "STX"), wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}

func TestCoinAddSubtract(t *testing.T) {
	a := NewCoin(100, "STX")
	b := NewCoin(42, "STX")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(142, "STX"), sum)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(58, "STX"), diff)

	_, err = a.Add(NewCoin(1, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinsAdd(t *testing.T) {
	cs, err := CombineCoins(NewCoin(100, "STX"), NewCoin(5, "ETH"))
	require.NoError(t, err)
	require.NoError(t, cs.Validate())

	// merged per ticker, sorted by ticker
	cs, err = cs.Add(NewCoin(11, "STX"))
	require.NoError(t, err)
	assert.Equal(t, int64(111), cs.Amount("STX").Whole)
	assert.Equal(t, "ETH", cs[0].Ticker)

	// draining a currency removes it from the set
	cs, err = cs.Subtract(NewCoin(5, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, 1, len(cs))
	assert.True(t, cs.Contains(NewCoin(111, "STX")))
	assert.False(t, cs.Contains(NewCoin(112, "STX")))
}

func TestCoinsAmountMissing(t *testing.T) {
	var cs Coins
	got := cs.Amount("STX")
	assert.True(t, got.IsZero())
	assert.Equal(t, "STX", got.Ticker)
}
