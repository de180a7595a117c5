package currency

import (
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

const pathRegisterTokenMsg = "currency/register"

// Path fulfills tillit.Msg interface to allow routing.
func (RegisterTokenMsg) Path() string {
	return pathRegisterTokenMsg
}

// Validate makes sure that this is sensible.
func (m *RegisterTokenMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %s", m.Ticker)
	}
	return nil
}
