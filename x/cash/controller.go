package cash

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
)

// Controller is the functionality needed by other extensions to move funds
// around. It is a much smaller interface than the whole module so it is easy
// to fake in tests.
type Controller interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. It fails without side effects when the
	// source account does not hold sufficient funds.
	MoveCoins(db tillit.KVStore, src, dest tillit.Address, amount coin.Coin) error

	// Balance returns the set of coins held by this account.
	Balance(db tillit.ReadOnlyKVStore, addr tillit.Address) (coin.Coins, error)
}

// CoinsController implements Controller on top of the wallet bucket.
type CoinsController struct {
	bucket orm.Bucket
}

var _ Controller = CoinsController{}

// NewController returns a CoinsController using the default bucket.
func NewController() CoinsController {
	return CoinsController{bucket: NewBucket()}
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient coins, it fails.
func (c CoinsController) MoveCoins(db tillit.KVStore, src, dest tillit.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %d", amount.Whole)
	}

	sender, err := WalletCoins(db, c.bucket, src)
	if err != nil {
		return err
	}
	if !sender.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"%s has only %d %s", src, sender.Amount(amount.Ticker).Whole, amount.Ticker)
	}

	recipient, err := WalletCoins(db, c.bucket, dest)
	if err != nil {
		return err
	}

	sender, err = sender.Subtract(amount)
	if err != nil {
		return err
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}

	if err := saveWallet(db, c.bucket, src, sender); err != nil {
		return err
	}
	return saveWallet(db, c.bucket, dest, recipient)
}

// Balance returns the coins held in the account's wallet.
func (c CoinsController) Balance(db tillit.ReadOnlyKVStore, addr tillit.Address) (coin.Coins, error) {
	return WalletCoins(db, c.bucket, addr)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address, minting new value. Used by the genesis loader and tests; there is
// no message that reaches this.
func (c CoinsController) IssueCoins(db tillit.KVStore, dest tillit.Address, amount coin.Coin) error {
	recipient, err := WalletCoins(db, c.bucket, dest)
	if err != nil {
		return err
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}
	return saveWallet(db, c.bucket, dest, recipient)
}
