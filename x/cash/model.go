package cash

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// NewBucket initializes a wallet bucket with the default name.
func NewBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// WalletCoins loads the balance set of the given account. A missing wallet
// is an empty balance, not an error.
func WalletCoins(db tillit.ReadOnlyKVStore, bucket orm.Bucket, addr tillit.Address) (coin.Coins, error) {
	var set Set
	switch err := bucket.One(db, addr, &set); {
	case err == nil:
		return coin.Coins(set.Coins), nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

func saveWallet(db tillit.KVStore, bucket orm.Bucket, addr tillit.Address, cs coin.Coins) error {
	if len(cs) == 0 {
		// An empty wallet takes no space in the store.
		switch has, err := bucket.Has(db, addr); {
		case err != nil:
			return err
		case has:
			return bucket.Delete(db, addr)
		default:
			return nil
		}
	}
	return bucket.Put(db, addr, &Set{Coins: cs})
}
