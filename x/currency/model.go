package currency

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
)

// BucketName is where we store the token list.
const BucketName = "tokens"

var tokenListKey = []byte("all")

// TokenBucket stores the allow-list as a single record.
type TokenBucket struct {
	orm.Bucket
}

func NewTokenBucket() TokenBucket {
	return TokenBucket{Bucket: orm.NewBucket(BucketName)}
}

// Tokens returns the current allow-list. A missing record means an empty
// list, not an error.
func (b TokenBucket) Tokens(db tillit.ReadOnlyKVStore) (*TokenList, error) {
	var list TokenList
	switch err := b.One(db, tokenListKey, &list); {
	case err == nil:
		return &list, nil
	case errors.ErrNotFound.Is(err):
		return &TokenList{}, nil
	default:
		return nil, err
	}
}

// Register adds the ticker to the allow-list. Registering an existing
// ticker is a no-op success. A full list fails with ErrCapacity.
func (b TokenBucket) Register(db tillit.KVStore, ticker string) error {
	list, err := b.Tokens(db)
	if err != nil {
		return err
	}
	if list.Has(ticker) {
		return nil
	}
	if len(list.Tickers) >= MaxTokens {
		return errors.Wrapf(errors.ErrCapacity, "allow-list holds %d tokens", MaxTokens)
	}
	list.Tickers = append(list.Tickers, ticker)
	return b.Put(db, tokenListKey, list)
}

// Registered returns true if escrows may be denominated in this ticker.
func (b TokenBucket) Registered(db tillit.ReadOnlyKVStore, ticker string) (bool, error) {
	list, err := b.Tokens(db)
	if err != nil {
		return false, err
	}
	return list.Has(ticker), nil
}
