package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

// The query functions never fail on missing entities; absence is a regular
// answer, not an error.

// GetEscrow returns the escrow stored under this id, or nil when there is
// none.
func GetEscrow(db tillit.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	esc, err := loadEscrow(db, NewBucket(), id)
	if errors.ErrNotFound.Is(err) {
		return nil, nil
	}
	return esc, err
}

// GetEscrowsBySource returns the ids of every escrow this source created,
// including resolved ones.
func GetEscrowsBySource(db tillit.ReadOnlyKVStore, src tillit.Address) ([][]byte, error) {
	set, err := senderIDs(db, NewSendersBucket(), src)
	if err != nil {
		return nil, err
	}
	return set.IDs, nil
}

// GetEscrowCount returns how many escrows were ever created.
func GetEscrowCount(db tillit.ReadOnlyKVStore) (int64, error) {
	seq := NewIDSeq()
	count, _, err := seq.Latest(db)
	return count, err
}

// GetCreationFee returns the current creation fee. A nil coin means free
// creation.
func GetCreationFee(db tillit.ReadOnlyKVStore) (*coin.Coin, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.CreationFee.Clone(), nil
}
