package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
)

const (
	// BucketName is where we store the escrows.
	BucketName = "esc"

	// sendersBucketName is where we store the per-source id index.
	sendersBucketName = "sender"

	// MaxPerSender bounds the number of escrows one source can have in
	// its index.
	MaxPerSender = 100
)

// NewBucket initializes an escrow bucket with the default name.
func NewBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// NewSendersBucket initializes the by-source index bucket.
func NewSendersBucket() orm.Bucket {
	return orm.NewBucket(sendersBucketName)
}

// NewIDSeq returns the monotonic escrow id counter.
func NewIDSeq() orm.Sequence {
	return orm.NewSequence(BucketName, "id")
}

// Condition returns the per-escrow custody condition. Its address holds the
// locked funds while the escrow is active; no key can sign for it.
func Condition(id []byte) tillit.Condition {
	return tillit.NewCondition("escrow", "seq", id)
}

// loadEscrow reads the escrow record or fails with ErrNotFound.
func loadEscrow(db tillit.ReadOnlyKVStore, bucket orm.Bucket, id []byte) (*Escrow, error) {
	var esc Escrow
	if err := bucket.One(db, id, &esc); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", id)
	}
	return &esc, nil
}

// senderIDs reads the by-source index. A missing index is an empty one.
func senderIDs(db tillit.ReadOnlyKVStore, bucket orm.Bucket, src tillit.Address) (*orm.IDSet, error) {
	var set orm.IDSet
	switch err := bucket.One(db, src, &set); {
	case err == nil:
		return &set, nil
	case errors.ErrNotFound.Is(err):
		return &orm.IDSet{}, nil
	default:
		return nil, err
	}
}

// indexSender appends the id to the source's index, enforcing the per
// source capacity.
func indexSender(db tillit.KVStore, bucket orm.Bucket, src tillit.Address, id []byte) error {
	set, err := senderIDs(db, bucket, src)
	if err != nil {
		return err
	}
	if set.Size() >= MaxPerSender {
		return errors.Wrapf(errors.ErrCapacity, "%d escrows per source", MaxPerSender)
	}
	if err := set.Add(id); err != nil {
		return errors.Wrap(err, "index")
	}
	return bucket.Put(db, src, set)
}
