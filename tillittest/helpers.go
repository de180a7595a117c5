package tillittest

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/tillit-one/tillit"
)

var condCnt uint64

// NewCondition returns a new, unique condition. Conditions created by this
// function are deterministic within one process run but unique among each
// other.
func NewCondition() tillit.Condition {
	n := atomic.AddUint64(&condCnt, 1)
	return tillit.NewCondition("test", "seq", []byte(fmt.Sprint(n)))
}

// NewAddress returns a new, unique address.
func NewAddress() tillit.Address {
	return NewCondition().Address()
}

// SequenceID returns an ID encoded the way sequence counters do it. Use to
// address entities created with a sequence derived key.
func SequenceID(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}
