package orm

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit/errors"
)

// IDSet is a stored set of references to other entities, kept sorted and
// unique. It backs secondary indexes like the escrow by-sender listing.
type IDSet struct {
	IDs [][]byte `protobuf:"bytes,1,rep,name=ids,proto3" json:"ids,omitempty"`
}

var _ Model = (*IDSet)(nil)

func (m *IDSet) Reset()         { *m = IDSet{} }
func (m *IDSet) String() string { return proto.CompactTextString(m) }
func (*IDSet) ProtoMessage()    {}

// Validate requires sorted, unique, non-empty references.
func (m *IDSet) Validate() error {
	var last []byte
	for _, id := range m.IDs {
		if len(id) == 0 {
			return errors.Wrap(errors.ErrEmpty, "id")
		}
		if last != nil && bytes.Compare(last, id) >= 0 {
			return errors.Wrap(errors.ErrModel, "ids not sorted or duplicated")
		}
		last = id
	}
	return nil
}

// Add inserts this reference in the set, sorted by order. Returns
// ErrDuplicate if already there.
func (m *IDSet) Add(id []byte) error {
	i, found := m.find(id)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "id already in set")
	}
	if i == len(m.IDs) {
		m.IDs = append(m.IDs, id)
		return nil
	}
	m.IDs = append(m.IDs, nil)
	copy(m.IDs[i+1:], m.IDs[i:])
	m.IDs[i] = id
	return nil
}

// Remove removes this reference from the set. Returns ErrNotFound if absent.
func (m *IDSet) Remove(id []byte) error {
	i, found := m.find(id)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "id not in set")
	}
	m.IDs = append(m.IDs[:i], m.IDs[i+1:]...)
	return nil
}

// Has returns true if the reference is in the set.
func (m *IDSet) Has(id []byte) bool {
	_, found := m.find(id)
	return found
}

// Size returns the number of references held.
func (m *IDSet) Size() int {
	return len(m.IDs)
}

// returns (index, found) where found is true if the id was in the set,
// index is where it is (or where it should be).
func (m *IDSet) find(id []byte) (int, bool) {
	for i, r := range m.IDs {
		switch bytes.Compare(id, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	return len(m.IDs), false
}
