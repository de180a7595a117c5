package tillit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit/errors"
)

func TestConditionParse(t *testing.T) {
	c := NewCondition("escrow", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 7})
	require.NoError(t, c.Validate())

	ext, typ, data, err := c.Parse()
	require.NoError(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, "seq", typ)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7}, data)

	// data containing a newline must still parse
	nl := NewCondition("test", "type", []byte{0x20, 0x0a, 0x20})
	require.NoError(t, nl.Validate())

	bad := Condition("not-a-condition")
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestConditionAddressIsStable(t *testing.T) {
	a := NewCondition("cond", "policy", []byte("deadline"))
	b := NewCondition("cond", "policy", []byte("deadline"))
	c := NewCondition("cond", "policy", []byte("event"))

	assert.Equal(t, a.Address(), b.Address())
	assert.NotEqual(t, a.Address(), c.Address())
	assert.Len(t, a.Address(), AddressLength)
}

func TestAddressValidate(t *testing.T) {
	good := NewCondition("test", "type", []byte("data")).Address()
	require.NoError(t, good.Validate())

	tooShort := Address{1, 2, 3}
	assert.True(t, errors.ErrInput.Is(tooShort.Validate()))

	burn := make(Address, AddressLength)
	assert.True(t, burn.IsZero())
	assert.True(t, errors.ErrInput.Is(burn.Validate()))

	assert.True(t, Address(nil).IsZero())
	assert.False(t, good.IsZero())
}

func TestAddressJSON(t *testing.T) {
	addr := NewCondition("test", "type", []byte("json")).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var loaded Address
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.Equal(t, addr, loaded)

	var empty Address
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty)

	assert.Error(t, json.Unmarshal([]byte(`"zz"`), &loaded))
}
