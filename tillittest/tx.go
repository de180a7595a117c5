package tillittest

import "github.com/tillit-one/tillit"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg tillit.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ tillit.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tillit.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a mock message. It carries no payload, only a configurable routing
// path and validation result.
type Msg struct {
	// RoutePath returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ tillit.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "test message " + m.RoutePath }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
