package tillit

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit/errors"
)

// Msg is a request for the state machine to take an action (make a state
// transition). It is just the request, and must be validated by the Handlers.
// All authentication information is in the wrapping Tx.
type Msg interface {
	proto.Message

	// Path returns the routing path for this message, consumed by the
	// Router to locate the proper Handler. Must be alphanumeric
	// [0-9A-Za-z_/]+
	Path() string

	// Validate performs static checks on the message content. It must
	// not touch any state.
	Validate() error
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender,
// which is handled by the surrounding middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is of the
// expected type, validates it and loads it into the destination.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}

	dest := reflect.ValueOf(destination)
	val := reflect.ValueOf(msg)
	if dest.Type() != val.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dest.Elem().Set(val.Elem())
	return nil
}
