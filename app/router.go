package app

import (
	"regexp"

	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches messages to the handler registered for their path. It
// implements both the registration and the dispatch side.
type Router struct {
	handlers map[string]tillit.Handler
}

var _ tillit.Registry = (*Router)(nil)
var _ tillit.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]tillit.Handler),
	}
}

// Handle registers the handler for the message's path. Registration happens
// during the setup phase, so programming errors are panics.
func (r *Router) Handle(msg tillit.Msg, h tillit.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("re-registering route: " + path)
	}
	r.handlers[path] = h
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx tillit.Tx) (tillit.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	h, ok := r.handlers[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", msg.Path())
	}
	return h, nil
}
