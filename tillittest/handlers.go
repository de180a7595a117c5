package tillittest

import "github.com/tillit-one/tillit"

// Handler is a mock implementation of the tillit.Handler interface.
//
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult tillit.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult tillit.DeliverResult
	DeliverErr    error
}

var _ tillit.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the tillit.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then wrapped handler method is
// called and its result returned.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ tillit.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx, next tillit.Checker) (*tillit.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx, next tillit.Deliverer) (*tillit.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps the handler with one decorator and returns it as a single
// handler.
func Decorate(h tillit.Handler, d tillit.Decorator) tillit.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn tillit.Handler
	dc tillit.Decorator
}

var _ tillit.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
