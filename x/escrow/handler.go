package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/gconf"
	"github.com/tillit-one/tillit/orm"
	"github.com/tillit-one/tillit/x"
	"github.com/tillit-one/tillit/x/cash"
	"github.com/tillit-one/tillit/x/cond"
	"github.com/tillit-one/tillit/x/currency"
)

const (
	createEscrowCost  int64 = 300
	resolveEscrowCost int64 = 150
	configureCost     int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tillit.Registry, auth x.Authenticator, ctrl cash.Controller, policies *cond.Registry) {
	ledger := NewLedger(ctrl, policies)

	r.Handle(&CreateMsg{}, CreateHandler{
		auth:     auth,
		cash:     ctrl,
		policies: policies,
		ledger:   ledger,
		tokens:   currency.NewTokenBucket(),
		senders:  NewSendersBucket(),
		idSeq:    NewIDSeq(),
	})
	r.Handle(&ReleaseMsg{}, ReleaseHandler{ledger: ledger})
	r.Handle(&ReturnMsg{}, ReturnHandler{auth: auth, ledger: ledger})
	r.Handle(&SetAuthorityMsg{}, SetAuthorityHandler{})
	r.Handle(&UpdateFeeMsg{}, UpdateFeeHandler{auth: auth})
}

// RegisterQuery will register the escrow bucket as "/escrows" and the
// by-source index as "/escrows/source".
func RegisterQuery(qr tillit.QueryRouter) {
	NewBucket().Register("escrows", qr)
	NewSendersBucket().Register("escrows/source", qr)
}

// CreateHandler opens new escrows. It enforces the global policy (capacity,
// fee, currency allow-list) before delegating custody to the Ledger.
type CreateHandler struct {
	auth     x.Authenticator
	cash     cash.Controller
	policies *cond.Registry
	ledger   Ledger
	tokens   currency.TokenBucket
	senders  orm.Bucket
	idSeq    orm.Sequence
}

var _ tillit.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: createEscrowCost}, nil
}

func (h CreateHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, conf, source, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height, err := tillit.MustHeight(ctx)
	if err != nil {
		return nil, err
	}

	id, err := h.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}

	if conf.CreationFee != nil && conf.CreationFee.IsPositive() {
		if err := h.cash.MoveCoins(db, source, conf.Authority, *conf.CreationFee); err != nil {
			return nil, errors.Wrap(err, "creation fee")
		}
	}

	verifier, err := h.policies.Lookup(msg.VerifierRef)
	if err != nil {
		return nil, err
	}
	handle, err := verifier.Create(db, msg.Params)
	if err != nil {
		return nil, errors.Wrap(err, "create condition")
	}

	esc := &Escrow{
		Source:      source,
		Destination: msg.Destination,
		Amount:      msg.Amount,
		VerifierRef: msg.VerifierRef,
		ConditionID: handle,
		CreatedAt:   height,
		Status:      StatusActive,
		Memo:        msg.Memo,
	}
	if err := h.ledger.Init(db, id, esc); err != nil {
		return nil, err
	}
	if err := indexSender(db, h.senders, source, id); err != nil {
		return nil, err
	}

	res := &tillit.DeliverResult{
		Data: id,
		Tags: []tillit.KVPair{
			tillit.Pair("action", "create_escrow"),
			tillit.Pair("escrow", escrowTag(id)),
			tillit.Pair("source", source.String()),
			tillit.Pair("destination", msg.Destination.String()),
		},
	}
	return res, nil
}

// validate runs every check that does not mutate state, in the documented
// order: capacity, then the message's own checks, then the currency
// allow-list, then the authority configuration, then the defensive id
// probe. First failing check wins.
func (h CreateHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*CreateMsg, *Config, tillit.Address, error) {
	rawMsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "cannot get message")
	}
	msg, ok := rawMsg.(*CreateMsg)
	if !ok {
		return nil, nil, nil, errors.Wrapf(errors.ErrType, "want %T, got %T", &CreateMsg{}, rawMsg)
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}
	latest, _, err := h.idSeq.Latest(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if conf.MaxEscrows > 0 && latest >= conf.MaxEscrows {
		return nil, nil, nil, errors.Wrapf(errors.ErrCapacity, "%d escrows", conf.MaxEscrows)
	}

	if err := msg.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}

	switch listed, err := h.tokens.Registered(db, msg.Amount.Ticker); {
	case err != nil:
		return nil, nil, nil, err
	case !listed:
		return nil, nil, nil, errors.Wrapf(errors.ErrCurrency, "%s is not allow-listed", msg.Amount.Ticker)
	}

	if len(conf.Authority) == 0 {
		return nil, nil, nil, ErrAuthorityNotSet
	}

	// Should never trigger as ids come from a monotonic counter.
	nextID := orm.EncodeSequence(latest + 1)
	switch has, err := h.ledger.bucket.Has(db, nextID); {
	case err != nil:
		return nil, nil, nil, err
	case has:
		return nil, nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %X", nextID)
	}

	source := x.MainSigner(ctx, h.auth)
	if source == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return msg, conf, source.Address(), nil
}

// ReleaseHandler resolves an escrow in favour of the destination. There is
// no authorization: a met condition speaks for itself.
type ReleaseHandler struct {
	ledger Ledger
}

var _ tillit.Handler = ReleaseHandler{}

func (h ReleaseHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	var msg ReleaseMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &tillit.CheckResult{GasAllocated: resolveEscrowCost}, nil
}

func (h ReleaseHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	var msg ReleaseMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	esc, err := h.ledger.Release(ctx, db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "release_escrow"),
			tillit.Pair("escrow", escrowTag(msg.EscrowID)),
			tillit.Pair("destination", esc.Destination.String()),
		},
	}
	return res, nil
}

// ReturnHandler gives an active escrow back to its source. Only the source
// can trigger it, no condition is consulted.
type ReturnHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ tillit.Handler = ReturnHandler{}

func (h ReturnHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: resolveEscrowCost}, nil
}

func (h ReturnHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	esc, err := h.ledger.Refund(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "return_escrow"),
			tillit.Pair("escrow", escrowTag(msg.EscrowID)),
			tillit.Pair("source", esc.Source.String()),
		},
	}
	return res, nil
}

func (h ReturnHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*ReturnMsg, error) {
	var msg ReturnMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	esc, err := loadEscrow(db, h.ledger.bucket, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, esc.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the source can return an escrow")
	}
	return &msg, nil
}

// SetAuthorityHandler performs the one-time authority registration. First
// come, first served; afterwards the configuration is immutable.
type SetAuthorityHandler struct{}

var _ tillit.Handler = SetAuthorityHandler{}

func (h SetAuthorityHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: configureCost}, nil
}

func (h SetAuthorityHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Authority = msg.Authority
	if err := gconf.Save(db, configPkg, conf); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "set_authority"),
			tillit.Pair("authority", msg.Authority.String()),
		},
	}
	return res, nil
}

func (h SetAuthorityHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*SetAuthorityMsg, *Config, error) {
	var msg SetAuthorityMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if len(conf.Authority) != 0 {
		return nil, nil, errors.Wrap(errors.ErrImmutable, "authority already set")
	}
	return &msg, conf, nil
}

// UpdateFeeHandler changes the creation fee on behalf of the authority.
type UpdateFeeHandler struct {
	auth x.Authenticator
}

var _ tillit.Handler = UpdateFeeHandler{}

func (h UpdateFeeHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: configureCost}, nil
}

func (h UpdateFeeHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	conf.CreationFee = msg.Fee
	if err := gconf.Save(db, configPkg, conf); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "update_fee"),
		},
	}
	return res, nil
}

func (h UpdateFeeHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*UpdateFeeMsg, error) {
	var msg UpdateFeeMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	authority, err := Authority(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature required")
	}
	return &msg, nil
}

func escrowTag(id []byte) string {
	return tillit.Address(id).String()
}
