/*
Package std wires the standard extensions together into one executable
stack. It is a good place to see how the components fit; replace parts with
custom implementations as your deployment grows.
*/
package std

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/app"
	"github.com/tillit-one/tillit/x"
	"github.com/tillit-one/tillit/x/cash"
	"github.com/tillit-one/tillit/x/cond"
	"github.com/tillit-one/tillit/x/currency"
	"github.com/tillit-one/tillit/x/escrow"
	"github.com/tillit-one/tillit/x/utils"
)

// Chain returns the standard chain of decorators: logging, panic recovery
// and per operation savepoints so every call is all-or-nothing.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// bad calls must not leave partial state behind, neither in
		// Check nor in Deliver
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Router returns a router with every standard extension registered.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()

	ctrl := cash.NewController()
	policies, _, events, thresholds := cond.StandardRegistry()

	cash.RegisterRoutes(r, auth, ctrl)
	cond.RegisterRoutes(r, auth, events, thresholds)
	currency.RegisterRoutes(r, auth, escrow.Authority)
	escrow.RegisterRoutes(r, auth, ctrl, policies)
	return r
}

// Stack wires up a standard router with the standard decorator chain.
func Stack(auth x.Authenticator) tillit.Handler {
	return Chain().WithHandler(Router(auth))
}

// QueryRouter returns a router with every standard read-only query
// registered.
func QueryRouter() tillit.QueryRouter {
	qr := tillit.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		cond.RegisterQuery,
		currency.RegisterQuery,
		escrow.RegisterQuery,
	)
	return qr
}

// Initializer returns the combined genesis loader of all standard
// extensions.
func Initializer() tillit.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		currency.Initializer{},
		escrow.Initializer{},
	)
}
