// Package routes registers every endpoint and the gates in front of it.
package routes

import (
	"net/http"

	"github.com/bistrobuzz/bistro/app/controllers"
	"github.com/bistrobuzz/bistro/pkg/bind"
	"github.com/bistrobuzz/bistro/pkg/ctx"
	"github.com/bistrobuzz/bistro/pkg/middleware"
	"github.com/bistrobuzz/bistro/pkg/rbac"
	"github.com/bistrobuzz/bistro/pkg/router"
)

// Body caps for the routes that accept JSON. Anything else falls back to
// MAX_BODY_BYTES.
const (
	smallBody = 4 << 10
	formBody  = 16 << 10
	orderBody = 64 << 10
)

// Controllers groups the handlers mounted by RegisterAPI.
type Controllers struct {
	Home    *controllers.HomeController
	Auth    *controllers.AuthController
	Menu    *controllers.MenuController
	User    *controllers.UserController
	Review  *controllers.ReviewController
	Cart    *controllers.CartController
	Payment *controllers.PaymentController
	Stats   *controllers.StatsController
	Contact *controllers.ContactController
}

// Access supplies what the gates need.
type Access struct {
	Tokens rbac.TokenVerifier
	Roles  rbac.RoleLookup
}

// guard runs gates in order, then records the caller for the access log.
func guard(gates ...rbac.Gate) router.Middleware {
	run := rbac.Guard(gates...)
	return func(next http.Handler) http.Handler {
		return run(middleware.Caller(next))
	}
}

func RegisterAPI(r *router.Router, a Access, c Controllers) {
	authenticated := rbac.Authenticated(a.Tokens)
	admin := rbac.AdminOnly(a.Roles)
	owner := rbac.Owner("email")

	r.Get("/", "home", ctx.Wrap(c.Home.Index))
	r.Post("/jwt", "auth.token", ctx.Wrap(c.Auth.Issue), bind.Limit(smallBody))

	// Public reads and sign-up.
	r.Get("/menu", "menu.index", ctx.Wrap(c.Menu.Index))
	r.Get("/menu/{category}", "menu.category", ctx.Wrap(c.Menu.Category))
	r.Get("/reviews", "reviews.index", ctx.Wrap(c.Review.Index))
	r.Post("/users", "users.store", ctx.Wrap(c.User.Store), bind.Limit(smallBody))
	r.Post("/contact", "contact.send", ctx.Wrap(c.Contact.Send), bind.Limit(formBody))

	// Any signed-in customer.
	user := r.Group("", guard(authenticated))
	user.Get("/user/admin/{email}", "users.admin_check", ctx.Wrap(c.User.AdminCheck))
	user.Post("/carts", "carts.store", ctx.Wrap(c.Cart.Store), bind.Limit(smallBody))
	user.Delete("/carts/{id}", "carts.destroy", ctx.Wrap(c.Cart.Destroy))
	user.Post("/payments", "payments.store", ctx.Wrap(c.Payment.Store), bind.Limit(orderBody))
	user.Post("/create-payment-intent", "payments.intent", ctx.Wrap(c.Payment.Intent), bind.Limit(smallBody))

	// Signed-in customer reading their own records.
	own := r.Group("", guard(authenticated, owner))
	own.Get("/carts", "carts.index", ctx.Wrap(c.Cart.Index))
	own.Get("/payments", "payments.index", ctx.Wrap(c.Payment.Index))

	// Staff.
	staff := r.Group("", guard(authenticated, admin))
	staff.Post("/menu", "menu.store", ctx.Wrap(c.Menu.Store), bind.Limit(formBody))
	staff.Delete("/menu/{id}", "menu.destroy", ctx.Wrap(c.Menu.Destroy))
	staff.Get("/users", "users.index", ctx.Wrap(c.User.Index))
	staff.Patch("/users/admin/{id}", "users.promote", ctx.Wrap(c.User.Promote))
	staff.Get("/admin-stats", "stats.admin", ctx.Wrap(c.Stats.Admin))
	staff.Get("/order-stats", "stats.orders", ctx.Wrap(c.Stats.Orders))
}
