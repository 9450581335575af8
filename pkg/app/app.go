// Package app assembles the Bistro Buzz HTTP application from its backends.
//
//	a := app.New(app.Backends{...}, app.Settings{...})
//	http.ListenAndServe(":5000", a.Handler())
//
// Backends are interfaces so the same wiring runs against MongoDB in
// production and against internal/memstore in tests.
package app

import (
	"net/http"
	"time"

	"github.com/bistrobuzz/bistro/app/controllers"
	"github.com/bistrobuzz/bistro/app/routes"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/auth"
	"github.com/bistrobuzz/bistro/pkg/cache"
	"github.com/bistrobuzz/bistro/pkg/mail"
	"github.com/bistrobuzz/bistro/pkg/middleware"
	"github.com/bistrobuzz/bistro/pkg/payment"
	"github.com/bistrobuzz/bistro/pkg/router"
)

type MenuBackend interface {
	services.MenuStore
	services.Counter
}

type UserBackend interface {
	services.UserStore
	services.Counter
}

type PaymentBackend interface {
	services.PaymentStore
	services.Counter
	services.SalesSource
}

// Backends are the stores and gateways the services run on. Cache may be
// nil, in which case the menu is read from the store every time.
type Backends struct {
	Menu     MenuBackend
	Users    UserBackend
	Reviews  services.ReviewStore
	Carts    services.CartStore
	Payments PaymentBackend
	Tx       services.Transactor
	Cache    services.Cache
	Gateway  payment.Gateway
	Mailer   mail.Sender
}

type Settings struct {
	TokenSecret  string
	Currency     string
	MailFrom     string
	ContactTo    string
	MenuCacheTTL time.Duration
	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit int
	CORS      middleware.CORSOptions
}

// Application is the wired HTTP surface.
type Application struct {
	Tokens  *auth.TokenService
	Users   *services.UserService
	Limiter *middleware.Limiter

	router *router.Router
}

func New(b Backends, s Settings) *Application {
	if b.Cache == nil {
		b.Cache = cache.New(nil)
	}
	if s.CORS.AllowedOrigins == nil {
		s.CORS = middleware.DefaultCORSOptions()
	}

	tokens := auth.NewTokenService(s.TokenSecret)
	users := services.NewUserService(b.Users)
	menu := services.NewMenuService(b.Menu, b.Cache, s.MenuCacheTTL)
	reviews := services.NewReviewService(b.Reviews)
	carts := services.NewCartService(b.Carts)
	payments := services.NewPaymentService(b.Payments, b.Carts, b.Tx, b.Gateway, s.Currency)
	reports := services.NewReportService(b.Users, b.Menu, b.Payments, b.Payments)
	contact := services.NewContactService(b.Mailer, s.MailFrom, s.ContactTo)

	a := &Application{Tokens: tokens, Users: users}
	if s.RateLimit > 0 {
		a.Limiter = middleware.NewLimiter(s.RateLimit, time.Minute)
	}

	a.router = buildRouter(a, s)
	routes.RegisterAPI(a.router, routes.Access{Tokens: tokens, Roles: users}, routes.Controllers{
		Home:    controllers.NewHomeController(),
		Auth:    controllers.NewAuthController(tokens),
		Menu:    controllers.NewMenuController(menu),
		User:    controllers.NewUserController(users),
		Review:  controllers.NewReviewController(reviews),
		Cart:    controllers.NewCartController(carts),
		Payment: controllers.NewPaymentController(payments),
		Stats:   controllers.NewStatsController(reports),
		Contact: controllers.NewContactController(contact),
	})
	return a
}

func (a *Application) Handler() http.Handler { return a.router.Handler() }

// Routes lists every named route, for route:list.
func (a *Application) Routes() []router.RouteInfo { return a.router.Routes() }
