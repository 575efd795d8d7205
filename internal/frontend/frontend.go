// Package frontend exposes the product's local HTTP surface: the auth flows,
// profile and onboarding endpoints, subscription checkout, and the static
// legal pages. Handlers are thin; all session authority lives in the
// sessions controller and all backend knowledge in the api client.
package frontend

import (
	"net/url"

	"github.com/gorilla/mux"

	"github.com/trackinventory/trackinventory/internal/api"
	"github.com/trackinventory/trackinventory/internal/guard"
	"github.com/trackinventory/trackinventory/internal/httputil"
	"github.com/trackinventory/trackinventory/internal/payments"
	"github.com/trackinventory/trackinventory/internal/sessions"
)

// App wires the HTTP surface to its collaborators.
type App struct {
	client   *api.Client
	sessions *sessions.Controller
	flow     *payments.Flow
	guard    *guard.Guard
}

// New creates the app.
func New(client *api.Client, ctrl *sessions.Controller, flow *payments.Flow, g *guard.Guard) *App {
	return &App{
		client:   client,
		sessions: ctrl,
		flow:     flow,
		guard:    g,
	}
}

// Router builds the route table. Routes under /api except the auth entry
// points require an authenticated session.
func (a *App) Router() *mux.Router {
	r := httputil.NewRouter()

	r.HandleFunc("/healthz", httputil.HealthCheck)
	r.HandleFunc("/signin", a.signInPage).Methods("GET")
	r.HandleFunc("/terms", servePage("Terms of Service", termsHTML)).Methods("GET")
	r.HandleFunc("/privacy", servePage("Privacy Policy", privacyHTML)).Methods("GET")

	public := r.PathPrefix("/api").Subrouter()
	public.Handle("/sign-in", httputil.HandlerFunc(a.signIn)).Methods("POST")
	public.Handle("/sign-up", httputil.HandlerFunc(a.signUp)).Methods("POST")
	public.Handle("/otp/send", httputil.HandlerFunc(a.otpSend)).Methods("POST")
	public.Handle("/otp/verify", httputil.HandlerFunc(a.otpVerify)).Methods("POST")
	public.Handle("/password/forgot", httputil.HandlerFunc(a.passwordForgot)).Methods("POST")
	public.Handle("/password/reset", httputil.HandlerFunc(a.passwordReset)).Methods("POST")

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(a.guard.Middleware)
	protected.Handle("/sign-out", httputil.HandlerFunc(a.signOut)).Methods("POST")
	protected.Handle("/profile", httputil.HandlerFunc(a.profile)).Methods("GET")
	protected.Handle("/profile", httputil.HandlerFunc(a.profileSave)).Methods("POST")
	protected.Handle("/business-details", httputil.HandlerFunc(a.businessDetails)).Methods("POST")
	protected.Handle("/password/change", httputil.HandlerFunc(a.passwordChange)).Methods("POST")
	protected.Handle("/services/{name}/plans", httputil.HandlerFunc(a.servicePlans)).Methods("GET")
	protected.Handle("/promo/apply", httputil.HandlerFunc(a.promoApply)).Methods("POST")
	protected.Handle("/subscribe", httputil.HandlerFunc(a.subscribe)).Methods("POST")
	protected.Handle("/payments/dashboard", httputil.HandlerFunc(a.paymentsDashboard)).Methods("GET")
	protected.Handle("/payments/transactions", httputil.HandlerFunc(a.paymentsTransactions)).Methods("GET")
	protected.Handle("/payments/transactions/{id}", httputil.HandlerFunc(a.paymentsTransaction)).Methods("GET")

	return r
}

// SignInPath is the route the guard redirects unauthenticated requests to.
const SignInPath = "/signin"

// SignInURL resolves the sign-in entry point against the app's base URL.
func SignInURL(base *url.URL) *url.URL {
	return base.ResolveReference(&url.URL{Path: SignInPath})
}
