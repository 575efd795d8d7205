package frontend

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trackinventory/trackinventory/internal/api"
	"github.com/trackinventory/trackinventory/internal/httputil"
	"github.com/trackinventory/trackinventory/internal/payments"
	"github.com/trackinventory/trackinventory/internal/sessions"
	"github.com/trackinventory/trackinventory/internal/urlutil"
)

// backendError maps an api error onto the HTTP status we reply with. Failed
// calls leave the caller on the same step to retry; they never change session
// state here.
func backendError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return httputil.NewError(apiErr.StatusCode, err)
	}
	return httputil.NewError(http.StatusBadGateway, err)
}

func (a *App) signInPage(w http.ResponseWriter, r *http.Request) {
	redirectURI, _ := urlutil.RedirectURL(r)
	httputil.RenderJSON(w, http.StatusOK, map[string]any{
		"signIn":      true,
		"redirectUri": redirectURI,
	})
}

func (a *App) signIn(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	result, err := a.client.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return backendError(err)
	}
	a.sessions.Login(r.Context(), result.Token, result.User)

	redirectURI, _ := urlutil.RedirectURL(r)
	httputil.RenderJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"redirectUri":   redirectURI,
	})
	return nil
}

func (a *App) signOut(w http.ResponseWriter, _ *http.Request) error {
	a.sessions.Logout()
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"authenticated": false})
	return nil
}

func (a *App) signUp(w http.ResponseWriter, r *http.Request) error {
	var req api.SignUpRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := a.client.SignUp(r.Context(), &req); err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusCreated, map[string]any{"otpSentTo": req.Email})
	return nil
}

func (a *App) otpSend(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		SentTo  string `json:"sentTo"`
		IsEmail bool   `json:"isEmail"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := a.client.SendOTP(r.Context(), req.SentTo, req.IsEmail); err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"otpSentTo": req.SentTo})
	return nil
}

func (a *App) otpVerify(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Code    string `json:"code"`
		SentTo  string `json:"sentTo"`
		IsEmail bool   `json:"isEmail"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	result, err := a.client.VerifyOTP(r.Context(), req.Code, req.SentTo, req.IsEmail)
	if err != nil {
		return backendError(err)
	}
	a.sessions.Login(r.Context(), result.Token, result.User)

	httputil.RenderJSON(w, http.StatusOK, map[string]any{"authenticated": true})
	return nil
}

func (a *App) passwordForgot(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := a.client.SendOTP(r.Context(), req.Email, true); err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"otpSentTo": req.Email})
	return nil
}

func (a *App) passwordReset(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := a.client.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"reset": true})
	return nil
}

func (a *App) passwordChange(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := a.client.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"changed": true})
	return nil
}

// profile returns the current session view plus best-effort token hints. The
// profile may still be null right after sign-in; callers tolerate that.
func (a *App) profile(w http.ResponseWriter, _ *http.Request) error {
	snapshot := a.sessions.Snapshot()

	response := map[string]any{
		"user": snapshot.User,
	}
	if claims, ok := sessions.ParseClaims(snapshot.Token); ok {
		response["hints"] = map[string]any{
			"userId": claims.UserID,
			"email":  claims.Email,
		}
	}
	httputil.RenderJSON(w, http.StatusOK, response)
	return nil
}

func (a *App) profileSave(w http.ResponseWriter, r *http.Request) error {
	var user sessions.User
	if err := httputil.DecodeJSON(r, &user); err != nil {
		return err
	}

	updated, err := a.client.CreateUpdateUser(r.Context(), &user)
	if err != nil {
		return backendError(err)
	}
	if updated != nil {
		a.sessions.UpdateUser(r.Context(), updated)
	} else {
		a.sessions.Refresh(r.Context())
	}

	httputil.RenderJSON(w, http.StatusOK, map[string]any{"saved": true})
	return nil
}

func (a *App) businessDetails(w http.ResponseWriter, r *http.Request) error {
	var details sessions.Business
	if err := httputil.DecodeJSON(r, &details); err != nil {
		return err
	}
	if err := a.client.SaveBusinessDetails(r.Context(), &details); err != nil {
		return backendError(err)
	}
	// the saved details show up in the profile on the next fetch
	a.sessions.Refresh(r.Context())

	httputil.RenderJSON(w, http.StatusOK, map[string]any{"saved": true})
	return nil
}

func (a *App) servicePlans(w http.ResponseWriter, r *http.Request) error {
	name := mux.Vars(r)["name"]

	service, plans, err := a.client.GetServiceByName(r.Context(), name)
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{
		"service": service,
		"plans":   plans,
	})
	return nil
}

func (a *App) promoApply(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	result, err := a.client.ApplyPromo(r.Context(), req.Code)
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, result)
	return nil
}

func (a *App) subscribe(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ServiceID    string `json:"serviceId"`
		PlanID       string `json:"planId"`
		PlanDuration int    `json:"planDuration"`
		Amount       int64  `json:"amount"`
		PromoCode    string `json:"promoCode"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	err := a.flow.Subscribe(r.Context(), &payments.SubscribeRequest{
		ServiceID:    req.ServiceID,
		PlanID:       req.PlanID,
		PlanDuration: req.PlanDuration,
		Amount:       req.Amount,
		PromoCode:    req.PromoCode,
	})
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, map[string]any{"subscribed": true})
	return nil
}

func (a *App) paymentsDashboard(w http.ResponseWriter, r *http.Request) error {
	dashboard, err := a.client.PaymentDashboard(r.Context())
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, dashboard)
	return nil
}

func (a *App) paymentsTransactions(w http.ResponseWriter, r *http.Request) error {
	transactions, err := a.client.PaymentTransactions(r.Context())
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, transactions)
	return nil
}

func (a *App) paymentsTransaction(w http.ResponseWriter, r *http.Request) error {
	transaction, err := a.client.PaymentTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return backendError(err)
	}
	httputil.RenderJSON(w, http.StatusOK, transaction)
	return nil
}
