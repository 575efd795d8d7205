package frontend

import (
	"html/template"
	"net/http"

	"github.com/trackinventory/trackinventory/internal/log"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Track Inventory</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 3rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))

const termsHTML = template.HTML(`
<p>Track Inventory provides inventory tracking services on a subscription
basis. By creating an account you agree to use the service only for lawful
business purposes and to keep your account credentials confidential.</p>
<p>Subscriptions are billed in advance for the selected plan duration and
renew only when a new payment is completed. Promotional discounts apply to
the order they were redeemed against.</p>
<p>The service is provided as-is; we may suspend accounts that abuse the
service or fail payment verification.</p>
`)

const privacyHTML = template.HTML(`
<p>We store the account details you provide (name, email, mobile number and
business details) to operate your subscription. Session credentials are kept
on your own device and removed when you sign out.</p>
<p>Payments are handled by our payment gateway; card details never reach our
servers. We retain transaction records for billing and audit purposes.</p>
<p>We do not sell personal data. Contact support to request deletion of your
account data.</p>
`)

func servePage(title string, body template.HTML) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := pageTemplate.Execute(w, struct {
			Title string
			Body  template.HTML
		}{Title: title, Body: body})
		if err != nil {
			log.FromRequest(r).Error().Err(err).Msg("frontend: failed to render page")
		}
	}
}
