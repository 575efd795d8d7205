package payments

import (
	"github.com/cli/browser"
)

func openBrowser(rawURL string) error {
	return browser.OpenURL(rawURL)
}
