package shared

import (
	"fmt"

	"github.com/pkg/browser"
)

var openURL = browser.OpenURL

// OpenBrowser opens the default system browser to the specified URL.
func OpenBrowser(url string) error {
	if err := openURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
