// Package fields holds the two write primitives the form workflow uses:
// idempotent toggles and clipboard-staged content replacement.
package fields

import (
	"context"

	"github.com/entrhq/eventfill/pkg/browser"
)

// ApplyToggle enables a checkbox or radio button. An already enabled control
// is left alone. The returned bool reports whether a click was made.
func ApplyToggle(ctx context.Context, el browser.Element) (bool, error) {
	checked, err := el.IsChecked(ctx)
	if err != nil {
		return false, err
	}
	if checked {
		return false, nil
	}
	if err := el.Click(ctx); err != nil {
		return false, err
	}
	return true, nil
}
