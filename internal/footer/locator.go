package footer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raysh454/footcheck/internal/interfaces"
)

// Selector is the tag the locator waits for.
const Selector = "footer"

// Locate waits up to timeout for the first footer of the current document to
// become visible. A footer that never becomes visible, including one that is
// in the DOM but hidden, is reported as found=false with a nil error. Only
// browser failures are returned as errors.
func Locate(ctx context.Context, page interfaces.Page, timeout time.Duration) (interfaces.Element, bool, error) {
	el, err := page.WaitVisible(ctx, Selector, timeout)
	switch {
	case err == nil:
		return el, true, nil
	case errors.Is(err, interfaces.ErrNotVisible):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("locate footer: %w", err)
	}
}

// describeAbsence tells apart a missing footer from a hidden one.
func describeAbsence(ctx context.Context, page interfaces.Page, timeout time.Duration) string {
	els, err := page.Find(ctx, Selector)
	if err != nil {
		return fmt.Sprintf("no visible <%s> within %s", Selector, timeout)
	}
	if len(els) == 0 {
		return fmt.Sprintf("no <%s> element in the document after %s", Selector, timeout)
	}
	return fmt.Sprintf("<%s> is present but not visible after %s", Selector, timeout)
}
