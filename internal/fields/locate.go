package fields

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/jonathan/apply-agent/internal/ats"
)

// Resolve probes the page for a role's input, trying each selector in
// order and returning the first one that matches. A nil locator with a
// nil error means the form simply has no such field.
func Resolve(page playwright.Page, vendor ats.Vendor, role Role) (playwright.Locator, error) {
	for _, sel := range Selectors(vendor, role) {
		loc := page.Locator(sel).First()
		count, err := loc.Count()
		if err != nil {
			return nil, fmt.Errorf("probing %s with %q: %w", role, sel, err)
		}
		if count > 0 {
			return loc, nil
		}
	}
	return nil, nil
}

// labelScript walks from an input to its visible label: an explicit
// label[for=id], then an enclosing label, then the previous sibling's
// text. Runs in the page so it sees the rendered DOM.
const labelScript = `el => {
	if (el.id) {
		const lab = document.querySelector('label[for="' + el.id + '"]');
		if (lab) return lab.textContent;
	}
	const wrap = el.closest('label');
	if (wrap) return wrap.textContent;
	const prev = el.previousElementSibling;
	if (prev) return prev.textContent;
	return '';
}`

// LabelText returns the trimmed visible label for an input, or "" when
// the markup gives it no label at all.
func LabelText(loc playwright.Locator) (string, error) {
	result, err := loc.Evaluate(labelScript, nil)
	if err != nil {
		return "", fmt.Errorf("resolving label: %w", err)
	}
	text, ok := result.(string)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(text), nil
}
