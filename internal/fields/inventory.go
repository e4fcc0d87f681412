package fields

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// FieldInfo describes one form control, for diagnostics and the form
// debugging command.
type FieldInfo struct {
	Tag         string
	Name        string
	ID          string
	Type        string
	Placeholder string
	Label       string
}

func (f FieldInfo) String() string {
	return fmt.Sprintf("tag=%s, name=%s, id=%s, type=%s, placeholder=%s, label=%s",
		f.Tag, f.Name, f.ID, f.Type, f.Placeholder, f.Label)
}

// Inventory lists every input, select and textarea on the page with the
// attributes used to locate and label it.
func Inventory(page playwright.Page) ([]FieldInfo, error) {
	controls := page.Locator("input, select, textarea")
	count, err := controls.Count()
	if err != nil {
		return nil, fmt.Errorf("listing form controls: %w", err)
	}

	infos := make([]FieldInfo, 0, count)
	for i := 0; i < count; i++ {
		control := controls.Nth(i)
		info := FieldInfo{}
		if tag, err := control.Evaluate("e => e.tagName", nil); err == nil {
			if s, ok := tag.(string); ok {
				info.Tag = s
			}
		}
		info.Name, _ = control.GetAttribute("name")
		info.ID, _ = control.GetAttribute("id")
		info.Type, _ = control.GetAttribute("type")
		info.Placeholder, _ = control.GetAttribute("placeholder")
		info.Label, _ = LabelText(control)
		infos = append(infos, info)
	}
	return infos, nil
}

// LogInventory dumps the form controls to the log, one numbered line per
// control.
func LogInventory(page playwright.Page) {
	infos, err := Inventory(page)
	if err != nil {
		log.Printf("⚠️ Could not inventory form fields: %v", err)
		return
	}
	log.Println("🔍 Debugging form fields on page...")
	for i, info := range infos {
		log.Printf("#%d: %s", i+1, info)
	}
}
