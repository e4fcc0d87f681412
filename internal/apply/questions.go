package apply

import (
	"context"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/jonathan/apply-agent/internal/answers"
	"github.com/jonathan/apply-agent/internal/types"
)

// Container selectors for the three question shapes ATS forms use. Each
// couples a label to the control it describes.
const (
	textQuestionSelector     = `div:has(> label):has(> textarea), div:has(> label):has(> input[type="text"])`
	dropdownQuestionSelector = `div:has(> label):has(> select)`
	radioQuestionSelector    = `div:has(> label):has(> input[type="radio"]), fieldset:has(> legend):has(> input[type="radio"])`
)

// questionHandler fills custom screening questions with the answerer.
// Every handler is best-effort per question: one broken container never
// stops the rest of the form.
type questionHandler struct {
	answerer *answers.Answerer
}

func jobContext(job types.JobRecord) answers.JobContext {
	return answers.JobContext{
		Company:    job.Company,
		Title:      job.Title,
		FitScore:   job.Fit.Score,
		WhyGoodFit: job.Fit.WhyGoodFit,
	}
}

// HandleAll answers the free-text, dropdown and radio questions on the
// page, in that order.
func (h *questionHandler) HandleAll(ctx context.Context, page playwright.Page, job types.JobRecord) {
	log.Println("💬 Running AI-driven question handler...")
	jc := jobContext(job)
	h.freeText(ctx, page, jc)
	h.dropdowns(ctx, page, jc)
	h.radios(ctx, page, jc)
}

func (h *questionHandler) freeText(ctx context.Context, page playwright.Page, jc answers.JobContext) {
	containers := page.Locator(textQuestionSelector)
	count, err := containers.Count()
	if err != nil {
		log.Printf("Error in free-text question handler: %v", err)
		return
	}

	for i := 0; i < count; i++ {
		container := containers.Nth(i)
		label, ok := containerLabel(container)
		if !ok {
			continue
		}

		input := container.Locator(`textarea, input[type="text"]`).First()
		if n, err := input.Count(); err != nil || n == 0 {
			continue
		}
		// Leave answers a human already typed alone.
		if existing, err := input.InputValue(); err == nil && strings.TrimSpace(existing) != "" {
			continue
		}

		answer := h.answerer.FreeText(ctx, label, jc)
		if err := input.ScrollIntoViewIfNeeded(); err != nil {
			log.Printf("Error in free-text question handler: %v", err)
			continue
		}
		if err := input.Fill(answer); err != nil {
			log.Printf("Error in free-text question handler: %v", err)
			continue
		}
		log.Printf("✅ Filled text question: %s → %s", label, truncate(answer, 50))
	}
}

func (h *questionHandler) dropdowns(ctx context.Context, page playwright.Page, jc answers.JobContext) {
	containers := page.Locator(dropdownQuestionSelector)
	count, err := containers.Count()
	if err != nil {
		log.Printf("Error in dropdown handler: %v", err)
		return
	}

	for i := 0; i < count; i++ {
		container := containers.Nth(i)
		label, ok := containerLabel(container)
		if !ok {
			continue
		}

		selectEl := container.Locator("select").First()
		if n, err := selectEl.Count(); err != nil || n == 0 {
			continue
		}

		options := selectableOptions(selectEl)
		if len(options) == 0 {
			continue
		}

		answer := h.answerer.Choice(ctx, label, options, jc)
		if err := selectEl.ScrollIntoViewIfNeeded(); err != nil {
			log.Printf("Error in dropdown handler: %v", err)
			continue
		}
		if _, err := selectEl.SelectOption(playwright.SelectOptionValues{Labels: &[]string{answer}}); err != nil {
			log.Printf("Error in dropdown handler: %v", err)
			continue
		}
		log.Printf("✅ Selected dropdown %s → %s", label, answer)
	}
}

func (h *questionHandler) radios(ctx context.Context, page playwright.Page, jc answers.JobContext) {
	containers := page.Locator(radioQuestionSelector)
	count, err := containers.Count()
	if err != nil {
		log.Printf("Error in radio handler: %v", err)
		return
	}

	for i := 0; i < count; i++ {
		container := containers.Nth(i)

		// A fieldset's legend is the question; plain divs fall back to
		// their first label.
		label := ""
		legend := container.Locator("legend").First()
		if n, err := legend.Count(); err == nil && n > 0 {
			if text, err := legend.TextContent(); err == nil {
				label = strings.TrimSpace(text)
			}
		}
		if label == "" {
			var ok bool
			if label, ok = containerLabel(container); !ok {
				continue
			}
		}

		radios, options := radioOptions(page, container)
		if len(options) == 0 {
			continue
		}

		answer := h.answerer.Choice(ctx, label, options, jc)
		for j, text := range options {
			if text != answer {
				continue
			}
			if err := radios[j].ScrollIntoViewIfNeeded(); err != nil {
				log.Printf("Error in radio handler: %v", err)
				break
			}
			if err := radios[j].Check(); err != nil {
				log.Printf("Error in radio handler: %v", err)
				break
			}
			log.Printf("✅ Checked radio %s → %s", label, answer)
			break
		}
	}
}

// containerLabel reads a question container's first label text.
func containerLabel(container playwright.Locator) (string, bool) {
	label := container.Locator("label").First()
	if n, err := label.Count(); err != nil || n == 0 {
		return "", false
	}
	text, err := label.TextContent()
	if err != nil {
		return "", false
	}
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// selectableOptions lists a select's choosable option texts, skipping
// placeholders and disabled entries.
func selectableOptions(selectEl playwright.Locator) []string {
	opts := selectEl.Locator("option")
	count, err := opts.Count()
	if err != nil {
		return nil
	}

	var texts []string
	for i := 0; i < count; i++ {
		opt := opts.Nth(i)
		text, err := opt.TextContent()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if disabled, err := opt.IsDisabled(); err == nil && disabled {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}

// radioOptions pairs each radio input with its visible label text,
// resolved through label[for], falling back to the value or aria-label.
func radioOptions(page playwright.Page, container playwright.Locator) ([]playwright.Locator, []string) {
	radios := container.Locator(`input[type="radio"]`)
	count, err := radios.Count()
	if err != nil {
		return nil, nil
	}

	var els []playwright.Locator
	var texts []string
	for i := 0; i < count; i++ {
		radio := radios.Nth(i)
		text := ""
		if id, _ := radio.GetAttribute("id"); id != "" {
			lbl := page.Locator(`label[for="` + id + `"]`).First()
			if n, err := lbl.Count(); err == nil && n > 0 {
				if t, err := lbl.TextContent(); err == nil {
					text = strings.TrimSpace(t)
				}
			}
		}
		if text == "" {
			if val, _ := radio.GetAttribute("value"); val != "" {
				text = strings.TrimSpace(val)
			} else if aria, _ := radio.GetAttribute("aria-label"); aria != "" {
				text = strings.TrimSpace(aria)
			}
		}
		if text == "" {
			continue
		}
		els = append(els, radio)
		texts = append(texts, text)
	}
	return els, texts
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
