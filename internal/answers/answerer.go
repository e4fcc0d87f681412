package answers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/apply-agent/internal/llm"
)

// DefaultPersonalContext is the first-person framing injected into every
// answer prompt. Override it through config when the applicant changes.
const DefaultPersonalContext = "Personal Context: I live in Germany and hold a valid visa, " +
	"I am authorized to work in the US without restriction, " +
	"I can start one month from today's date, " +
	"and my salary expectation should align with the role and company."

// JobContext carries the per-job facts a prompt is grounded in.
type JobContext struct {
	Company    string
	Title      string
	FitScore   float64
	WhyGoodFit string
}

// Label returns the "Company - Title" string stored alongside answers.
func (j JobContext) Label() string {
	return fmt.Sprintf("%s - %s", j.Company, j.Title)
}

// Answerer produces an answer for every question put to it. Memory is
// consulted first, then the LLM, then the canned fallbacks; by
// construction there is no error path back to the form filler.
type Answerer struct {
	client          llm.Client
	bank            *Bank
	personalContext string
}

// NewAnswerer builds an answerer over a client and a loaded bank. A nil
// client skips generation entirely and relies on memory plus fallbacks.
func NewAnswerer(client llm.Client, bank *Bank, personalContext string) *Answerer {
	if personalContext == "" {
		personalContext = DefaultPersonalContext
	}
	return &Answerer{
		client:          client,
		bank:            bank,
		personalContext: personalContext,
	}
}

// FreeText answers an open question. The answer is remembered under the
// normalized label before it is returned.
func (a *Answerer) FreeText(ctx context.Context, label string, job JobContext) string {
	key := MemoryKey(label, nil)
	if answer, ok := a.bank.Lookup(key); ok {
		log.Printf("[answers] reused remembered answer for %q", label)
		return answer
	}

	answer, err := a.generate(ctx, a.freeTextPrompt(label, job), llm.TierStandard)
	if err != nil {
		log.Printf("[answers] generation failed for %q: %v", label, err)
		answer = fallbackAnswer(label)
	}

	a.bank.Save(ctx, key, answer, job.Label())
	return answer
}

// Choice answers a constrained question and always returns one of
// options verbatim. An unusable or missing model reply defaults to the
// first option. Empty options return "".
func (a *Answerer) Choice(ctx context.Context, label string, options []string, job JobContext) string {
	if len(options) == 0 {
		return ""
	}

	key := MemoryKey(label, options)
	if answer, ok := a.bank.Lookup(key); ok {
		log.Printf("[answers] reused remembered choice for %q", label)
		return answer
	}

	answer := ""
	reply, err := a.generate(ctx, a.choicePrompt(label, options, job), llm.TierLite)
	if err != nil {
		log.Printf("[answers] choice generation failed for %q: %v", label, err)
	} else {
		answer = matchOption(reply, options)
		if answer == "" {
			log.Printf("[answers] model reply %q matches no option for %q", reply, label)
		}
	}
	if answer == "" {
		answer = options[0]
		log.Printf("[answers] defaulting %q to first option %q", label, answer)
	}

	a.bank.Save(ctx, key, answer, job.Label())
	return answer
}

func (a *Answerer) generate(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if a.client == nil {
		return "", fmt.Errorf("no LLM client configured")
	}
	reply, err := a.client.GenerateText(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	reply = llm.CleanAnswer(reply)
	if reply == "" {
		return "", fmt.Errorf("empty model reply")
	}
	return reply, nil
}

func (a *Answerer) freeTextPrompt(label string, job JobContext) string {
	return fmt.Sprintf(
		"You are helping complete a job application. %s\n\n"+
			"Job Context:\n"+
			"- Company: %s\n"+
			"- Role: %s\n"+
			"- Fit Score: %.0f/10\n"+
			"- Key Strengths: %s\n\n"+
			"Question: %s\n\n"+
			"Provide a direct answer (max 100 words) that addresses this question.",
		a.personalContext, job.Company, job.Title, job.FitScore, job.WhyGoodFit, label)
}

func (a *Answerer) choicePrompt(label string, options []string, job JobContext) string {
	return fmt.Sprintf(
		"You are helping complete a job application for %s at %s.\n"+
			"%s\n"+
			"Question: %s\n"+
			"Choices: %s\n"+
			"Reply with exactly the one choice that best fits.",
		job.Title, job.Company, a.personalContext, label, strings.Join(options, " | "))
}

// matchOption maps a model reply onto one of the offered options,
// case-insensitively and in either containment direction ("Yes" matches
// "Yes, I am authorized"). Returns "" when nothing matches.
func matchOption(reply string, options []string) string {
	candidate := strings.ToLower(strings.TrimSpace(reply))
	if candidate == "" {
		return ""
	}
	for _, opt := range options {
		lower := strings.ToLower(opt)
		if strings.Contains(lower, candidate) || strings.Contains(candidate, lower) {
			return opt
		}
	}
	return ""
}
