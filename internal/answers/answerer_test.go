package answers

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/apply-agent/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	calls   int
	replies []string
	err     error
}

func (c *scriptedClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return reply, nil
}

func (c *scriptedClient) Model(llm.ModelTier) string { return "test" }
func (c *scriptedClient) Close() error               { return nil }

var job = JobContext{Company: "Acme", Title: "Product Manager", FitScore: 8, WhyGoodFit: "Strong roadmap experience"}

func newTestAnswerer(client llm.Client) *Answerer {
	return NewAnswerer(client, NewBank(context.Background(), nil), "")
}

func TestFreeText_GeneratesOnceThenReuses(t *testing.T) {
	client := &scriptedClient{replies: []string{"I led three product launches."}}
	a := newTestAnswerer(client)

	first := a.FreeText(context.Background(), "Describe your product experience.", job)
	assert.Equal(t, "I led three product launches.", first)
	assert.Equal(t, 1, client.calls)

	// Identical question, even with different spacing, skips the model.
	second := a.FreeText(context.Background(), "  describe your product experience.  ", job)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
}

func TestFreeText_FallsBackOnProviderFailure(t *testing.T) {
	client := &scriptedClient{err: errors.New("rate limited")}
	a := newTestAnswerer(client)

	got := a.FreeText(context.Background(), "What are your salary expectations?", job)
	assert.Contains(t, got, "discussing compensation")

	// The fallback is remembered too; no retry on the next encounter.
	callsAfterFirst := client.calls
	_ = a.FreeText(context.Background(), "What are your salary expectations?", job)
	assert.Equal(t, callsAfterFirst, client.calls)
}

func TestFreeText_NilClientUsesFallback(t *testing.T) {
	a := newTestAnswerer(nil)

	got := a.FreeText(context.Background(), "When can you start?", job)
	assert.Contains(t, got, "2-3 weeks")
}

func TestChoice_MatchesEitherDirection(t *testing.T) {
	options := []string{"Yes, I am authorized", "No"}

	// Model replies with a fragment of an option.
	client := &scriptedClient{replies: []string{"yes"}}
	a := newTestAnswerer(client)
	got := a.Choice(context.Background(), "Are you authorized to work?", options, job)
	assert.Equal(t, "Yes, I am authorized", got)

	// Model replies with more than the option text.
	client = &scriptedClient{replies: []string{"I would say No, unfortunately"}}
	a = newTestAnswerer(client)
	got = a.Choice(context.Background(), "Do you need sponsorship?", options, job)
	assert.Equal(t, "No", got)
}

func TestChoice_NoMatchDefaultsToFirstOption(t *testing.T) {
	options := []string{"0-2 years", "3-5 years", "6+ years"}
	client := &scriptedClient{replies: []string{"plenty of experience"}}
	a := newTestAnswerer(client)

	got := a.Choice(context.Background(), "Years of experience?", options, job)
	assert.Equal(t, "0-2 years", got)
}

func TestChoice_ProviderFailureDefaultsToFirstOption(t *testing.T) {
	options := []string{"Remote", "Hybrid", "Onsite"}
	client := &scriptedClient{err: errors.New("down")}
	a := newTestAnswerer(client)

	got := a.Choice(context.Background(), "Preferred work mode?", options, job)
	assert.Equal(t, "Remote", got)
}

func TestChoice_ReusesRememberedChoice(t *testing.T) {
	options := []string{"A", "B"}
	client := &scriptedClient{replies: []string{"B"}}
	a := newTestAnswerer(client)

	first := a.Choice(context.Background(), "Pick one", options, job)
	require.Equal(t, "B", first)
	require.Equal(t, 1, client.calls)

	second := a.Choice(context.Background(), "Pick one", options, job)
	assert.Equal(t, "B", second)
	assert.Equal(t, 1, client.calls)
}

func TestChoice_EmptyOptions(t *testing.T) {
	a := newTestAnswerer(&scriptedClient{replies: []string{"x"}})
	assert.Equal(t, "", a.Choice(context.Background(), "Pick one", nil, job))
}

func TestMatchOption(t *testing.T) {
	options := []string{"2 weeks", "1 month", "3 months"}

	assert.Equal(t, "1 month", matchOption("1 Month", options))
	assert.Equal(t, "2 weeks", matchOption("within 2 weeks ideally", options))
	assert.Equal(t, "", matchOption("tomorrow", options))
	assert.Equal(t, "", matchOption("   ", options))
}

func TestJobContext_Label(t *testing.T) {
	assert.Equal(t, "Acme - Product Manager", job.Label())
}
