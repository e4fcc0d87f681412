package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeClicker records the order strategies fire in and scripts their
// failures and navigation effects.
type fakeClicker struct {
	calls       []string
	failing     map[string]error
	navigatesOn string
	url         string
}

func newFakeClicker() *fakeClicker {
	return &fakeClicker{failing: map[string]error{}, url: "https://jobs.ashbyhq.com/acme/apply"}
}

func (f *fakeClicker) attempt(name string) error {
	f.calls = append(f.calls, name)
	if err := f.failing[name]; err != nil {
		return err
	}
	if name == f.navigatesOn {
		f.url = "https://jobs.ashbyhq.com/acme/apply/submitted"
	}
	return nil
}

func (f *fakeClicker) click() error       { return f.attempt("normal") }
func (f *fakeClicker) forceClick() error  { return f.attempt("force") }
func (f *fakeClicker) scriptClick() error { return f.attempt("script") }
func (f *fakeClicker) doubleClick() error { return f.attempt("double") }

func runFake(f *fakeClicker) (bool, int) {
	settles := 0
	changed := runLadder(f, f.url, func() string { return f.url }, func() { settles++ })
	return changed, settles
}

func TestRunLadder_StopsOnceURLMoves(t *testing.T) {
	f := newFakeClicker()
	f.navigatesOn = "normal"

	changed, settles := runFake(f)

	assert.True(t, changed)
	assert.Equal(t, []string{"normal"}, f.calls, "later strategies should not fire")
	assert.Equal(t, 1, settles)
}

func TestRunLadder_EscalatesThroughAllStrategies(t *testing.T) {
	f := newFakeClicker()
	f.navigatesOn = "double"

	changed, _ := runFake(f)

	assert.True(t, changed)
	assert.Equal(t, []string{"normal", "force", "script", "double"}, f.calls)
}

func TestRunLadder_ClickErrorSkipsSettle(t *testing.T) {
	f := newFakeClicker()
	f.failing["normal"] = errors.New("element is covered by an overlay")
	f.navigatesOn = "force"

	changed, settles := runFake(f)

	assert.True(t, changed)
	assert.Equal(t, []string{"normal", "force"}, f.calls)
	assert.Equal(t, 1, settles, "a failed click should not wait out the settle period")
}

func TestRunLadder_StubbornPageExhaustsLadder(t *testing.T) {
	f := newFakeClicker()

	changed, settles := runFake(f)

	assert.False(t, changed)
	assert.Equal(t, []string{"normal", "force", "script", "double"}, f.calls)
	assert.Equal(t, 4, settles)
}

func TestNew_StartsFilled(t *testing.T) {
	d := New()
	assert.Equal(t, StateFilled, d.State())
}
