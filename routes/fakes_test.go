package routes

import (
	"bytes"
	"context"
	"fmt"
	"github.com/saylorsolutions/genmenu/cli"
	"github.com/saylorsolutions/genmenu/config"
	"github.com/saylorsolutions/genmenu/genenv"
	"github.com/saylorsolutions/genmenu/globalconfig"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"github.com/saylorsolutions/genmenu/registry"
	"github.com/saylorsolutions/genmenu/spawn"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

// scriptedPrompt answers questions by name, in order.
// Running out of answers cancels the prompt, which ends the session.
type scriptedPrompt struct {
	answers    map[string][]string
	checkboxes map[string][][]string
	asked      []prompt.Question
	inputs     []prompt.InputQuestion
}

func (p *scriptedPrompt) pop(name string) (string, error) {
	queue := p.answers[name]
	if len(queue) == 0 {
		return "", prompt.ErrCancelled
	}
	p.answers[name] = queue[1:]
	return queue[0], nil
}

func (p *scriptedPrompt) Select(_ context.Context, q prompt.Question) (string, error) {
	p.asked = append(p.asked, q)
	return p.pop(q.Name)
}

func (p *scriptedPrompt) Checkbox(_ context.Context, q prompt.Question) ([]string, error) {
	p.asked = append(p.asked, q)
	queue := p.checkboxes[q.Name]
	if len(queue) == 0 {
		return nil, prompt.ErrCancelled
	}
	p.checkboxes[q.Name] = queue[1:]
	return queue[0], nil
}

func (p *scriptedPrompt) Input(_ context.Context, q prompt.InputQuestion) (string, error) {
	p.inputs = append(p.inputs, q)
	answer, err := p.pop(q.Name)
	if err != nil {
		return "", err
	}
	if q.Validate != nil {
		if err := q.Validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

// lastChoices returns the choices of the most recent question with the given name.
func (p *scriptedPrompt) lastChoices(name string) []prompt.Choice {
	for i := len(p.asked) - 1; i >= 0; i-- {
		if p.asked[i].Name == name {
			return p.asked[i].Choices
		}
	}
	return nil
}

func values(choices []prompt.Choice) []string {
	var vals []string
	for _, c := range choices {
		if !c.Separator {
			vals = append(vals, c.Value)
		}
	}
	return vals
}

func names(choices []prompt.Choice) []string {
	var labels []string
	for _, c := range choices {
		if !c.Separator {
			labels = append(labels, c.Label())
		}
	}
	return labels
}

type fakeGlobal struct {
	entries   map[string]globalconfig.Settings
	removed   []string
	removeAll int
	err       error
}

func (g *fakeGlobal) GetAll() map[string]globalconfig.Settings {
	return g.entries
}

func (g *fakeGlobal) Remove(key string) error {
	g.removed = append(g.removed, key)
	return g.err
}

func (g *fakeGlobal) RemoveAll() error {
	g.removeAll++
	return g.err
}

type fakeRegistry struct {
	mux        sync.Mutex
	packages   []registry.Package
	deprecated map[string]bool
	searchErr  error
	terms      []string
}

func (r *fakeRegistry) Search(_ context.Context, term string) ([]registry.Package, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.terms = append(r.terms, term)
	return r.packages, r.searchErr
}

func (r *fakeRegistry) Deprecated(_ context.Context, name string) (bool, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if name == "generator-unreachable" {
		return false, fmt.Errorf("lookup failed")
	}
	return r.deprecated[name], nil
}

type spawned struct {
	name string
	args []string
}

type recorder struct {
	calls []spawned
	err   error
}

func (r *recorder) runner() spawn.Runner {
	return spawn.RunnerFunc(func(_ context.Context, name string, args ...string) error {
		r.calls = append(r.calls, spawned{name: name, args: args})
		return r.err
	})
}

type harness struct {
	nav      *navigator.Navigator
	env      *genenv.Environment
	store    *config.Store
	prompt   *scriptedPrompt
	global   *fakeGlobal
	registry *fakeRegistry
	npm      *recorder
	yo       *recorder
	out      *bytes.Buffer
	homes    int
}

// newHarness wires the routes with fakes, and wraps the home screen to count visits.
// The home screen's own prompt is unanswered by default, so visiting home ends the session with prompt.ErrCancelled.
func newHarness(t *testing.T, installed ...string) *harness {
	t.Helper()
	h := &harness{
		store:    config.NewStore(),
		prompt:   &scriptedPrompt{answers: map[string][]string{}, checkboxes: map[string][][]string{}},
		global:   &fakeGlobal{entries: map[string]globalconfig.Settings{}},
		registry: &fakeRegistry{deprecated: map[string]bool{}},
		npm:      &recorder{},
		yo:       &recorder{},
		out:      new(bytes.Buffer),
	}
	h.env = genenv.New(genenv.WithLookupPaths(), genenv.WithRunner(h.yo.runner()))
	for _, name := range installed {
		h.env.Register(genenv.Describe(name))
	}
	printer := cli.NewPrinter()
	printer.Redirect(h.out)
	printer.DisableColor()
	h.nav = navigator.New(h.env, h.store)
	r := &Routes{
		Prompt:   h.prompt,
		Global:   h.global,
		Registry: h.registry,
		Spawner:  h.npm.runner(),
		Counts:   h.store,
		Printer:  printer,
		DenyList: []string{"generator-blacklist-1", "generator-blacklist-2"},
	}
	r.Register(h.nav)
	home := r.home
	h.nav.RegisterRoute(navigator.RouteHome, func(ctx context.Context, nav *navigator.Navigator, args ...any) error {
		h.homes++
		return home(ctx, nav, args...)
	})
	require.NoError(t, h.nav.RefreshGenerators(context.Background()))
	return h
}

func (h *harness) answer(name string, answers ...string) *harness {
	h.prompt.answers[name] = append(h.prompt.answers[name], answers...)
	return h
}
