package routes

import (
	"context"
	"errors"
	"github.com/saylorsolutions/genmenu/config"
	"github.com/saylorsolutions/genmenu/globalconfig"
	"github.com/saylorsolutions/genmenu/navigator"
	"github.com/saylorsolutions/genmenu/prompt"
	"github.com/saylorsolutions/genmenu/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func TestRoutes_Register(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, []navigator.Route{
		navigator.RouteClearConfig,
		navigator.RouteExit,
		navigator.RouteHelp,
		navigator.RouteHome,
		navigator.RouteInstall,
		navigator.RouteRun,
		navigator.RouteUpdate,
	}, h.nav.Routes())

	assert.Panics(t, func() {
		new(Routes).Register(navigator.New(nil, nil))
	})
}

func TestHome(t *testing.T) {
	t.Run("Lists generators by run count", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn", "generator-phoenix", "generator-alpha")
		require.NoError(t, h.store.Set(config.KeyRunCount, map[string]int{"phoenix": 10, "unicorn": 20}))
		h.global.entries["generator-unicorn"] = globalconfig.Settings{}
		h.answer("whatNext", "exit")

		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteHome))
		choices := h.prompt.lastChoices("whatNext")
		assert.True(t, choices[0].Separator)
		assert.Equal(t, "Run a generator", choices[0].Name)
		assert.Equal(t, []string{
			"Unicorn", "Phoenix", "Alpha",
			"Install a generator", "Update your generators", "Clear global config", "Get me some help", "Get me out of here!",
		}, names(choices))
		assert.Contains(t, h.out.String(), "Bye from us!")
	})
	t.Run("Nothing installed", func(t *testing.T) {
		h := newHarness(t)
		h.answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteHome))
		assert.Equal(t, []string{"install", "help", "exit"}, values(h.prompt.lastChoices("whatNext")))
		assert.Contains(t, h.out.String(), "don't seem to have a generator installed")
	})
	t.Run("Selecting a generator runs it", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn", "@acme/generator-web")
		h.answer("whatNext", "run:@acme/generator-web")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteHome))
		require.Len(t, h.yo.calls, 1)
		assert.Equal(t, "yo", h.yo.calls[0].name)
		assert.Equal(t, []string{"@acme/web:app"}, h.yo.calls[0].args)
		assert.Equal(t, map[string]int{"@acme/web": 1}, h.store.RunCounts())
	})
	t.Run("Cancelled prompt ends the session", func(t *testing.T) {
		h := newHarness(t)
		err := h.nav.Navigate(context.Background(), navigator.RouteHome)
		assert.ErrorIs(t, err, prompt.ErrCancelled)
	})
	t.Run("Unknown route answer", func(t *testing.T) {
		h := newHarness(t)
		h.answer("whatNext", "nowhere")
		err := h.nav.Navigate(context.Background(), navigator.RouteHome)
		assert.True(t, navigator.IsRouteNotFound(err))
	})
}

func TestRun(t *testing.T) {
	t.Run("By name", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteRun, "unicorn"))
		require.Len(t, h.yo.calls, 1)
		assert.Equal(t, []string{"unicorn:app"}, h.yo.calls[0].args)
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteRun, "generator-unicorn"))
		assert.Equal(t, 2, h.store.RunCounts()["unicorn"])
		assert.Equal(t, 0, h.homes, "Running a generator ends the session")
		assert.Contains(t, h.out.String(), "genmenu run unicorn")
	})
	t.Run("Unknown generator", func(t *testing.T) {
		h := newHarness(t)
		assert.ErrorIs(t, h.nav.Navigate(context.Background(), navigator.RouteRun, "nope"), ErrUnknownGenerator)
		assert.ErrorIs(t, h.nav.Navigate(context.Background(), navigator.RouteRun), ErrUnknownGenerator)
		assert.ErrorIs(t, h.nav.Navigate(context.Background(), navigator.RouteRun, 5), ErrUnknownGenerator)
		assert.Empty(t, h.yo.calls)
	})
	t.Run("Generator failure is returned", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn")
		h.yo.err = errors.New("generator exploded")
		err := h.nav.Navigate(context.Background(), navigator.RouteRun, navigator.Generator{Name: "generator-unicorn", Namespace: "unicorn:app"})
		assert.Same(t, h.yo.err, err)
	})
}

func installPackages() []registry.Package {
	return []registry.Package{
		{Name: "generator-unicorn", Description: "some unicorn"},
		{Name: "generator-unrelated", Description: "some description"},
		{Name: "generator-unicorn-1", Description: "foo description"},
		{Name: "generator-foo", Description: "description with unicorn word"},
		{Name: "generator-blacklist-1", Description: "foo description"},
		{Name: "generator-blacklist-2", Description: "foo description"},
		{Name: "generator-blacklist-3", Description: "foo description"},
		{Name: "unicorn-tools", Description: "not a generator"},
		{Name: "generator-old-unicorn", Description: "deprecated"},
		{Name: "generator-unreachable", Description: "unicorn mirror"},
	}
}

func TestInstall(t *testing.T) {
	newInstallHarness := func(t *testing.T) *harness {
		h := newHarness(t, "generator-unicorn")
		h.registry.packages = installPackages()
		h.registry.deprecated["generator-old-unicorn"] = true
		return h
	}

	t.Run("Filters installed and unmatched generators", func(t *testing.T) {
		h := newInstallHarness(t)
		h.answer("searchTerm", "unicorn").answer("toInstall", "home").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))

		vals := values(h.prompt.lastChoices("toInstall"))
		assert.Contains(t, vals, "generator-foo")
		assert.Contains(t, vals, "generator-unicorn-1")
		assert.Contains(t, vals, "generator-unreachable", "Packages that can't be checked are kept")
		assert.NotContains(t, vals, "generator-unicorn")
		assert.NotContains(t, vals, "generator-unrelated")
		assert.NotContains(t, vals, "generator-old-unicorn")
		assert.NotContains(t, vals, "unicorn-tools")
		assert.Equal(t, []string{"install", "home"}, vals[len(vals)-2:])
		assert.Equal(t, "generator-unicorn-1", vals[0], "Closest match should be first")
		assert.Equal(t, []string{"unicorn"}, h.registry.terms)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Filters denied generators", func(t *testing.T) {
		h := newInstallHarness(t)
		h.answer("searchTerm", "blacklist").answer("toInstall", "home").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))

		vals := values(h.prompt.lastChoices("toInstall"))
		assert.NotContains(t, vals, "generator-blacklist-1")
		assert.NotContains(t, vals, "generator-blacklist-2")
		assert.Contains(t, vals, "generator-blacklist-3")
	})
	t.Run("Search again", func(t *testing.T) {
		h := newInstallHarness(t)
		h.answer("searchTerm", "unicorn", "foo").
			answer("toInstall", "install", "home").
			answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))
		require.Len(t, h.prompt.inputs, 2)
		assert.Equal(t, "searchTerm", h.prompt.inputs[1].Name)
		assert.Equal(t, []string{"unicorn", "foo"}, h.registry.terms)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Installs a generator", func(t *testing.T) {
		h := newInstallHarness(t)
		h.answer("searchTerm", "unicorn").answer("toInstall", "generator-foo").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))

		require.Len(t, h.npm.calls, 1)
		assert.Equal(t, spawned{name: "npm", args: []string{"install", "--global", "generator-foo"}}, h.npm.calls[0])
		assert.Equal(t, 1, h.homes)
		assert.Contains(t, h.out.String(), "Installed generator-foo")
	})
	t.Run("Install failure returns home", func(t *testing.T) {
		h := newInstallHarness(t)
		h.npm.err = errors.New("exit status 1")
		h.answer("searchTerm", "unicorn").answer("toInstall", "generator-foo").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))
		assert.Equal(t, 1, h.homes)
		assert.Contains(t, h.out.String(), "Failed to install generator-foo")
	})
	t.Run("No results", func(t *testing.T) {
		h := newHarness(t)
		h.registry.packages = []registry.Package{
			{Name: "generator-unrelated", Description: "some description"},
			{Name: "generator-unrelevant", Description: "some description"},
		}
		h.answer("searchTerm", "foo").answer("toInstall", "home").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))
		choices := h.prompt.lastChoices("toInstall")
		assert.Equal(t, []string{"install", "home"}, values(choices))
		assert.Len(t, choices, 2)
	})
	t.Run("Search failure returns home", func(t *testing.T) {
		h := newHarness(t)
		h.registry.searchErr = registry.ErrMaxRetries
		h.answer("searchTerm", "foo").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))
		assert.Equal(t, 1, h.homes)
		assert.Contains(t, h.out.String(), "Failed to search for generators")
	})
	t.Run("Blank search term", func(t *testing.T) {
		h := newHarness(t)
		h.answer("searchTerm", "  ")
		assert.Error(t, h.nav.Navigate(context.Background(), navigator.RouteInstall))
		assert.Empty(t, h.registry.terms)
	})
	t.Run("Cancelled search", func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h.registry.searchErr = context.Canceled
		h.answer("searchTerm", "foo")
		assert.ErrorIs(t, h.nav.Navigate(ctx, navigator.RouteInstall), context.Canceled)
		assert.Equal(t, 0, h.homes)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Reinstalls selected generators", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn", "generator-phoenix")
		h.prompt.checkboxes["generators"] = [][]string{{"generator-phoenix", "generator-unicorn"}}
		h.answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteUpdate))

		choices := h.prompt.lastChoices("generators")
		require.Len(t, choices, 2)
		assert.True(t, choices[0].Checked)
		require.Len(t, h.npm.calls, 1)
		assert.Equal(t, []string{"install", "--global", "generator-phoenix", "generator-unicorn"}, h.npm.calls[0].args)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Nothing selected", func(t *testing.T) {
		h := newHarness(t, "generator-unicorn")
		h.prompt.checkboxes["generators"] = [][]string{{}}
		h.answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteUpdate))
		assert.Empty(t, h.npm.calls)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Nothing installed", func(t *testing.T) {
		h := newHarness(t)
		h.answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteUpdate))
		assert.Equal(t, 1, h.homes)
		assert.Empty(t, h.prompt.lastChoices("generators"))
	})
}

func TestClearConfig(t *testing.T) {
	newClearHarness := func(t *testing.T) *harness {
		h := newHarness(t, "generator-unicorn", "generator-foo")
		h.global.entries = map[string]globalconfig.Settings{
			"generator-phoenix": {},
			"generator-unicorn": {},
		}
		require.NoError(t, h.store.Set(config.KeyRunCount, map[string]int{"unicorn": 20, "phoenix": 10}))
		return h
	}

	t.Run("Return home", func(t *testing.T) {
		h := newClearHarness(t)
		h.answer("whatNext", "home", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig))
		assert.Equal(t, 1, h.homes)
		assert.Empty(t, h.global.removed)
		assert.Equal(t, 0, h.global.removeAll)
	})
	t.Run("Clear one generator", func(t *testing.T) {
		h := newClearHarness(t)
		h.answer("whatNext", "foo", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig))
		assert.Equal(t, []string{"foo"}, h.global.removed)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Clear all", func(t *testing.T) {
		h := newClearHarness(t)
		h.answer("whatNext", "*", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig))
		assert.Equal(t, 1, h.global.removeAll)
		assert.Equal(t, 1, h.homes)
	})
	t.Run("Store failure still returns home", func(t *testing.T) {
		h := newClearHarness(t)
		h.global.err = errors.New("read-only")
		h.answer("whatNext", "*", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig))
		assert.Equal(t, 1, h.homes)
		assert.Contains(t, h.out.String(), "read-only")
	})
	t.Run("Shows entries", func(t *testing.T) {
		h := newClearHarness(t)
		h.answer("whatNext", "home", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig))
		choices := h.prompt.lastChoices("whatNext")
		// The home screen asked last, so find the clearConfig question.
		for _, q := range h.prompt.asked {
			if q.Name == "whatNext" && len(q.Choices) > 0 && q.Choices[len(q.Choices)-1].Value == "home" {
				choices = q.Choices
				break
			}
		}
		assert.Equal(t, []string{"generator-unicorn", "generator-phoenix", "*", "home"}, values(choices))
		assert.Equal(t, []string{"Unicorn", "phoenix (not installed anymore)", "Clear all", "Return to the home screen"}, names(choices))
	})
	t.Run("Global config file", func(t *testing.T) {
		h := newHarness(t)
		store, err := globalconfig.Open(filepath.Join(t.TempDir(), ".genmenu-rc-global.toml"))
		require.NoError(t, err)
		require.NoError(t, store.Set("generator-unicorn", globalconfig.Settings{"name": "test"}))
		require.NoError(t, store.Set("generator-phoenix", globalconfig.Settings{"name": "other"}))
		r := &Routes{Prompt: h.prompt, Global: store, Printer: nil}
		r.Register(h.nav)
		h.answer("whatNext", "generator-unicorn")
		assert.ErrorIs(t, h.nav.Navigate(context.Background(), navigator.RouteClearConfig), prompt.ErrCancelled)
		assert.Nil(t, store.Get("generator-unicorn"))
		assert.NotNil(t, store.Get("generator-phoenix"))
	})
}

func TestHelpAndExit(t *testing.T) {
	t.Run("Prints the link", func(t *testing.T) {
		h := newHarness(t)
		h.answer("whereTo", helpLinks[0].Value)
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteHelp))
		assert.Contains(t, h.out.String(), helpLinks[0].Value)
		assert.Equal(t, 0, h.homes)
	})
	t.Run("Return home", func(t *testing.T) {
		h := newHarness(t)
		h.answer("whereTo", "home").answer("whatNext", "exit")
		require.NoError(t, h.nav.Navigate(context.Background(), navigator.RouteHelp))
		assert.Equal(t, 1, h.homes)
		assert.Contains(t, h.out.String(), "Bye from us!")
	})
}
