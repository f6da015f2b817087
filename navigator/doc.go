/*
Package navigator drives the interactive menu as a single-active-screen state machine.

A [Navigator] owns a registry mapping a [Route] to a [Handler], along with the shared context every handler may need: the generator-discovery [Environment], a key-value [Config], and a derived view of installed generators.

# Navigation

Handlers are registered once during setup with [Navigator.RegisterRoute].
Registering a handler under a name that already exists replaces the old handler.

Calling [Navigator.Navigate] looks up the handler and runs it to completion before returning.
A handler moves to the next screen by calling Navigate itself, so the history of a session is the call stack:

	nav.RegisterRoute(navigator.RouteHome, func(ctx context.Context, nav *navigator.Navigator, _ ...any) error {
		// Prompt the user, then pick the next screen.
		return nav.Navigate(ctx, navigator.RouteInstall)
	})

A handler that returns without navigating ends the session.
Navigating to itself is allowed, and is how "search again" style loops are written.

Navigating to a name that was never registered returns a [*RouteNotFoundError], and no handler runs.
This indicates a wiring defect rather than something the user can recover from.

# Concurrency

Exactly one handler runs at a time.
Nested navigations complete before the caller's Navigate returns, so a handler's post-navigation code always observes the effects of every screen it led to.
The registry itself may be safely modified from other goroutines, but handlers are always invoked on the calling goroutine.
*/
package navigator
