/*
Package genmenu is an interactive menu for installing and running project generators.

The menu is a set of screens connected by a navigator.
Each screen is registered under a route name, and moves the user along by navigating to another route.

  - navigator holds the route registry and the context shared by every screen.
  - routes implements the built-in screens.
  - genenv discovers installed generators, and runs them.
  - registry searches the package registry for generators to install.
  - globalconfig and config persist settings between sessions.
  - prompt asks the user questions, in a terminal or from a plain reader.

The genmenu command in cmd/genmenu wires these together.
*/
package genmenu
