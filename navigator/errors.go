package navigator

import (
	"errors"
	"fmt"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

// RouteNotFoundError is returned from [Navigator.Navigate] when the requested [Route] has no registered [Handler].
type RouteNotFoundError struct {
	Route Route
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("%v: '%s'", ErrRouteNotFound, e.Route)
}

func (e *RouteNotFoundError) Is(err error) bool {
	if err == ErrRouteNotFound {
		return true
	}
	_, ok := err.(*RouteNotFoundError)
	return ok
}

// IsRouteNotFound reports whether err was caused by navigating to an unregistered [Route].
func IsRouteNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
