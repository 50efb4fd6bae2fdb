package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lectern-dev/lectern/pkg/nav"
)

// Chain composes middleware into one. Each runs in order; the first
// rejection or error stops the rest.
func Chain(mws ...nav.Middleware) nav.Middleware {
	return func(ctx context.Context, pathname string, route *nav.RouteEntry) (bool, error) {
		for _, mw := range mws {
			pass, err := mw(ctx, pathname, route)
			if err != nil || !pass {
				return pass, err
			}
		}
		return true, nil
	}
}

// Only restricts mw to pathnames under one of the given prefixes; other
// paths pass untouched.
func Only(mw nav.Middleware, prefixes ...string) nav.Middleware {
	return func(ctx context.Context, pathname string, route *nav.RouteEntry) (bool, error) {
		if !hasPrefix(pathname, prefixes) {
			return true, nil
		}
		return mw(ctx, pathname, route)
	}
}

// Skip exempts pathnames under the given prefixes from mw.
func Skip(mw nav.Middleware, prefixes ...string) nav.Middleware {
	return func(ctx context.Context, pathname string, route *nav.RouteEntry) (bool, error) {
		if hasPrefix(pathname, prefixes) {
			return true, nil
		}
		return mw(ctx, pathname, route)
	}
}

func hasPrefix(pathname string, prefixes []string) bool {
	for _, p := range prefixes {
		if pathname == p || strings.HasPrefix(pathname, p+"/") {
			return true
		}
	}
	return false
}

// Logging passes every navigation and records it through logger.
func Logging(logger *slog.Logger) nav.Middleware {
	return func(_ context.Context, pathname string, route *nav.RouteEntry) (bool, error) {
		logger.Debug("navigation gate", "path", pathname, "pattern", route.Pattern)
		return true, nil
	}
}
