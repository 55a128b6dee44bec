// Package middleware decorates profile stores with extra behavior.
package middleware

import "github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"

// Middleware allows wrapping a ProfileStore to add behavior.
type Middleware func(ports.ProfileStore) ports.ProfileStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.ProfileStore, mws ...Middleware) ports.ProfileStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
