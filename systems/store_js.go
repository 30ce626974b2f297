//go:build js

package systems

// newStore builds the storage used by NewSwarm. ark relies on unsafe
// pointer arithmetic that GopherJS cannot compile.
var newStore = func(capacity int) particleStore {
	return newSliceStore(capacity)
}
