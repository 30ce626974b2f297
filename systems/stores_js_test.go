//go:build js

package systems

func testStores() []testStore {
	return []testStore{
		{"slice", func(n int) particleStore { return newSliceStore(n) }},
	}
}
