//go:build !js

package systems

func testStores() []testStore {
	return []testStore{
		{"ark", func(n int) particleStore { return newArkStore(n) }},
		{"slice", func(n int) particleStore { return newSliceStore(n) }},
	}
}
