package store

import "github.com/oshotcore/playcache/internal/frame"

// Store is a local alias of frame.Store, the contract the prefetch worker
// depends on. Kept here so callers importing this package for [Memory] can
// spell the interface as store.Store.
type Store = frame.Store
