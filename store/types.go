//nolint
package store

import "github.com/tillit-one/tillit"

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = tillit.ReadOnlyKVStore
type KVStore = tillit.KVStore
type CacheableKVStore = tillit.CacheableKVStore
type KVCacheWrap = tillit.KVCacheWrap
type Batch = tillit.Batch
