// Package definitions assembles card filesystem trees from YAML/JSON
// definition files, resolving EF codecs through a process-wide registry of
// named codecs.
package definitions

import (
	"sync"

	"github.com/uicctools/cardfs/filesystem"
)

var (
	mu     sync.RWMutex
	codecs = map[string]filesystem.Codec{}
)

// RegisterCodec ties a codec to a name referenced by definition files and
// should be called for each codec during app init. Catalog packages register
// theirs via their RegisterCodecs functions.
func RegisterCodec(name string, c filesystem.Codec) {
	mu.Lock()
	codecs[name] = c
	mu.Unlock()
}

// LookupCodec returns the codec registered under name.
func LookupCodec(name string) (filesystem.Codec, bool) {
	mu.RLock()
	c, ok := codecs[name]
	mu.RUnlock()
	return c, ok
}
