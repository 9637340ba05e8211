package pattern

import (
	"sync"

	"github.com/wfl-lang/wfl/compiler/ast"
)

// cache is a process-wide store of compiled patterns keyed by the
// identity of the PatternDefine node that produced them, grounded on
// the teacher's registry-level result cache
// (runtime/metadata/registry.go's lruCache) but keyed by pointer
// identity rather than a string key, since a named pattern's AST node
// is only ever compiled once per process.
type cache struct {
	mu      sync.RWMutex
	entries map[*ast.PatternDefine]*Program
}

var global = &cache{entries: make(map[*ast.PatternDefine]*Program)}

// GetOrCompile returns the cached Program for def, compiling and
// storing it on first use.
func GetOrCompile(def *ast.PatternDefine) (*Program, error) {
	global.mu.RLock()
	prog, ok := global.entries[def]
	global.mu.RUnlock()
	if ok {
		return prog, nil
	}

	global.mu.Lock()
	defer global.mu.Unlock()
	if prog, ok := global.entries[def]; ok {
		return prog, nil
	}
	prog, err := Compile(def.Pattern)
	if err != nil {
		return nil, err
	}
	global.entries[def] = prog
	return prog, nil
}

// Reset clears the cache. Exposed for tests that compile the same
// pattern name with different bodies across cases.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.entries = make(map[*ast.PatternDefine]*Program)
}
