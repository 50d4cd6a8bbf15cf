package codetree

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"

	"github.com/bethropolis/axnav/internal/logger"
)

// Language ties a tree-sitter grammar to the file extensions it reads.
type Language struct {
	Name       string
	Grammar    *sitter.Language
	Extensions []string
}

var (
	registry struct {
		sync.RWMutex
		languages map[string]*Language
		byExt     map[string]*Language
	}
	builtinsOnce sync.Once
)

func registerBuiltins() {
	builtinsOnce.Do(func() {
		registry.Lock()
		registry.languages = make(map[string]*Language)
		registry.byExt = make(map[string]*Language)
		registry.Unlock()

		Register(&Language{Name: "Go", Grammar: gosrc.GetLanguage(), Extensions: []string{".go"}})
		Register(&Language{Name: "Python", Grammar: pythonsrc.GetLanguage(), Extensions: []string{".py", ".pyw"}})
		Register(&Language{Name: "JavaScript", Grammar: jssrc.GetLanguage(), Extensions: []string{".js", ".mjs", ".cjs"}})
		// JSON is a subset of JavaScript expressions.
		Register(&Language{Name: "JSON", Grammar: jssrc.GetLanguage(), Extensions: []string{".json"}})
		Register(&Language{Name: "Rust", Grammar: rustsrc.GetLanguage(), Extensions: []string{".rs"}})
	})
}

// Register adds l to the registry. A later language claiming an extension
// takes it over.
func Register(l *Language) {
	registerBuiltins()

	registry.Lock()
	defer registry.Unlock()

	registry.languages[l.Name] = l
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if prev, ok := registry.byExt[ext]; ok && prev.Name != l.Name {
			logger.Warnf("codetree: extension %s moves from %s to %s", ext, prev.Name, l.Name)
		}
		registry.byExt[ext] = l
	}
	logger.DebugTagf("codetree", "registered %s for %v", l.Name, l.Extensions)
}

// ForFile returns the language for path's extension, or nil.
func ForFile(path string) *Language {
	registerBuiltins()

	registry.RLock()
	defer registry.RUnlock()
	return registry.byExt[strings.ToLower(filepath.Ext(path))]
}

// Languages lists registered language names in sorted order.
func Languages() []string {
	registerBuiltins()

	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.languages))
	for name := range registry.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
