package uci

import (
	"fmt"
	"sort"
	"sync"
)

/*
Addins extend the enum/codec registry (spec.md §3, §4.3, §9's "mixin-style
class extension" redesign note). Where the source dynamically imports
modules named in a config variable, a compiled Go program can't load code
it wasn't built with — an addin here is a Go package that registers itself
via a blank import (`_ "github.com/fira-uci/go-uci/addins/myvendor"`) and
an init() calling RegisterAddin. UQT_ADDINS then answers "which of the
addins linked into this binary should actually run", not "which files to
discover on disk": LoadAddins treats a name with no matching registration
as the fatal, descriptive-diagnostic failure spec.md §4.3 calls for.
*/

// AddinFunc installs one addin's enum members, parameter-table entries,
// codec-registry entries, and notification handlers. It runs once, the
// first time LoadAddins selects it.
type AddinFunc func() error

type addinEntry struct {
	name string
	fn   AddinFunc
	done bool
}

var (
	addinMu  sync.Mutex
	addinReg = map[string]*addinEntry{}
)

// RegisterAddin makes an addin available to LoadAddins under name. Call
// from the addin package's own init().
func RegisterAddin(name string, fn AddinFunc) {
	addinMu.Lock()
	defer addinMu.Unlock()
	if _, exists := addinReg[name]; exists {
		panic(fmt.Sprintf("uci: addin %q registered twice", name))
	}
	addinReg[name] = &addinEntry{name: name, fn: fn}
}

// LoadAddins runs the named addins' AddinFuncs, in the order given. An
// empty names list loads every addin linked into the binary, in
// registration-name sorted order for determinism. Load order is
// significant only insofar as a later addin may depend on enum members an
// earlier one contributed; a name with no matching registration, or an
// addin whose AddinFunc returns an error, is a fatal, descriptive error
// (spec.md §4.3 "failure is fatal with a descriptive diagnostic").
func LoadAddins(names []string) error {
	addinMu.Lock()
	defer addinMu.Unlock()

	if len(names) == 0 {
		names = make([]string, 0, len(addinReg))
		for n := range addinReg {
			names = append(names, n)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		e, ok := addinReg[name]
		if !ok {
			return NewParameterError(fmt.Sprintf("addin %q requested but not linked into this binary", name))
		}
		if e.done {
			continue
		}
		if err := e.fn(); err != nil {
			return fmt.Errorf("addin %q failed to load: %w", name, err)
		}
		e.done = true
		log().WithField("addin", name).Info("loaded addin")
	}
	return nil
}

// LoadedAddins reports the names of addins that have run, for
// diagnostics.
func LoadedAddins() []string {
	addinMu.Lock()
	defer addinMu.Unlock()
	var out []string
	for n, e := range addinReg {
		if e.done {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
