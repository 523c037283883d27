// Package alias maps short protocol aliases to qualified type names and
// answers the small set of introspection questions an object codec asks
// about a typed value.
package alias

import (
	"sort"
	"sync"

	"amfkit/errs"
	"amfkit/log"
)

var logger = log.WithModule("alias")

// Pair is one registered alias and the qualified class name it stands for.
type Pair struct {
	Alias     string
	ClassName string
}

// Registry holds both directions of the alias mapping along with the
// definition namespace. It is safe for concurrent use; it is usually
// populated once at startup and read afterwards.
type Registry struct {
	mtx          sync.RWMutex
	aliasToClass map[string]string
	classToAlias map[string]string
	root         map[string]interface{}
	definitions  map[string]interface{}
}

func NewRegistry() *Registry {
	return &Registry{
		aliasToClass: make(map[string]string),
		classToAlias: make(map[string]string),
		root:         make(map[string]interface{}),
		definitions:  make(map[string]interface{}),
	}
}

// RegisterClassAlias maps alias to the qualified class name of typ. typ may
// be a value, a typed nil pointer or a reflect.Type.
func (r *Registry) RegisterClassAlias(alias string, typ interface{}) error {
	if alias == "" {
		return errs.InvalidArgument("empty alias")
	}
	name, err := QualifiedClassName(typ)
	if err != nil {
		return err
	}
	r.set(alias, name)
	return nil
}

// RegisterQualifiedName maps alias to an already qualified class name.
func (r *Registry) RegisterQualifiedName(alias, qualifiedName string) error {
	if alias == "" || qualifiedName == "" {
		return errs.InvalidArgument("empty alias %q or class name %q", alias, qualifiedName)
	}
	r.set(alias, qualifiedName)
	return nil
}

func (r *Registry) set(alias, name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if prev, ok := r.aliasToClass[alias]; ok && r.classToAlias[prev] == alias {
		delete(r.classToAlias, prev)
	}
	if prev, ok := r.classToAlias[name]; ok && r.aliasToClass[prev] == name {
		delete(r.aliasToClass, prev)
	}
	r.aliasToClass[alias] = name
	r.classToAlias[name] = alias
	logger.Debug("registered class alias", "alias", alias, "class", name)
}

// ClassNameByAlias returns the class registered under alias. ok is false when
// there is none.
func (r *Registry) ClassNameByAlias(alias string) (string, bool, error) {
	if alias == "" {
		return "", false, errs.InvalidArgument("empty alias")
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	name, ok := r.aliasToClass[alias]
	return name, ok, nil
}

func (r *Registry) AliasByClassName(name string) (string, bool, error) {
	if name == "" {
		return "", false, errs.InvalidArgument("empty class name")
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	alias, ok := r.classToAlias[name]
	return alias, ok, nil
}

// Unregister removes alias and its reverse entry. It reports whether alias
// was registered.
func (r *Registry) Unregister(alias string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	name, ok := r.aliasToClass[alias]
	if !ok {
		return false
	}
	delete(r.aliasToClass, alias)
	if r.classToAlias[name] == alias {
		delete(r.classToAlias, name)
	}
	return true
}

// Pairs returns every registered pair sorted by alias.
func (r *Registry) Pairs() []Pair {
	r.mtx.RLock()
	pairs := make([]Pair, 0, len(r.aliasToClass))
	for a, c := range r.aliasToClass {
		pairs = append(pairs, Pair{Alias: a, ClassName: c})
	}
	r.mtx.RUnlock()
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Alias < pairs[j].Alias
	})
	return pairs
}

func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.aliasToClass)
}
