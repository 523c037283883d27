package alias

import (
	"strings"

	"amfkit/errs"
)

// Define places def in the definition namespace at the dotted path,
// creating intermediate namespaces as needed. A definition already sitting
// on one of those intermediate segments is an invalid argument. Cached
// lookups of path, its ancestors and its descendants are dropped.
func (r *Registry) Define(path string, def interface{}) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if def == nil {
		return errs.InvalidArgument("nil definition for %q", path)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	parents := segments[:len(segments)-1]
	ns := r.root
	for i, seg := range parents {
		cur, ok := ns[seg]
		if !ok {
			break
		}
		next, ok := cur.(map[string]interface{})
		if !ok {
			return errs.InvalidArgument("%q is already defined, cannot define %q under it", strings.Join(segments[:i+1], "."), path)
		}
		ns = next
	}

	ns = r.root
	for _, seg := range parents {
		next, ok := ns[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			ns[seg] = next
		}
		ns = next
	}
	ns[segments[len(segments)-1]] = def
	for cached := range r.definitions {
		if cached == path || strings.HasPrefix(cached, path+".") || strings.HasPrefix(path, cached+".") {
			delete(r.definitions, cached)
		}
	}
	return nil
}

// DefinitionByName walks the namespace one dotted segment at a time and
// caches what it finds under the full path. ok is false when a segment is
// missing.
func (r *Registry) DefinitionByName(path string) (interface{}, bool, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false, err
	}

	r.mtx.RLock()
	def, ok := r.definitions[path]
	r.mtx.RUnlock()
	if ok {
		return def, true, nil
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	var cur interface{} = r.root
	for _, seg := range segments {
		ns, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		if cur, ok = ns[seg]; !ok {
			return nil, false, nil
		}
	}
	r.definitions[path] = cur
	return cur, true, nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, errs.InvalidArgument("empty definition path")
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, errs.InvalidArgument("empty segment in definition path %q", path)
		}
	}
	return segments, nil
}
