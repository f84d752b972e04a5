package graph

import (
	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

type namespaceState int

const (
	namespaceUnstarted namespaceState = iota
	namespaceInProgress
	namespaceDone
)

type namespaceCacheEntry struct {
	state  namespaceState
	result map[string]CanonID
	err    error
}

// Namespace builds the map of names visible inside module mod: every
// directly declared item, extern crate and non-glob use, plus everything
// pulled in by `use foo::*` glob imports, flattened one level. Explicit
// names always win over glob-imported ones, matching Rust's own
// resolution rule.
//
// Building a module's namespace can recurse into another module's
// namespace (to flatten a glob) which can in turn resolve back into this
// one (`pub use other::*;` cycles do happen in real crates). A module
// whose namespace is still being built is cached as an in-progress
// placeholder; a reentrant call into it returns an empty namespace instead
// of recursing forever, so a glob cycle contributes nothing rather than
// hanging.
func (r *Registry) Namespace(mod ModuleID) (map[string]CanonID, error) {
	entry, ok := r.namespaceCache[mod]
	if !ok {
		entry = &namespaceCacheEntry{}
		r.namespaceCache[mod] = entry
	}
	switch entry.state {
	case namespaceDone:
		return entry.result, entry.err
	case namespaceInProgress:
		return map[string]CanonID{}, nil
	}

	entry.state = namespaceInProgress
	result, err := r.buildNamespace(mod)
	entry.state = namespaceDone
	entry.result, entry.err = result, err
	return result, err
}

func (r *Registry) buildNamespace(mod ModuleID) (map[string]CanonID, error) {
	doc, ok := r.doc(mod.Package)
	if !ok {
		return nil, ErrIgnored
	}
	item, ok := doc.Item(mod.Local)
	if !ok || item.Inner.Kind != rustdoc.KindModule {
		return nil, ErrIgnored
	}

	names := make(map[string]CanonID)
	var globs []ModuleID

	for _, childID := range item.Inner.Module.Items {
		child, ok := doc.Item(childID)
		if !ok {
			continue
		}
		abs := AbsID{Package: mod.Package, Local: childID}

		switch child.Inner.Kind {
		case rustdoc.KindUse:
			if child.Inner.Use.IsGlob {
				target, err := r.Resolve(abs)
				if err != nil {
					if IsIgnored(err) {
						continue
					}
					return nil, err
				}
				globs = append(globs, target)
				continue
			}
			canon, err := r.Resolve(abs)
			if err != nil {
				if IsIgnored(err) {
					continue
				}
				return nil, err
			}
			names[child.Inner.Use.Name] = canon

		case rustdoc.KindExternCrate:
			name := child.Inner.ExternCrate.Name
			if child.Inner.ExternCrate.Rename != nil {
				name = *child.Inner.ExternCrate.Rename
			}
			canon, err := r.Resolve(abs)
			if err != nil {
				if IsIgnored(err) {
					continue
				}
				return nil, err
			}
			names[name] = canon

		default:
			if child.Name != nil {
				names[*child.Name] = abs
			}
		}
	}

	for _, g := range globs {
		imported, err := r.Namespace(g)
		if err != nil {
			if IsIgnored(err) {
				continue
			}
			return nil, err
		}
		for name, id := range imported {
			if _, exists := names[name]; !exists {
				names[name] = id
			}
		}
	}

	return names, nil
}
