// Package graph implements the Package Registry, Id Algebra, Resolver,
// Namespace Builder, BFS Engine and Linkers: the core cross-package
// reachability analysis. The Resolver and Namespace Builder are mutually
// recursive and share per-package caches, so -- like the teacher's Indexer
// splits one type's responsibilities across many files -- they are modeled
// as methods on a single Registry type split across registry.go, ids.go,
// resolver.go, namespace.go, bfs.go, linkers.go and label.go.
package graph

import (
	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

// PackageID identifies one loaded doc index within a Registry. The root
// package being checked is always 0; packages pulled in only as `paths`/
// `external_crates` entries (never loaded as a full DocIndex) are assigned
// ids lazily as the resolver encounters them.
type PackageID uint32

// STDLIBS are package names the resolver treats as opaque and never tries
// to load or resolve into -- matching the original's hard-coded quarantine
// of the Rust standard library crates.
var STDLIBS = map[string]bool{
	"std":        true,
	"core":       true,
	"alloc":      true,
	"proc_macro": true,
	"test":       true,
}

// packageEntry is one loaded or referenced package.
type packageEntry struct {
	name string
	doc  *rustdoc.DocIndex // nil if this package was only ever referenced by name, never loaded
}

// Registry owns every loaded package's doc index plus the caches the
// Resolver and Namespace Builder share: resolving an id or building a
// module's namespace are both memoized. The resolve cache is a dense slice
// per package rather than a map, since rustdoc JSON ids are small integers
// clustered near zero within a crate (see resolver.go); the namespace cache
// is a map keyed by module id (see namespace.go).
type Registry struct {
	packages []packageEntry
	byName   map[string]PackageID
	aliases  map[string]string

	resolveCache   map[PackageID][]*resolveCacheEntry
	namespaceCache map[AbsID]*namespaceCacheEntry
}

// NewRegistry returns an empty Registry. Call LoadPackage at least once
// before resolving anything.
func NewRegistry() *Registry {
	return &Registry{
		byName:         make(map[string]PackageID),
		aliases:        defaultAliases(),
		resolveCache:   make(map[PackageID][]*resolveCacheEntry),
		namespaceCache: make(map[AbsID]*namespaceCacheEntry),
	}
}

// LoadPackage interns name (applying the alias table) and associates it
// with a fully decoded doc index, returning the PackageID the rest of the
// Registry's methods address it by.
func (r *Registry) LoadPackage(name string, doc *rustdoc.DocIndex) PackageID {
	name = r.rewriteAlias(name)
	if id, ok := r.byName[name]; ok {
		r.packages[id].doc = doc
		return id
	}
	id := PackageID(len(r.packages))
	r.packages = append(r.packages, packageEntry{name: name, doc: doc})
	r.byName[name] = id
	return id
}

// referencePackage interns name without a doc index, for packages known
// only through a `paths`/`external_crates` table entry.
func (r *Registry) referencePackage(name string) PackageID {
	name = r.rewriteAlias(name)
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := PackageID(len(r.packages))
	r.packages = append(r.packages, packageEntry{name: name})
	r.byName[name] = id
	return id
}

func (r *Registry) packageName(id PackageID) string {
	return r.packages[id].name
}

func (r *Registry) doc(id PackageID) (*rustdoc.DocIndex, bool) {
	if int(id) >= len(r.packages) {
		return nil, false
	}
	d := r.packages[id].doc
	return d, d != nil
}

func (r *Registry) isStdlib(id PackageID) bool {
	return STDLIBS[r.packages[id].name]
}

// RootModule returns the AbsID of a loaded package's crate root module.
func (r *Registry) RootModule(pkg PackageID) (ModuleID, bool) {
	d, ok := r.doc(pkg)
	if !ok {
		return ModuleID{}, false
	}
	return ModuleID{Package: pkg, Local: d.Root}, true
}
