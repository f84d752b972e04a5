package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	levenshtein "github.com/agnivade/levenshtein"
	pkgerrors "github.com/pkg/errors"

	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

type resolveState int

const (
	resolveUnstarted resolveState = iota
	resolveInProgress
	resolveDone
)

type resolveCacheEntry struct {
	state  resolveState
	result CanonID
	err    error
}

func (r *Registry) cacheSlot(id AbsID) *resolveCacheEntry {
	slots := r.resolveCache[id.Package]
	for rustdoc.LocalID(len(slots)) <= id.Local {
		slots = append(slots, nil)
	}
	r.resolveCache[id.Package] = slots
	if slots[id.Local] == nil {
		slots[id.Local] = &resolveCacheEntry{}
	}
	return slots[id.Local]
}

// Resolve follows `use` re-exports and extern-crate declarations from id
// until it reaches a canonical item, memoizing every id it passes through
// in a dense per-package cache. A cycle (an id that is its own ancestor in
// the use-chain) is reported as an error rather than looping forever.
func (r *Registry) Resolve(id AbsID) (CanonID, error) {
	slot := r.cacheSlot(id)
	switch slot.state {
	case resolveDone:
		return slot.result, slot.err
	case resolveInProgress:
		return CanonID{}, fmt.Errorf("cyclic resolution at package %d item %d", id.Package, id.Local)
	}

	slot.state = resolveInProgress
	result, err := r.resolveInner(id)
	slot.state = resolveDone
	slot.result = result
	slot.err = err
	return result, err
}

func (r *Registry) resolveInner(id AbsID) (CanonID, error) {
	doc, ok := r.doc(id.Package)
	if !ok {
		return CanonID{}, ErrIgnored
	}

	if item, ok := doc.Item(id.Local); ok {
		return r.resolveItem(id, item)
	}

	summary, ok := doc.Summary(id.Local)
	if !ok {
		return CanonID{}, fmt.Errorf("id %d not found in package %d", id.Local, id.Package)
	}
	return r.resolveSummary(doc, summary)
}

func (r *Registry) resolveItem(id AbsID, item rustdoc.Item) (CanonID, error) {
	switch item.Inner.Kind {
	case rustdoc.KindExternCrate:
		return r.resolveCrateRoot(item.Inner.ExternCrate.Name)

	case rustdoc.KindUse:
		// Both glob and non-glob uses resolve to whatever they point at;
		// the Namespace Builder is what treats a glob's target specially
		// (flattening its whole namespace rather than binding one name).
		use := item.Inner.Use
		if use.Target != nil {
			return r.Resolve(AbsID{Package: id.Package, Local: *use.Target})
		}
		return r.resolvePathString(id, use.Source)

	default:
		return id, nil
	}
}

// resolveSummary resolves an id that rustdoc only gave us a path summary
// for (it lives in another package). If that package was never loaded as a
// full doc index, it's outside the analyzed set and the reference is
// Ignored rather than followed; otherwise its path, minus the leading crate
// name segment, is walked from that package's crate root the same way any
// other path is.
func (r *Registry) resolveSummary(doc *rustdoc.DocIndex, summary rustdoc.ItemSummary) (CanonID, error) {
	crate, ok := doc.Externals[summary.CrateID]
	if !ok {
		return CanonID{}, fmt.Errorf("no external_crates entry for crate id %d", summary.CrateID)
	}
	name := r.rewriteAlias(crate.Name)
	if STDLIBS[name] {
		return CanonID{}, ErrIgnored
	}

	pkgID := r.referencePackage(name)
	if _, loaded := r.doc(pkgID); !loaded {
		return CanonID{}, ErrIgnored
	}
	root, ok := r.RootModule(pkgID)
	if !ok {
		return CanonID{}, ErrIgnored
	}
	if len(summary.Path) == 0 {
		return CanonID{}, fmt.Errorf("empty path summary for an item of crate %q", name)
	}
	return r.ResolvePath(root, summary.Path[1:])
}

// resolveCrateRoot resolves an `extern crate <name>` (or a package boundary
// reached while resolving an external path) to that package's root module.
func (r *Registry) resolveCrateRoot(name string) (CanonID, error) {
	name = r.rewriteAlias(name)
	if STDLIBS[name] {
		return CanonID{}, ErrIgnored
	}
	pkgID := r.referencePackage(name)
	root, ok := r.RootModule(pkgID)
	if !ok {
		return CanonID{}, ErrIgnored
	}
	return root, nil
}

// resolvePathString resolves a `::`-separated path (as stored on a non-glob
// Use item's `source` field, or an ItemSummary's `path`) starting from the
// module enclosing id.
func (r *Registry) resolvePathString(from AbsID, path string) (CanonID, error) {
	segments := strings.Split(path, "::")
	return r.ResolvePath(from, segments)
}

// ResolvePath walks path one segment at a time starting from the module
// enclosing `from`, using each intermediate module's namespace (built by
// the Namespace Builder, which itself calls back into Resolve -- the two
// are mutually recursive). A `__private`-convention segment short-circuits
// to Ignored, matching the original's treatment of private re-export shims.
func (r *Registry) ResolvePath(from AbsID, path []string) (CanonID, error) {
	if len(path) == 0 {
		return from, nil
	}

	current := from
	for i, segment := range path {
		if strings.HasPrefix(segment, "__private") {
			return CanonID{}, ErrIgnored
		}
		switch segment {
		case "self":
			continue
		case "crate":
			root, ok := r.RootModule(current.Package)
			if !ok {
				return CanonID{}, ErrIgnored
			}
			current = root
			continue
		}

		ns, err := r.Namespace(current)
		if err != nil {
			return CanonID{}, err
		}
		next, ok := ns[segment]
		if !ok {
			return CanonID{}, r.unresolvedPathError(segment, ns)
		}
		if i == len(path)-1 {
			return next, nil
		}
		current = next
	}
	return current, nil
}

func (r *Registry) unresolvedPathError(segment string, ns map[string]CanonID) error {
	names := make([]string, 0, len(ns))
	for n := range ns {
		names = append(names, n)
	}
	sort.Strings(names)

	suggestion, dist := "", -1
	for _, n := range names {
		d := levenshtein.ComputeDistance(segment, n)
		if dist == -1 || d < dist {
			dist, suggestion = d, n
		}
	}
	if suggestion != "" && dist <= 3 {
		return pkgerrors.Errorf("unable to find %q in scope (did you mean %q?)", segment, suggestion)
	}
	return pkgerrors.Errorf("unable to find %q in scope", segment)
}

// IsIgnored reports whether err is, or wraps, ErrIgnored.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrIgnored)
}
