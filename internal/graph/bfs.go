package graph

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type queueEntry struct {
	id    AbsID
	label string
}

// BFS walks the item graph using link, producing every reached item's
// canonical id and the label it earned along the shortest path that reached
// it (§4.F, §4.G). If seed is empty, the walk starts from root alone (the
// importable phase); otherwise it starts pre-populated from seed (the
// visible phase, seeded with the importable set) and root is not visited on
// its own account. When requirePublic is true (the importable phase) a
// neighbor whose own declared visibility isn't public is not admitted at
// all; when false (the visible phase) every reached neighbor is labeled,
// but -- per §4.F -- only a *publicly* visible neighbor is re-enqueued for
// further expansion, so a privately-referenced type gets recorded without
// pulling in whatever it privately refers to in turn.
//
// A neighbor that fails to resolve (§7, "BFS soft failure") does not abort
// the walk: it is recorded in the returned multierror and skipped, the same
// way the teacher accumulates per-package errors in documentation.go
// without aborting the overall indexing run.
func (r *Registry) BFS(root ModuleID, requirePublic bool, link Linker, seed map[CanonID]string) (map[CanonID]string, *multierror.Error) {
	visited := make(map[CanonID]bool)
	labels := make(map[CanonID]string)
	var queue []queueEntry

	if len(seed) == 0 {
		rootLabel := strings.ReplaceAll(r.packageName(root.Package), "-", "_")
		visited[root] = true
		labels[root] = rootLabel
		queue = append(queue, queueEntry{id: root, label: rootLabel})
	} else {
		seeded := make([]queueEntry, 0, len(seed))
		for id, label := range seed {
			seeded = append(seeded, queueEntry{id: id, label: label})
		}
		// Map iteration order is random; sort by id so discovery order (and
		// therefore which parent's label wins a shared child) is
		// deterministic given deterministic inputs, per §5.
		sort.Slice(seeded, func(i, j int) bool {
			if seeded[i].id.Package != seeded[j].id.Package {
				return seeded[i].id.Package < seeded[j].id.Package
			}
			return seeded[i].id.Local < seeded[j].id.Local
		})
		for _, e := range seeded {
			visited[e.id] = true
			labels[e.id] = e.label
			queue = append(queue, e)
		}
	}

	var errs *multierror.Error

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		doc, ok := r.doc(cur.id.Package)
		if !ok {
			continue
		}
		item, ok := doc.Item(cur.id.Local)
		if !ok {
			continue
		}

		for _, ref := range link.Neighbors(item) {
			neighbor := AbsID{Package: cur.id.Package, Local: ref}

			// is_public is read off the pre-canonicalization item: a `pub
			// use` of a private item is publicly importable even though
			// its referent isn't, and the BFS engine must gate on the
			// item actually sitting in this scope, not on whatever it
			// eventually resolves to.
			isPublic := true
			preItem, hasPreItem := doc.Item(ref)
			if hasPreItem {
				isPublic = isPublicForBFS(preItem)
			}
			if requirePublic && !isPublic {
				continue
			}

			canon, err := r.Resolve(neighbor)
			if err != nil {
				if IsIgnored(err) {
					continue
				}
				errs = multierror.Append(errs, errors.Wrapf(err, "resolving item %d in package %q", ref, r.packageName(cur.id.Package)))
				continue
			}
			if visited[canon] {
				continue
			}

			ndoc, ok := r.doc(canon.Package)
			if !ok {
				continue
			}
			nitem, ok := ndoc.Item(canon.Local)
			if !ok {
				continue
			}

			// Like the visibility gate, the label segment comes from the
			// item as it sits in this scope (a `use` contributes its local
			// name, a glob nothing); only a reference with no local item
			// is labeled from its canonical item.
			segDoc, segID, segItem := ndoc, canon.Local, nitem
			if hasPreItem {
				segDoc, segID, segItem = doc, ref, preItem
			}
			segment, contributes := childSegment(segDoc, segID, segItem)
			label := cur.label
			if contributes {
				label = joinLabel(cur.label, segment)
			}

			visited[canon] = true
			labels[canon] = label
			if isPublic {
				queue = append(queue, queueEntry{id: canon, label: label})
			}
		}
	}

	return labels, errs
}
