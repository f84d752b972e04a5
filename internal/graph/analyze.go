package graph

import (
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

// Leak is one item the Report component prints: something rustdoc
// documents (it's in the visible set) that no chain of public re-exports
// actually makes importable.
type Leak struct {
	ID    CanonID
	Label string
	Kind  rustdoc.Kind
	Docs  *string
}

// Analyze runs both BFS phases from root and returns the leaked items:
// visible \ importable, filtered to the named-declaration kinds the Report
// component cares about (§4.H), sorted by label. Soft BFS failures from
// either phase are merged into the returned multierror rather than
// aborting the analysis (§7); the caller decides whether to treat that as
// fatal (--strict) or as a warnings summary.
func (r *Registry) Analyze(root ModuleID) ([]Leak, *multierror.Error) {
	importable, impErrs := r.BFS(root, true, ImportableLinker, nil)
	visible, visErrs := r.BFS(root, false, VisibleLinker, importable)

	var errs *multierror.Error
	errs = multierror.Append(errs, impErrs)
	errs = multierror.Append(errs, visErrs)

	var leaks []Leak
	for id, label := range visible {
		if _, ok := importable[id]; ok {
			continue
		}
		doc, ok := r.doc(id.Package)
		if !ok {
			continue
		}
		item, ok := doc.Item(id.Local)
		if !ok {
			continue
		}
		if !IsReportable(item.Inner.Kind) {
			continue
		}
		leaks = append(leaks, Leak{
			ID:    id,
			Label: trimLabel(label),
			Kind:  item.Inner.Kind,
			Docs:  item.Docs,
		})
	}

	sort.Slice(leaks, func(i, j int) bool { return leaks[i].Label < leaks[j].Label })
	return leaks, errs
}
