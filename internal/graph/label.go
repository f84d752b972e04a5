package graph

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

// childSegment derives the path segment a child item contributes to its
// parent's label while the BFS Engine walks the item graph. This mirrors
// the original's match over ItemEnum in its BFS loop exactly:
//
//   - a named item (struct, enum, trait, function, module, ...) contributes
//     its own name: `Parent::name`.
//   - an inherent impl (`impl Foo`) contributes no segment at all -- its
//     associated items are flattened directly under Foo's own label.
//   - a trait impl (`impl Trait for Foo`) contributes a synthetic segment,
//     `Parent::<_ as Trait>`, built from the trait's name only; the trait's
//     generic arguments are not rendered.
//   - an extern-package item or a non-glob `use` contributes its bound
//     name (the rename, if any, for extern crates; the `use`'s local name
//     otherwise).
//   - a glob `use` contributes nothing, so the items it imports are labeled
//     as if they were declared in the importing module.
//   - anything else (items reachable only as an ItemSummary, never loaded
//     as a full Item) falls back to the last segment of its rustdoc `paths`
//     entry.
func childSegment(doc *rustdoc.DocIndex, id rustdoc.LocalID, item rustdoc.Item) (segment string, contributes bool) {
	switch item.Inner.Kind {
	case rustdoc.KindImpl:
		if item.Inner.Impl.Trait == nil {
			return "", false
		}
		return fmt.Sprintf("<_ as %s>", item.Inner.Impl.Trait.Name), true

	case rustdoc.KindUse:
		if item.Inner.Use.IsGlob {
			return "", false
		}
		return item.Inner.Use.Name, true

	case rustdoc.KindExternCrate:
		if item.Inner.ExternCrate.Rename != nil {
			return *item.Inner.ExternCrate.Rename, true
		}
		return item.Inner.ExternCrate.Name, true

	default:
		if item.Name != nil {
			return *item.Name, true
		}
		if summary, ok := doc.Summary(id); ok && len(summary.Path) > 0 {
			return summary.Path[len(summary.Path)-1], true
		}
		return "", false
	}
}

// joinLabel appends segment to parent with the `::` separator the original
// uses for display paths (see pretty_print.rs's DisplayPath), or returns
// segment alone if parent is empty.
func joinLabel(parent, segment string) string {
	if parent == "" {
		return segment
	}
	if segment == "" {
		return parent
	}
	return parent + "::" + segment
}

// reportKinds are the item kinds eligible for the final "visible but not
// importable" report: named-declaration kinds only, per the Report
// component's filter.
var reportKinds = map[rustdoc.Kind]bool{
	rustdoc.KindUnion:     true,
	rustdoc.KindStruct:    true,
	rustdoc.KindEnum:      true,
	rustdoc.KindTrait:     true,
	rustdoc.KindTypeAlias: true,
}

// IsReportable reports whether kind belongs in the final leak report.
func IsReportable(kind rustdoc.Kind) bool {
	return reportKinds[kind]
}

func trimLabel(label string) string {
	return strings.TrimPrefix(label, "::")
}

// isPublicForBFS decides whether a neighbor admits into the importable
// phase of the BFS Engine (§4.F). It is evaluated against the
// pre-canonicalization item -- the `use`/`extern crate` item itself, not
// whatever it eventually resolves to -- because a `pub use` can re-export a
// privately-declared item publicly, and the reverse (a private `use` of a
// public item) must not leak that item as importable.
//
// Default visibility is treated as public for AssocType, Variant, and Impl:
// these three kinds inherit their enclosing scope's visibility in Rust
// rather than defaulting to private, per rustdoc's own documented behavior.
func isPublicForBFS(item rustdoc.Item) bool {
	if item.Visibility.IsPublic() {
		return true
	}
	if item.Visibility.Kind != rustdoc.VisibilityDefault {
		return false
	}
	switch item.Inner.Kind {
	case rustdoc.KindAssocType, rustdoc.KindVariant, rustdoc.KindImpl:
		return true
	default:
		return false
	}
}
