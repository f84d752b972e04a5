package graph

import (
	"testing"

	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

func strPtr(s string) *string { return &s }

// buildFixture assembles a small hand-written doc index:
//
//	mod internal {           // id 1, private
//	    pub struct Exported;  // id 10, re-exported below
//	    pub struct Leaked;    // id 11, only reachable through do_thing's signature
//	    pub struct AlsoLeaked; // id 12, reachable only structurally
//	}
//	pub use internal::Exported;  // id 2
//	pub fn do_thing(x: Leaked);  // id 3
func buildFixture() *rustdoc.DocIndex {
	items := map[rustdoc.LocalID]rustdoc.Item{
		0: {
			ID:         0,
			Name:       strPtr("demo"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner: rustdoc.ItemEnum{
				Kind:   rustdoc.KindModule,
				Module: &rustdoc.Module{IsCrate: true, Items: []rustdoc.LocalID{1, 2, 3}},
			},
		},
		1: {
			ID:         1,
			Name:       strPtr("internal"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityDefault},
			Inner: rustdoc.ItemEnum{
				Kind:   rustdoc.KindModule,
				Module: &rustdoc.Module{Items: []rustdoc.LocalID{10, 11, 12}},
			},
		},
		2: {
			ID:         2,
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner: rustdoc.ItemEnum{
				Kind: rustdoc.KindUse,
				Use:  &rustdoc.Use{Source: "internal::Exported", Name: "Exported", Target: localIDPtr(10)},
			},
		},
		3: {
			ID:         3,
			Name:       strPtr("do_thing"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner: rustdoc.ItemEnum{
				Kind: rustdoc.KindFunction,
				Function: &rustdoc.Function{
					Signature: rustdoc.FunctionSignature{
						Inputs: []rustdoc.FunctionParam{
							{Name: "x", Type: rustdoc.Type{Tag: rustdoc.TypeResolvedPath, ResolvedPath: &rustdoc.Path{Name: "Leaked", ID: 11}}},
						},
					},
				},
			},
		},
		10: {
			ID:         10,
			Name:       strPtr("Exported"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindStruct, Struct: &rustdoc.Struct{Kind: rustdoc.StructKind{Tag: rustdoc.StructKindUnit}}},
		},
		11: {
			ID:         11,
			Name:       strPtr("Leaked"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindStruct, Struct: &rustdoc.Struct{Kind: rustdoc.StructKind{Tag: rustdoc.StructKindUnit}}},
		},
		12: {
			ID:         12,
			Name:       strPtr("AlsoLeaked"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindStruct, Struct: &rustdoc.Struct{Kind: rustdoc.StructKind{Tag: rustdoc.StructKindUnit}}},
		},
	}
	return &rustdoc.DocIndex{
		Root:      0,
		Items:     items,
		Paths:     map[rustdoc.LocalID]rustdoc.ItemSummary{},
		Externals: map[rustdoc.ExternalPackageID]rustdoc.ExternalCrate{},
	}
}

func localIDPtr(id rustdoc.LocalID) *rustdoc.LocalID { return &id }

// TestAnalyzeReportsSignatureLeakOnly checks the fixture's one true
// leak: Leaked is never importable (it only lives in the private `internal`
// module, which the importable phase never enters), but it is visible
// because do_thing's signature names it -- so it is reported under the
// label of the function that leaks it, not under the private module it
// happens to be declared in. AlsoLeaked sits in the same private module but
// is never referenced by anything public, so it must not be reported at
// all: the visible phase only follows signature references from the
// importable set, it does not re-walk every private module's contents.
func TestAnalyzeReportsSignatureLeakOnly(t *testing.T) {
	registry := NewRegistry()
	pkg := registry.LoadPackage("demo", buildFixture())
	root, ok := registry.RootModule(pkg)
	if !ok {
		t.Fatal("no root module")
	}

	leaks, errs := registry.Analyze(root)
	if errs.ErrorOrNil() != nil {
		t.Fatalf("unexpected BFS errors: %v", errs)
	}

	var labels []string
	for _, l := range leaks {
		labels = append(labels, l.Label)
	}
	want := []string{"demo::do_thing::Leaked"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}

func TestImportableIsSubsetOfVisible(t *testing.T) {
	registry := NewRegistry()
	pkg := registry.LoadPackage("demo", buildFixture())
	root, _ := registry.RootModule(pkg)

	importable, errs := registry.BFS(root, true, ImportableLinker, nil)
	if errs.ErrorOrNil() != nil {
		t.Fatalf("importable BFS errors: %v", errs)
	}
	visible, errs := registry.BFS(root, false, VisibleLinker, importable)
	if errs.ErrorOrNil() != nil {
		t.Fatalf("visible BFS errors: %v", errs)
	}

	for id := range importable {
		if _, ok := visible[id]; !ok {
			t.Errorf("id %v is importable but not visible", id)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	pkg := registry.LoadPackage("demo", buildFixture())

	id := AbsID{Package: pkg, Local: 2}
	first, err := registry.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := registry.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve (cached): %v", err)
	}
	if first != second {
		t.Fatalf("Resolve not idempotent: %v != %v", first, second)
	}
	if first.Local != 10 {
		t.Fatalf("Resolve(use item) = %v, want local id 10", first)
	}
}
