package graph

import (
	"testing"

	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

// TestNamespaceGlobCycleTerminates builds two modules that glob-import each
// other (`pub use b::*;` / `pub use a::*;`) and checks that building
// either's namespace terminates instead of recursing forever.
func TestNamespaceGlobCycleTerminates(t *testing.T) {
	items := map[rustdoc.LocalID]rustdoc.Item{
		0: { // crate root, just so RootModule has somewhere to point
			ID:         0,
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindModule, Module: &rustdoc.Module{IsCrate: true, Items: []rustdoc.LocalID{1, 2}}},
		},
		1: { // mod a { pub use super::b::*; pub struct FromA; }
			ID:         1,
			Name:       strPtr("a"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindModule, Module: &rustdoc.Module{Items: []rustdoc.LocalID{3, 5}}},
		},
		2: { // mod b { pub use super::a::*; pub struct FromB; }
			ID:         2,
			Name:       strPtr("b"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindModule, Module: &rustdoc.Module{Items: []rustdoc.LocalID{4, 6}}},
		},
		3: { // use super::b::*; (glob, inside a)
			ID:         3,
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindUse, Use: &rustdoc.Use{Source: "b", IsGlob: true, Target: localIDPtr(2)}},
		},
		4: { // use super::a::*; (glob, inside b)
			ID:         4,
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindUse, Use: &rustdoc.Use{Source: "a", IsGlob: true, Target: localIDPtr(1)}},
		},
		5: {
			ID:         5,
			Name:       strPtr("FromA"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindStruct, Struct: &rustdoc.Struct{Kind: rustdoc.StructKind{Tag: rustdoc.StructKindUnit}}},
		},
		6: {
			ID:         6,
			Name:       strPtr("FromB"),
			Visibility: rustdoc.Visibility{Kind: rustdoc.VisibilityPublic},
			Inner:      rustdoc.ItemEnum{Kind: rustdoc.KindStruct, Struct: &rustdoc.Struct{Kind: rustdoc.StructKind{Tag: rustdoc.StructKindUnit}}},
		},
	}
	doc := &rustdoc.DocIndex{Root: 0, Items: items, Paths: map[rustdoc.LocalID]rustdoc.ItemSummary{}, Externals: map[rustdoc.ExternalPackageID]rustdoc.ExternalCrate{}}

	registry := NewRegistry()
	pkg := registry.LoadPackage("demo", doc)

	ns, err := registry.Namespace(AbsID{Package: pkg, Local: 1})
	if err != nil {
		t.Fatalf("Namespace(a): %v", err)
	}
	if _, ok := ns["FromA"]; !ok {
		t.Errorf("namespace(a) missing its own FromA: %v", ns)
	}
	if _, ok := ns["FromB"]; !ok {
		t.Errorf("namespace(a) missing glob-imported FromB: %v", ns)
	}
}

func TestStdlibPackagesAreIgnored(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"std", "core", "alloc", "proc_macro", "test"} {
		if !STDLIBS[name] {
			t.Errorf("STDLIBS missing %q", name)
		}
	}
	if _, err := registry.resolveCrateRoot("std"); !IsIgnored(err) {
		t.Errorf("resolveCrateRoot(std) error = %v, want ErrIgnored", err)
	}
}
