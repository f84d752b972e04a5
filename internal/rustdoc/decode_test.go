package rustdoc

import "testing"

const sampleDoc = `{
	"root": 0,
	"index": {
		"0": {
			"name": "demo",
			"visibility": "public",
			"docs": null,
			"inner": {"module": {"is_crate": true, "items": [1, 2]}}
		},
		"1": {
			"name": "Widget",
			"visibility": "public",
			"docs": "A widget.",
			"inner": {"struct": {"kind": "unit", "generics": {"params": [], "where_predicates": []}, "impls": []}}
		},
		"2": {
			"name": "Hidden",
			"visibility": "default",
			"docs": null,
			"inner": {"struct": {"kind": "unit", "generics": {"params": [], "where_predicates": []}, "impls": []}}
		}
	},
	"paths": {},
	"external_crates": {}
}`

func TestDecode(t *testing.T) {
	idx, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if idx.Root != 0 {
		t.Fatalf("root = %d, want 0", idx.Root)
	}
	if len(idx.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(idx.Items))
	}

	root, ok := idx.Item(0)
	if !ok || root.Inner.Kind != KindModule {
		t.Fatalf("item 0 = %+v, want crate root module", root)
	}
	if !root.Inner.Module.IsCrate {
		t.Fatalf("item 0 is not marked as crate root")
	}
	if got := root.Inner.Module.Items; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("module items = %v, want [1 2]", got)
	}

	widget, ok := idx.Item(1)
	if !ok {
		t.Fatal("item 1 missing")
	}
	if !widget.Visibility.IsPublic() {
		t.Fatal("Widget should be public")
	}
	if widget.Docs == nil || *widget.Docs != "A widget." {
		t.Fatalf("docs = %v, want \"A widget.\"", widget.Docs)
	}

	hidden, ok := idx.Item(2)
	if !ok {
		t.Fatal("item 2 missing")
	}
	if hidden.Visibility.IsPublic() {
		t.Fatal("Hidden should not be public (default visibility)")
	}
}

func TestDecodeRestrictedVisibility(t *testing.T) {
	const doc = `{
		"root": 0,
		"index": {
			"0": {
				"name": "demo",
				"visibility": {"restricted": {"parent": 5, "path": "super"}},
				"docs": null,
				"inner": {"module": {"is_crate": true, "items": []}}
			}
		},
		"paths": {},
		"external_crates": {}
	}`
	idx, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	item, _ := idx.Item(0)
	if item.Visibility.Kind != VisibilityRestricted {
		t.Fatalf("visibility kind = %v, want restricted", item.Visibility.Kind)
	}
	if item.Visibility.Parent == nil || *item.Visibility.Parent != 5 {
		t.Fatalf("restricted parent = %v, want 5", item.Visibility.Parent)
	}
}
