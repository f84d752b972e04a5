package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexops/autogold"

	"github.com/sourcegraph/should-be-public-checker/internal/graph"
	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

func TestWriteEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "visible but not importable:\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestWriteListsLeaksWithDocs(t *testing.T) {
	docs := "renders to markdown"
	leaks := []graph.Leak{
		{Label: "internal::Leaked", Kind: rustdoc.KindStruct, Docs: &docs},
		{Label: "internal::AlsoLeaked", Kind: rustdoc.KindStruct},
	}
	var buf bytes.Buffer
	if err := Write(&buf, leaks, Options{Docs: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "- internal::Leaked\n") {
		t.Errorf("missing leak line: %s", out)
	}
	if !strings.Contains(out, "renders to markdown") {
		t.Errorf("missing rendered docs: %s", out)
	}
}

func TestWriteGoldenOutput(t *testing.T) {
	leaks := []graph.Leak{
		{Label: "inner::Widget", Kind: rustdoc.KindStruct},
		{Label: "inner::handler::Callback", Kind: rustdoc.KindTrait},
	}
	var buf bytes.Buffer
	if err := Write(&buf, leaks, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	autogold.Want("two-leaks", `visible but not importable:
- inner::Widget
- inner::handler::Callback
`).Equal(t, buf.String())
}
