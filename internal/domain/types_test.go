package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestItemJSONFieldNames(t *testing.T) {
	it := Item{ID: "component-1", Type: TypeInput, X: 20, Y: 20, Width: 200, Height: 100, ZIndex: 1}
	b, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"id", "type", "x", "y", "width", "height", "zIndex"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing %q in %s", k, b)
		}
	}
}

func TestItemBoundsDefaults(t *testing.T) {
	got := Item{X: 5, Y: 7}.Bounds()
	want := Rect{X: 5, Y: 7, Width: DefaultWidth, Height: DefaultHeight}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
	if z := (Item{}).Z(); z != 1 {
		t.Fatalf("unset zIndex should read as 1, got %d", z)
	}
}

func TestStyleResolvedInherit(t *testing.T) {
	s := Style{Color: "#ff0000"}.Resolved()
	if s.Color != "#ff0000" || s.BackgroundColor != Inherit || s.FontFamily != Inherit {
		t.Fatalf("unexpected resolved style: %+v", s)
	}
}

func TestPaintOrderSortsByZStable(t *testing.T) {
	p := Page{Items: []Item{
		{ID: "a", ZIndex: 3},
		{ID: "b", ZIndex: 1},
		{ID: "c", ZIndex: 3},
		{ID: "d"},
	}}
	var got []string
	for _, it := range p.PaintOrder() {
		got = append(got, it.ID)
	}
	want := []string{"b", "d", "a", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paint order mismatch (-want +got):\n%s", diff)
	}
	// sequence order of the page itself is untouched
	if p.Items[0].ID != "a" {
		t.Fatalf("PaintOrder must not reorder the page")
	}
}

func TestPatchApplyOnlySetFields(t *testing.T) {
	it := Item{ID: "x", Type: TypeButton, Content: "Button", X: 1, Y: 2, Width: 3, Height: 4, ZIndex: 5}
	got := Patch{X: Float(10), Color: Str("blue")}.Apply(it)
	want := it
	want.X = 10
	want.Style.Color = "blue"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("patch mismatch (-want +got):\n%s", diff)
	}
	if !(Patch{}).Empty() || Geometry(Rect{}).Empty() {
		t.Fatalf("Empty() misreports")
	}
}

func TestKnownTypes(t *testing.T) {
	if len(KnownTypes()) != 14 {
		t.Fatalf("expected 14 built-in types, got %d", len(KnownTypes()))
	}
	if !TypeAppBar.Known() || ComponentType("carousel").Known() {
		t.Fatalf("Known() misreports")
	}
}
