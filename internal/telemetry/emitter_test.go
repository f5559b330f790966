package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"formbuilder/internal/domain"
	"formbuilder/internal/editor"
)

func TestEditorEmitter_ForwardsAnonymousEvents(t *testing.T) {
	var rec capture
	srv := rec.server(t)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: 2 * time.Second})
	defer c.Close()

	em := EditorEmitter{Client: c}
	em.Emit(editor.EventStoreChanged, editor.StoreChange{Version: 3})
	em.Emit(editor.EventItemDropped, domain.Item{ID: "a", Type: domain.ComponentType("button"), Content: "secret label"})
	em.Emit(editor.EventItemDeleted, "a")
	em.Emit(editor.EventPageChanged, editor.PageChange{Active: 1, Pages: 2})
	c.Flush(context.Background())

	events, _, _ := rec.snapshot()
	var names []string
	for _, e := range events {
		names = append(names, e["name"].(string))
		for _, v := range e {
			if v == "secret label" || v == "a" {
				t.Fatalf("event %v leaks item data", e)
			}
		}
	}
	if diff := cmp.Diff([]string{"item_dropped", "item_deleted", "page_changed"}, names); diff != "" {
		t.Fatalf("forwarded events (-want +got):\n%s", diff)
	}
	if events[0]["component_type"] != "button" || events[0]["known_type"] != true {
		t.Fatalf("drop props = %v", events[0])
	}
	if events[2]["pages"] != float64(2) {
		t.Fatalf("page props = %v", events[2])
	}
}

func TestEditorEmitter_DisabledIsSilent(t *testing.T) {
	var rec capture
	srv := rec.server(t)
	c := New(Config{OptIn: false, EventsURL: srv.URL + "/events"})
	defer c.Close()

	EditorEmitter{Client: c}.Emit(editor.EventItemDeleted, "x")
	EditorEmitter{}.Emit(editor.EventItemDeleted, "x")
	c.Flush(context.Background())
	if events, _, _ := rec.snapshot(); len(events) != 0 {
		t.Fatalf("events = %v", events)
	}
}
