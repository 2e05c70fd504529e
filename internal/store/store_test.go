package store

import (
	"fmt"
	"testing"

	"github.com/probelab/diaglens/internal/diag"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := New(10)

	r1 := s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "one"})
	r2 := s.AddError(diag.RawError{Description: "boom"})

	if r1.ID != 1 || r2.ID != 2 {
		t.Errorf("ids = %d, %d", r1.ID, r2.ID)
	}
	if s.LastID() != 2 {
		t.Errorf("LastID = %d", s.LastID())
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: fmt.Sprintf("m%d", i)})
	}

	records := s.List(0, "")
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != 3 || records[2].ID != 5 {
		t.Errorf("retained ids %d..%d, want 3..5", records[0].ID, records[2].ID)
	}
}

func TestListAfterAndKindFilter(t *testing.T) {
	s := New(10)
	s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "a"})
	s.AddMessage(diag.ConsoleMessage{Kind: "warning", Text: "b"})
	s.AddError(diag.RawError{Description: "boom"})

	if got := s.List(1, ""); len(got) != 2 {
		t.Errorf("List(1) = %d records, want 2", len(got))
	}
	errs := s.List(0, "error")
	if len(errs) != 1 || errs[0].Kind() != "error" {
		t.Errorf("error filter = %+v", errs)
	}
}

func TestGet(t *testing.T) {
	s := New(10)
	rec := s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "hello"})

	got, ok := s.Get(rec.ID)
	if !ok || got.Msg.Text != "hello" {
		t.Errorf("Get = %+v, %v", got, ok)
	}
	if _, ok := s.Get(99); ok {
		t.Error("Get(99) found a record")
	}
}

func TestClearKeepsIDSequence(t *testing.T) {
	s := New(10)
	s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "a"})
	s.Clear()

	if got := s.List(0, ""); got != nil {
		t.Errorf("records after clear: %+v", got)
	}
	rec := s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "b"})
	if rec.ID != 2 {
		t.Errorf("id after clear = %d, want 2", rec.ID)
	}
}

func TestRecordSource(t *testing.T) {
	s := New(10)
	msg := s.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "a"})
	errRec := s.AddError(diag.RawError{Description: "boom"})

	if _, ok := msg.Source().(diag.ConsoleMessage); !ok {
		t.Errorf("message source = %T", msg.Source())
	}
	if _, ok := errRec.Source().(diag.UncaughtError); !ok {
		t.Errorf("error source = %T", errRec.Source())
	}
}
