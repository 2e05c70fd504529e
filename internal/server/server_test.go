package server

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/session"
	"github.com/probelab/diaglens/internal/store"
)

func newTestSession(t *testing.T, records int) *session.Context {
	t.Helper()
	st := store.New(100)
	for i := 0; i < records; i++ {
		st.AddMessage(diag.ConsoleMessage{Kind: "log", Text: fmt.Sprintf("event %d", i+1)})
	}
	return session.NewContext("test-session", st, diag.Resolvers{})
}

func TestGetMessageLeavesSeenCursorAlone(t *testing.T) {
	sc := newTestSession(t, 5)

	if _, err := getMessage(context.Background(), sc, GetMessageArgs{Msgid: 5}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := sc.LastSeen(); got != 0 {
		t.Fatalf("cursor advanced to %d by get_message", got)
	}

	// Every record, including those before the fetched one, is still new
	// to the next default listing.
	out := listMessages(context.Background(), sc, ListMessagesArgs{})
	for id := 1; id <= 5; id++ {
		if !strings.Contains(out, fmt.Sprintf("msgid=%d", id)) {
			t.Errorf("listing missing msgid=%d:\n%s", id, out)
		}
	}
}

func TestListMessagesMarksListedRecordsSeen(t *testing.T) {
	sc := newTestSession(t, 3)

	listMessages(context.Background(), sc, ListMessagesArgs{})
	if got := sc.LastSeen(); got != 3 {
		t.Fatalf("cursor = %d, want 3", got)
	}
	if out := listMessages(context.Background(), sc, ListMessagesArgs{}); out != "No new console messages." {
		t.Errorf("second listing = %q", out)
	}

	sc.Store.AddMessage(diag.ConsoleMessage{Kind: "log", Text: "late"})
	out := listMessages(context.Background(), sc, ListMessagesArgs{})
	if !strings.Contains(out, "msgid=4") {
		t.Errorf("new record not listed: %q", out)
	}
	if strings.Contains(out, "msgid=1") {
		t.Errorf("already-seen record relisted: %q", out)
	}
}

func TestListMessagesAllRelistsSeenRecords(t *testing.T) {
	sc := newTestSession(t, 2)

	listMessages(context.Background(), sc, ListMessagesArgs{})
	out := listMessages(context.Background(), sc, ListMessagesArgs{All: true})
	if !strings.Contains(out, "msgid=1") || !strings.Contains(out, "msgid=2") {
		t.Errorf("all=true listing = %q", out)
	}
}

func TestGetMessageUnknownID(t *testing.T) {
	sc := newTestSession(t, 1)
	if _, err := getMessage(context.Background(), sc, GetMessageArgs{Msgid: 99}); err == nil {
		t.Error("expected error for unknown msgid")
	}
}
