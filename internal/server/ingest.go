package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/sourcemap"
	"github.com/probelab/diaglens/internal/store"
	"github.com/probelab/diaglens/internal/textutil"
)

// ingestEvent is one diagnostic event reported by the target's reporter
// script. Either Exception is set (an uncaught error) or the console
// fields are.
type ingestEvent struct {
	Kind      string           `json:"kind,omitempty"`
	Text      string           `json:"text,omitempty"`
	Args      []diag.RawValue  `json:"args,omitempty"`
	Stack     string           `json:"stack,omitempty"`
	Exception *ingestException `json:"exception,omitempty"`
}

// ingestException mirrors the target-side shape of an uncaught error,
// with raw stack text and a nested cause chain.
type ingestException struct {
	Description string           `json:"description"`
	Stack       string           `json:"stack,omitempty"`
	Cause       *ingestException `json:"cause,omitempty"`
}

func (e *ingestException) toRawError() diag.RawError {
	raw := diag.RawError{Description: e.Description}
	if e.Stack != "" {
		raw.Stack = sourcemap.ParseStack(e.Stack)
	}
	if e.Cause != nil {
		cause := e.Cause.toRawError()
		raw.Cause = &cause
	}
	return raw
}

// NewIngestHandler returns the HTTP handler for POST /ingest. It decodes
// one JSON event per request and appends it to the store.
func NewIngestHandler(st *store.Store, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var event ingestEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			http.Error(w, "invalid event payload", http.StatusBadRequest)
			return
		}

		var rec store.Record
		if event.Exception != nil {
			rec = st.AddError(event.Exception.toRawError())
			logger.Debug("ingested exception",
				"msgid", rec.ID,
				"description", textutil.Ellipsize(event.Exception.Description, 120))
		} else {
			msg := diag.ConsoleMessage{
				Kind: event.Kind,
				Text: event.Text,
				Args: event.Args,
			}
			if msg.Kind == "" {
				msg.Kind = "log"
			}
			if event.Stack != "" {
				msg.Stack = sourcemap.ParseStack(event.Stack)
			}
			rec = st.AddMessage(msg)
			logger.Debug("ingested message",
				"msgid", rec.ID, "kind", msg.Kind,
				"text", textutil.Ellipsize(msg.Text, 120))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]int64{"msgid": rec.ID})
	})
}
