package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/sales-lab/pkg/handlers"
	"github.com/JaimeStill/sales-lab/pkg/logging"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondJSON(w, http.StatusCreated, map[string]any{"message": "record inserted", "object_id": 3})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"message":"record inserted","object_id":3}` {
		t.Errorf("body = %s", body)
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondError(w, logging.Discard(), http.StatusNotFound, errors.New("sales order not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "sales order not found" {
		t.Errorf("error = %q, want %q", body["error"], "sales order not found")
	}
}

type payload struct {
	ObjectID int64 `json:"object_id"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maxBytes   int64
		wantErr    bool
		wantStatus int
	}{
		{"valid", `{"object_id":4}`, 1024, false, 0},
		{"no limit", `{"object_id":4}`, 0, false, 0},
		{"malformed", `{"object_id":`, 1024, true, http.StatusBadRequest},
		{"unknown field", `{"objectId":4}`, 1024, true, http.StatusBadRequest},
		{"too large", `{"object_id":4444444444}`, 8, true, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/deleteRecord", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var p payload
			err := handlers.DecodeJSON(w, r, tt.maxBytes, &p)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("DecodeJSON() error = %v", err)
				}
				if p.ObjectID != 4 {
					t.Errorf("ObjectID = %d, want 4", p.ObjectID)
				}
				return
			}

			if err == nil {
				t.Fatal("DecodeJSON() succeeded, want error")
			}
			if got := handlers.DecodeStatus(err); got != tt.wantStatus {
				t.Errorf("DecodeStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestDecodeJSON_TooLargeIsSentinel(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat(" ", 64)+`{}`))
	w := httptest.NewRecorder()

	var p payload
	err := handlers.DecodeJSON(w, r, 16, &p)
	if !errors.Is(err, handlers.ErrBodyTooLarge) {
		t.Errorf("DecodeJSON() error = %v, want ErrBodyTooLarge", err)
	}
}
