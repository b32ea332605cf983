package common

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sam12-4/liquor-online/pkg/tracking"
)

// JsonHandler wraps a handler with session cookie handling and a ready JSON
// encoder. Handler errors are logged, not surfaced, the response headers are
// usually already written by then.
func JsonHandler(trk tracking.Tracking, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionId := HandleSessionCookie(trk, w, r)

		if err := fn(w, r, sessionId, json.NewEncoder(w)); err != nil {
			log.Printf("Error handling request: %v", err)
		}
	}
}

func WriteJson(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
