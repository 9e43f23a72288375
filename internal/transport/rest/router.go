package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"buzzroom/internal/store"
	"buzzroom/internal/transport/ws"
)

// Container holds the dependencies the router wires together.
type Container struct {
	GameStore      store.GameStore
	WSHandler      *ws.Handler
	AllowedOrigins string
}

// NewRouter creates the HTTP router: health check, pre-join room
// lookup, and the WebSocket endpoint that carries the game protocol.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware(c.AllowedOrigins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/ws", c.WSHandler.ServeWS).Methods("GET")
	v1.HandleFunc("/rooms/{roomId}", roomInfo(c.GameStore)).Methods("GET", "OPTIONS")

	return r
}

// roomInfo lets a client check a room before attempting to join. Only
// the status and headcount leak; everything else needs the password.
func roomInfo(st store.GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := mux.Vars(r)["roomId"]
		game, ok := st.Get(roomID)
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "room not found"})
			return
		}
		game.Lock()
		resp := map[string]interface{}{
			"roomId":      game.RoomID,
			"status":      game.Status,
			"playerCount": game.ActiveCount(),
			"hasPassword": game.Password != "",
		}
		game.Unlock()
		json.NewEncoder(w).Encode(resp)
	}
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
