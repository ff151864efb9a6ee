package cache

import (
	"log"
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the connection and runs it as an invalidation
// listener until it closes.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // same-host presentation clients only
		})
		if err != nil {
			log.Printf("cache: websocket accept: %v", err)
			return
		}

		client := NewClient(hub, conn)
		client.Run(r.Context())
	}
}
