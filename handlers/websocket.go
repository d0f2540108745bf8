// handlers/websocket.go
package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"show-do-ingles/game"
	"show-do-ingles/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// A nil CheckOrigin rejects cross-origin upgrades.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// GameWebSocket streams session snapshots: the current one on connect and a
// new one after every state change, including those made by background
// fetches and answer timers.
func GameWebSocket(games *store.Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl := games.GetOrCreate(sessionID(r))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		updates, unsubscribe := ctrl.Subscribe()
		defer unsubscribe()

		// The client sends nothing; reading only serves close frames and pongs.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		current := ctrl.Snapshot()
		if err := writeSnapshot(conn, current); err != nil {
			return
		}
		sent := current.Version

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-closed:
				return
			case snap := <-updates:
				// Changes queued before the first write are already in it.
				if snap.Version <= sent {
					continue
				}
				if err := writeSnapshot(conn, snap); err != nil {
					return
				}
				sent = snap.Version
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snap game.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}
