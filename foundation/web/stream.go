package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zaplanje/coin/foundation/events"
)

// pingInterval is how often an idle stream pings the client.
const pingInterval = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream upgrades the request to a websocket and writes the data of every
// event received on ch as a text frame until ch is closed, the client goes
// away or the context is cancelled.
func Stream(ctx context.Context, w http.ResponseWriter, r *http.Request, ch <-chan events.Event) error {
	if err := SetStatusCode(ctx, http.StatusSwitchingProtocols); err != nil {
		return err
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case evt, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(evt.Data)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}
