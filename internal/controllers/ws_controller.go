package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// upgrader configures the WebSocket connection for the live plan feed.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// feedClients holds the console connections subscribed to plan updates.
var (
	feedMu      sync.Mutex
	feedClients = make(map[*websocket.Conn]bool)
)

// HandleFeedWebSocket upgrades the connection and registers it for plan
// broadcasts. The read loop exists only to notice client disconnects.
func HandleFeedWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("HandleFeedWebSocket: upgrade failed")
		return
	}

	feedMu.Lock()
	feedClients[conn] = true
	total := len(feedClients)
	feedMu.Unlock()
	logrus.Infof("feed client connected (%d total)", total)

	go func() {
		defer removeFeedClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastPlan pushes the latest plan payload to every connected console.
// Clients that fail to accept the write are dropped.
func BroadcastPlan(payload any) {
	feedMu.Lock()
	defer feedMu.Unlock()

	for conn := range feedClients {
		if err := conn.WriteJSON(payload); err != nil {
			logrus.WithError(err).Warn("BroadcastPlan: dropping unresponsive client")
			conn.Close()
			delete(feedClients, conn)
		}
	}
}

func removeFeedClient(conn *websocket.Conn) {
	feedMu.Lock()
	defer feedMu.Unlock()
	if feedClients[conn] {
		conn.Close()
		delete(feedClients, conn)
	}
}
