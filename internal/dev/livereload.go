// Package dev provides development-mode tooling: a file watcher for locale
// catalogs and a websocket hub that tells open pages to reload.
package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// LiveReloadPath is where the browser script connects.
const LiveReloadPath = "/__livereload"

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10 // must be shorter than pongWait
)

type Message struct {
	Type    string `json:"type"`
	File    string `json:"file,omitempty"`
	Message string `json:"message,omitempty"`
}

type LiveReload struct {
	upgrader   websocket.Upgrader
	logger     *slog.Logger
	pongWait   time.Duration
	pingPeriod time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewLiveReload(logger *slog.Logger) *LiveReload {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveReload{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:     logger,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		clients:    make(map[*websocket.Conn]struct{}),
	}
}

func (l *LiveReload) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.logger.Debug("Live reload upgrade failed", "error", err)
			return
		}

		l.register(conn)
		defer l.unregister(conn)

		l.mu.Lock()
		err = l.write(conn, Message{Type: "connected"})
		l.mu.Unlock()
		if err != nil {
			return
		}

		done := make(chan struct{})
		defer close(done)
		go l.pingLoop(conn, done)

		l.readPump(conn)
	}
}

func (l *LiveReload) register(conn *websocket.Conn) {
	l.mu.Lock()
	l.clients[conn] = struct{}{}
	total := len(l.clients)
	l.mu.Unlock()
	l.logger.Debug("Live reload client connected", "total", total)
}

func (l *LiveReload) unregister(conn *websocket.Conn) {
	l.mu.Lock()
	_, ok := l.clients[conn]
	delete(l.clients, conn)
	total := len(l.clients)
	l.mu.Unlock()
	conn.Close()
	if ok {
		l.logger.Debug("Live reload client disconnected", "total", total)
	}
}

// readPump drains the connection so close frames and pongs are processed.
func (l *LiveReload) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(l.pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(l.pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l.logger.Debug("Live reload read error", "error", err)
			}
			return
		}
	}
}

// pingLoop keeps idle browsers connected; the client script never writes, so
// pongs are the only thing that extends the read deadline.
func (l *LiveReload) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(l.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			l.mu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			l.mu.Unlock()
			if err != nil {
				l.logger.Debug("Live reload ping failed", "error", err)
				conn.Close()
				return
			}
		}
	}
}

// write must be called with l.mu held; gorilla connections allow one
// concurrent writer.
func (l *LiveReload) write(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (l *LiveReload) Broadcast(msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for conn := range l.clients {
		if err := l.write(conn, msg); err != nil {
			l.logger.Debug("Failed to send live reload message", "error", err)
			conn.Close()
			delete(l.clients, conn)
		}
	}
}

func (l *LiveReload) Reload(file string) {
	l.Broadcast(Message{Type: "reload", File: file})
}

func (l *LiveReload) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *LiveReload) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for conn := range l.clients {
		conn.Close()
	}
	l.clients = make(map[*websocket.Conn]struct{})
}
