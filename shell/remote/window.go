package remote

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/shell"
)

// Window fans presented frames out to every subscribed client
type Window struct {
	shell   *Shell
	opts    shell.Options
	adapter shell.Adapter

	// mu guards every field below and every client send channel
	mu      sync.Mutex
	title   string
	size    core.Size
	last    *ServerMsg
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn   *websocket.Conn
	send   chan ServerMsg
	closed bool
}

func newWindow(s *Shell, opts shell.Options, a shell.Adapter) *Window {
	return &Window{
		shell:   s,
		opts:    opts,
		adapter: a,
		title:   opts.Title,
		size:    opts.Bounds.Size(),
		clients: make(map[*client]struct{}),
	}
}

// Title returns the current window title
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Clients returns the number of connected clients
func (w *Window) Clients() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// subscribe registers conn and queues the current title and frame for it
func (w *Window) subscribe(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan ServerMsg, clientBuffer)}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		c.closed = true
		close(c.send)
		return c
	}
	w.clients[c] = struct{}{}
	c.send <- ServerMsg{Type: MsgTitle, Title: w.title}
	if w.last != nil {
		c.send <- *w.last
	}
	return c
}

func (w *Window) unsubscribe(c *client) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, c)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// broadcast drops the message for clients whose buffer is full; frames are complete snapshots
func (w *Window) broadcast(msg ServerMsg) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for c := range w.clients {
		select {
		case c.send <- msg:
		default:
			w.shell.logger.Debug("client lagging, message dropped",
				zap.String("window", w.opts.ID), zap.String("type", msg.Type))
		}
	}
}

func (w *Window) disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for c := range w.clients {
		delete(w.clients, c)
		if !c.closed {
			c.closed = true
			close(c.send)
		}
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "window closed"),
		time.Now().Add(writeTimeout))
}

func (w *Window) readLoop(c *client) {
	defer w.unsubscribe(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		in, err := DecodeInput(data)
		if err != nil {
			w.shell.logger.Debug("bad client message", zap.String("window", w.opts.ID), zap.Error(err))
			continue
		}
		w.adapter.Input(in)
	}
}

// Present streams f unless it is unchanged and not forced
func (w *Window) Present(f render.Frame, changed, force bool) error {
	if !changed && !force {
		return nil
	}
	msg := EncodeFrame(f)
	w.mu.Lock()
	w.last = &msg
	w.mu.Unlock()
	w.broadcast(msg)
	return nil
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	w.broadcast(ServerMsg{Type: MsgTitle, Title: title})
}

func (w *Window) SetSize(size core.Size) {
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()
	w.broadcast(ServerMsg{Type: MsgSize, Width: size.Width, Height: size.Height})
}

func (w *Window) Bell() {
	w.broadcast(ServerMsg{Type: MsgBell})
}

// RequestRedraw resends the last frame to every client
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	last := w.last
	w.mu.Unlock()
	if last != nil {
		w.broadcast(*last)
	}
}

func (w *Window) Metrics() engine.TextMetrics {
	return w.shell.cfg.Metrics
}

func (w *Window) Close() error {
	w.disconnect()
	return nil
}
