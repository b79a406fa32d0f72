// Package web shows the simulator in a browser tab. The page draws the frames
// it receives over a websocket and sends pointer input back, which makes the
// tab behave like the simulator window.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/callebjorkell/ledsim/internal/backend/raster"
	"github.com/callebjorkell/ledsim/internal/sim"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

const (
	DefaultAddr = "localhost:8090"
	writeWait   = 200 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Window is a sim.Renderer that serves the rendered frames to browser tabs.
type Window struct {
	*raster.Canvas

	// Addr is the listen address of the preview server.
	Addr string
	// QuitOnDisconnect posts a quit event when the last tab goes away, the
	// same way closing a native window ends the simulation.
	QuitOnDisconnect bool
	// RefreshRate is the number of frames presented per second.
	RefreshRate int

	events chan sim.Event

	mu      sync.Mutex
	title   string
	width   int
	height  int
	clients map[*client]struct{}

	server *http.Server
	addr   net.Addr
	ticker *time.Ticker
}

type client struct {
	conn   *websocket.Conn
	frames chan []byte
}

func New(addr string) *Window {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Window{
		Addr:             addr,
		QuitOnDisconnect: true,
		RefreshRate:      raster.DefaultRefreshRate,
		events:           make(chan sim.Event, 64),
		clients:          map[*client]struct{}{},
	}
}

// Handler returns the HTTP handler serving the page and the websocket.
func (w *Window) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", w.servePage).Methods(http.MethodGet)
	r.HandleFunc("/ws", w.serveSocket).Methods(http.MethodGet)

	n := negroni.New(negroni.NewRecovery())
	n.UseHandler(r)
	return n
}

func (w *Window) Open(title string, width, height int) error {
	l, err := net.Listen("tcp", w.Addr)
	if err != nil {
		return fmt.Errorf("preview server: %w", err)
	}

	w.mu.Lock()
	w.title, w.width, w.height = title, width, height
	w.mu.Unlock()

	rate := w.RefreshRate
	if rate <= 0 {
		rate = raster.DefaultRefreshRate
	}
	w.Canvas = raster.NewCanvas(width, height)
	w.ticker = time.NewTicker(time.Second / time.Duration(rate))
	w.addr = l.Addr()
	w.server = &http.Server{Handler: w.Handler()}

	go func() {
		if err := w.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Preview server stopped")
		}
	}()

	log.Infof("Simulator running at http://%v/", w.addr)
	return nil
}

// ListenAddr returns the address the preview server listens on once opened.
func (w *Window) ListenAddr() net.Addr {
	return w.addr
}

func (w *Window) PollEvent() (sim.Event, bool) {
	select {
	case e := <-w.events:
		return e, true
	default:
		return sim.Event{}, false
	}
}

// Present encodes the frame and hands it to every connected tab. Slow tabs
// miss frames rather than holding up the render loop.
func (w *Window) Present() error {
	if w.ticker == nil {
		return errors.New("preview window is not open")
	}
	if err := w.Err(); err != nil {
		return err
	}

	if w.Clients() > 0 {
		var buf bytes.Buffer
		if err := w.EncodePNG(&buf); err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
		w.broadcast(buf.Bytes())
	}

	<-w.ticker.C
	return nil
}

func (w *Window) Close() error {
	if w.ticker == nil {
		return nil
	}
	w.ticker.Stop()
	w.ticker = nil

	w.mu.Lock()
	for c := range w.clients {
		c.conn.Close()
	}
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	log.Debug("Closing preview server...")
	if err := w.server.Shutdown(ctx); err != nil {
		return err
	}
	return w.Canvas.Close()
}

// Clients returns the number of connected tabs.
func (w *Window) Clients() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.clients)
}

func (w *Window) broadcast(frame []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for c := range w.clients {
		select {
		case c.frames <- frame:
		default:
			log.Debug("Dropping frame for slow client")
		}
	}
}

func (w *Window) servePage(rw http.ResponseWriter, _ *http.Request) {
	w.mu.Lock()
	data := pageData{Title: w.title, Width: w.width, Height: w.height}
	w.mu.Unlock()

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(rw, data); err != nil {
		log.WithError(err).Warn("Unable to render page")
	}
}

func (w *Window) serveSocket(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.WithError(err).Debug("Websocket upgrade failed")
		return
	}

	c := &client{conn: conn, frames: make(chan []byte, 2)}
	w.mu.Lock()
	w.clients[c] = struct{}{}
	w.mu.Unlock()
	log.Infof("Viewer connected from %v", r.RemoteAddr)

	go c.writer()
	w.reader(c)
}

func (c *client) writer() {
	for frame := range c.frames {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.WithError(err).Debug("Unable to write frame")
			return
		}
	}
}

func (w *Window) reader(c *client) {
	defer func() {
		w.mu.Lock()
		delete(w.clients, c)
		remaining := len(w.clients)
		w.mu.Unlock()

		close(c.frames)
		c.conn.Close()
		log.Info("Viewer disconnected")

		if remaining == 0 && w.QuitOnDisconnect {
			w.post(sim.Event{Kind: sim.Quit})
		}
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				log.WithError(err).Debug("Unable to read input")
			}
			return
		}

		e, err := decodeInput(data)
		if err != nil {
			log.WithError(err).Warn("Ignoring input")
			continue
		}
		w.post(e)
	}
}

func (w *Window) post(e sim.Event) {
	select {
	case w.events <- e:
	default:
		log.Warnf("Input queue full, dropping %v", e)
	}
}
