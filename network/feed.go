package network

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/core"
	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/status"
)

// Feed streams body transforms and disposals to websocket subscribers
// Publish methods are called from the frame loop and never block on a subscriber
type Feed struct {
	cfg      Config
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[ClientID]*client
	bodies  map[uint64]Body // Last published transform per live body, for connect snapshots
	seq     uint64
	nextID  atomic.Uint32

	listener net.Listener
	server   *http.Server

	clientCount *atomic.Int64
	dropped     *atomic.Int64
}

func NewFeed(cfg Config, reg *status.Registry, logger *log.Logger) *Feed {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Feed{
		cfg: cfg,
		log: logger.WithPrefix("feed"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:     make(map[ClientID]*client),
		bodies:      make(map[uint64]Body),
		clientCount: reg.Ints.Get(status.KeyFeedClients),
		dropped:     reg.Ints.Get(status.KeyFeedDropped),
	}
}

// Handler serves the websocket endpoint at cfg.Path
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(f.cfg.Path, f.serveWS)
	return mux
}

// Start binds cfg.Address and serves in the background
func (f *Feed) Start() error {
	ln, err := net.Listen("tcp", f.cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "feed listen %s", f.cfg.Address)
	}
	f.listener = ln
	f.server = &http.Server{Handler: f.Handler()}

	core.Go(func() {
		if err := f.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.Error("feed server stopped", "err", err)
		}
	})
	f.log.Info("feed listening", "addr", ln.Addr().String(), "path", f.cfg.Path)
	return nil
}

// Addr is the bound address, empty before Start
func (f *Feed) Addr() string {
	if f.listener == nil {
		return ""
	}
	return f.listener.Addr().String()
}

// Close stops the server and disconnects every subscriber
func (f *Feed) Close() {
	if f.server != nil {
		f.server.Close()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.clients {
		c.close()
		delete(f.clients, id)
	}
	f.clientCount.Store(0)
}

func (f *Feed) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	f.mu.Lock()
	if len(f.clients) >= f.cfg.MaxClients {
		f.mu.Unlock()
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many clients")
		conn.WriteMessage(websocket.CloseMessage, msg)
		conn.Close()
		return
	}

	// Snapshot and registration share the lock so no frame falls between them
	f.seq++
	snap := Frame{Type: FrameSnapshot, Seq: f.seq, Bodies: f.snapshotLocked()}
	data, err := snap.Encode()
	if err != nil {
		f.mu.Unlock()
		f.log.Error("snapshot encode failed", "err", err)
		conn.Close()
		return
	}
	c := newClient(ClientID(f.nextID.Add(1)), conn, f.cfg.SendQueueSize)
	c.send(data)
	f.clients[c.id] = c
	f.clientCount.Store(int64(len(f.clients)))
	f.mu.Unlock()

	f.log.Info("client connected", "id", c.id, "remote", c.addr, "bodies", len(snap.Bodies))

	core.Go(func() { c.writeLoop(f.cfg.WriteTimeout) })
	c.readLoop()
	f.remove(c, "disconnected")
}

func (f *Feed) snapshotLocked() []Body {
	out := make([]Body, 0, len(f.bodies))
	for _, b := range f.bodies {
		out = append(out, b)
	}
	return out
}

func (f *Feed) remove(c *client, reason string) {
	c.close()
	f.mu.Lock()
	_, ok := f.clients[c.id]
	delete(f.clients, c.id)
	f.clientCount.Store(int64(len(f.clients)))
	f.mu.Unlock()
	if ok {
		f.log.Info("client removed", "id", c.id, "reason", reason)
	}
}

// Seed records bodies for connect snapshots without broadcasting
func (f *Feed) Seed(facades []*engine.Facade) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range BodiesFromFacades(facades) {
		f.bodies[b.UUID] = b
	}
}

// PublishTransforms broadcasts one applied world batch
func (f *Feed) PublishTransforms(updates []engine.TransformUpdate) {
	bodies := BodiesFromUpdates(updates)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range bodies {
		f.bodies[b.UUID] = b
	}
	f.broadcastLocked(&Frame{Type: FrameTransforms, Bodies: bodies})
}

// PublishDispose broadcasts a disposal
func (f *Feed) PublishDispose(uuid uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bodies, uuid)
	f.broadcastLocked(&Frame{Type: FrameDispose, UUID: uuid})
}

// broadcastLocked encodes once and queues to every client; a client whose queue is full is dropped
func (f *Feed) broadcastLocked(frame *Frame) {
	f.seq++
	if len(f.clients) == 0 {
		return
	}
	frame.Seq = f.seq
	data, err := frame.Encode()
	if err != nil {
		f.log.Error("frame encode failed", "err", err)
		return
	}
	for id, c := range f.clients {
		if c.send(data) {
			continue
		}
		c.close()
		delete(f.clients, id)
		f.dropped.Add(1)
		f.log.Warn("slow client dropped", "id", id, "remote", c.addr)
	}
	f.clientCount.Store(int64(len(f.clients)))
}

// Clients returns the connected subscriber count
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}
