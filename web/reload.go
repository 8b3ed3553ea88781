package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
)

// ReloadMessage is sent to every connected browser when a watched file
// changes.
type ReloadMessage struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Reloader polls a set of files and tells connected browsers to reload when
// one of them changes. Browsers connect to it as a websocket endpoint.
type Reloader struct {
	// OnChange, if set, is called with each changed path before browsers
	// are notified.
	OnChange func(path string)

	paths    []string
	interval time.Duration
	mtimes   map[string]time.Time

	mu      sync.Mutex
	clients map[chan ReloadMessage]struct{}
}

// NewReloader watches paths, checking them every interval once Run is
// called.
func NewReloader(interval time.Duration, paths ...string) *Reloader {
	rl := &Reloader{
		paths:    paths,
		interval: interval,
		mtimes:   make(map[string]time.Time),
		clients:  make(map[chan ReloadMessage]struct{}),
	}
	rl.check()
	return rl
}

// check returns the watched paths whose modification time differs from the
// previous check. A file that cannot be stat'ed is not reported until it
// appears again.
func (rl *Reloader) check() []string {
	var changed []string
	for _, p := range rl.paths {
		mt, err := statModTime(p)
		if err != nil {
			continue
		}
		if prev, ok := rl.mtimes[p]; ok && !prev.Equal(mt) {
			changed = append(changed, p)
		}
		rl.mtimes[p] = mt
	}
	return changed
}

// Run polls until ctx is done.
func (rl *Reloader) Run(ctx context.Context) {
	t := time.NewTicker(rl.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, p := range rl.check() {
				glog.Infof("web: %s changed", p)
				if rl.OnChange != nil {
					rl.OnChange(p)
				}
				rl.Notify(p)
			}
		}
	}
}

// Notify sends a reload message for path to every connected browser.
// Browsers that are not keeping up are skipped.
func (rl *Reloader) Notify(path string) {
	msg := ReloadMessage{Type: "reload", Path: path}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for c := range rl.clients {
		select {
		case c <- msg:
		default:
			glog.Warningf("web: reload client not keeping up, dropping message")
		}
	}
}

func (rl *Reloader) register() chan ReloadMessage {
	c := make(chan ReloadMessage, 16)
	rl.mu.Lock()
	rl.clients[c] = struct{}{}
	rl.mu.Unlock()
	return c
}

func (rl *Reloader) unregister(c chan ReloadMessage) {
	rl.mu.Lock()
	delete(rl.clients, c)
	rl.mu.Unlock()
}

// ServeHTTP upgrades the request to a websocket and forwards reload
// messages until the browser goes away.
func (rl *Reloader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Errorf("web: upgrading reload connection: %v", err)
		return
	}
	defer conn.Close()

	c := rl.register()
	defer rl.unregister(c)

	// Browsers never send anything; reading only notices the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case msg := <-c:
			if err := conn.WriteJSON(msg); err != nil {
				glog.V(1).Infof("web: writing reload message: %v", err)
				return
			}
		}
	}
}

// clientCount returns the number of connected browsers.
func (rl *Reloader) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
