// Package web serves sprites cut live from a sprite sheet, alongside the
// static files of the game, for local development.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/greeny-assets/catalog"
	"badc0de.net/pkg/greeny-assets/compositor"
	"badc0de.net/pkg/greeny-assets/sheet"
	"badc0de.net/pkg/greeny-assets/slicer"
)

// Handler serves sprites cut live from one sheet.
type Handler struct {
	slicer    *slicer.Slicer
	sheetPath string

	mu  sync.RWMutex
	cur *sheetState
}

type sheetState struct {
	img     image.Image
	geom    sheet.Geometry
	modTime time.Time
}

// NewHandler loads the sheet at sheetPath and serves the cells described by
// the catalog. Sprites are routed the way the passed roots would route them
// on disk; catalog.json reports those paths.
func NewHandler(sheetPath string, cat *catalog.Catalog, roots slicer.Roots) (*Handler, error) {
	h := &Handler{slicer: slicer.New(cat, roots), sheetPath: sheetPath}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// NewHandlerFromImage is NewHandler for an already decoded sheet. modTime is
// used for caching headers and may be zero. Such a handler cannot Reload.
func NewHandlerFromImage(img image.Image, modTime time.Time, cat *catalog.Catalog, roots slicer.Roots) (*Handler, error) {
	h := &Handler{slicer: slicer.New(cat, roots)}
	st, err := h.prepare(img, modTime)
	if err != nil {
		return nil, err
	}
	h.cur = st
	return h, nil
}

func (h *Handler) prepare(img image.Image, modTime time.Time) (*sheetState, error) {
	g := sheet.ComputeGeometry(img, h.slicer.Catalog.Columns, h.slicer.Catalog.Rows)
	if _, err := h.slicer.Plan(g); err != nil {
		return nil, errors.Wrap(err, "cannot serve sheet")
	}
	return &sheetState{
		img:     img,
		geom:    g,
		modTime: modTime.UTC().Truncate(time.Second),
	}, nil
}

// Reload reads the sheet from disk again. On failure the previously loaded
// sheet keeps being served.
func (h *Handler) Reload() error {
	if h.sheetPath == "" {
		return errors.New("handler was not created from a file")
	}
	img, err := slicer.Load(h.sheetPath)
	if err != nil {
		return err
	}
	modTime := time.Time{}
	if mt, err := statModTime(h.sheetPath); err == nil {
		modTime = mt
	}
	st, err := h.prepare(img, modTime)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.cur = st
	h.mu.Unlock()
	glog.V(1).Infof("web: loaded %s: %v", h.sheetPath, st.geom)
	return nil
}

func (h *Handler) state() *sheetState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

func (st *sheetState) etag(what string) string {
	generation := 1 // bump if the way we generate it changes
	return fmt.Sprintf(`W/"%s:%d:%d:%dx%d"`, what, generation, st.modTime.Unix(), st.geom.SheetWidth, st.geom.SheetHeight)
}

func (h *Handler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tr := trace.New("web.sprite", id)
	defer tr.Finish()

	st := h.state()
	e, ok := h.slicer.Catalog.Lookup(id)
	if !ok {
		tr.LazyPrintf("unknown sprite")
		tr.SetError()
		http.Error(w, "no such sprite", http.StatusNotFound)
		return
	}

	etag := st.etag("sprite:" + id)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		tr.LazyPrintf("not modified")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	region := st.geom.CellRect(e.Row, e.Column)
	buf := &bytes.Buffer{}
	if err := slicer.Encode(buf, slicer.Crop(st.img, region)); err != nil {
		tr.LazyPrintf("encoding: %v", err)
		tr.SetError()
		glog.Errorf("web: encoding sprite %q: %v", id, err)
		http.Error(w, "sprite could not be encoded", http.StatusInternalServerError)
		return
	}
	tr.LazyPrintf("%v, %d bytes", region, buf.Len())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if !st.modTime.IsZero() {
		w.Header().Set("Last-Modified", st.modTime.Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type catalogJSON struct {
	Sheet struct {
		Width      int `json:"width"`
		Height     int `json:"height"`
		Columns    int `json:"columns"`
		Rows       int `json:"rows"`
		CellWidth  int `json:"cellWidth"`
		CellHeight int `json:"cellHeight"`
	} `json:"sheet"`
	Special string       `json:"special"`
	Sprites []spriteJSON `json:"sprites"`
}

type spriteJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	Region      [4]int `json:"region"` // left, top, right, bottom
	Path        string `json:"path"`
	URL         string `json:"url"`
	DataURL     string `json:"dataUrl,omitempty"`
}

func (h *Handler) catalogHandler(w http.ResponseWriter, r *http.Request) {
	inline := r.URL.Query().Get("inline") == "1"

	st := h.state()
	assets, err := h.slicer.Plan(st.geom)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var c catalogJSON
	c.Sheet.Width, c.Sheet.Height = st.geom.SheetWidth, st.geom.SheetHeight
	c.Sheet.Columns, c.Sheet.Rows = st.geom.Columns, st.geom.Rows
	c.Sheet.CellWidth, c.Sheet.CellHeight = st.geom.CellWidth, st.geom.CellHeight
	c.Special = h.slicer.Catalog.Special

	for _, a := range assets {
		s := spriteJSON{
			ID:          a.Identifier,
			Description: a.Description,
			Row:         a.Row,
			Column:      a.Column,
			Region:      [4]int{a.SourceRegion.Min.X, a.SourceRegion.Min.Y, a.SourceRegion.Max.X, a.SourceRegion.Max.Y},
			Path:        a.DestinationPath,
			URL:         "/sprite/" + a.Identifier + slicer.Ext,
		}
		if inline {
			buf := &bytes.Buffer{}
			if err := slicer.Encode(buf, slicer.Crop(st.img, a.SourceRegion)); err != nil {
				http.Error(w, "sprite could not be encoded", http.StatusInternalServerError)
				return
			}
			s.DataURL = dataurl.New(buf.Bytes(), "image/png").String()
		}
		c.Sprites = append(c.Sprites, s)
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&c); err != nil {
		glog.Errorf("web: encoding catalog: %v", err)
	}
}

// Sprite cuts the cell of the populated entry id out of the sheet.
func (h *Handler) Sprite(id string) (image.Image, error) {
	e, ok := h.slicer.Catalog.Lookup(id)
	if !ok {
		return nil, errors.Errorf("no sprite %q in catalog", id)
	}
	st := h.state()
	return slicer.Crop(st.img, st.geom.CellRect(e.Row, e.Column)), nil
}

// previewHandler paints the demo snake with sprites cut from the sheet.
func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.preview", r.URL.Path)
	defer tr.Finish()

	st := h.state()
	etag := st.etag("preview")
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	b := compositor.DemoBoard
	b.TileW, b.TileH = st.geom.CellWidth, st.geom.CellHeight
	body, apple := compositor.DemoSnake()
	img, err := compositor.CompositeSnake(h, b, body, &apple)
	if err != nil {
		tr.LazyPrintf("compositing: %v", err)
		tr.SetError()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	buf := &bytes.Buffer{}
	if err := slicer.Encode(buf, img); err != nil {
		tr.SetError()
		http.Error(w, "preview could not be encoded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sprite/{id}.png", h.spriteHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/catalog.json", h.catalogHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/preview.png", h.previewHandler).Methods(http.MethodGet, http.MethodHead)
}
