package web

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"badc0de.net/pkg/greeny-assets/catalog"
	"badc0de.net/pkg/greeny-assets/slicer"
	"badc0de.net/pkg/greeny-assets/ttesting"
)

func testSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	return img
}

func testRouter(t *testing.T, src image.Image) *mux.Router {
	t.Helper()
	h, err := NewHandlerFromImage(src, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), catalog.Greeny(), slicer.DefaultRoots)
	if err != nil {
		t.Fatalf("NewHandlerFromImage: %v", err)
	}
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestSpriteHandler(t *testing.T) {
	src := testSheet()
	r := testRouter(t, src)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sprite/head_up.png", nil))

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", rec.Header().Get("Content-Type"), "image/png")
	ttesting.AssertEqualString(t, "last modified", rec.Header().Get("Last-Modified"), "Tue, 02 Jan 2024 03:04:05 GMT")

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	ttesting.AssertSamePixels(t, "pixels", img, src, image.Rect(60, 0, 80, 20))

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag")
	}
	req := httptest.NewRequest(http.MethodGet, "/sprite/head_up.png", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	ttesting.AssertEqualInt(t, "conditional status", rec.Code, http.StatusNotModified)
}

func TestSpriteHandlerUnknown(t *testing.T) {
	r := testRouter(t, testSheet())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sprite/head_sideways.png", nil))
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusNotFound)
}

func TestPreviewHandler(t *testing.T) {
	src := testSheet()
	r := testRouter(t, src)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.png", nil))
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	ttesting.AssertEqualString(t, "bounds", img.Bounds().String(), "(0,0)-(120,100)")

	for _, tc := range []struct {
		name      string
		got, want image.Point
	}{
		{"head", image.Pt(85, 45), image.Pt(65, 5)},
		{"apple", image.Pt(80, 0), image.Pt(0, 60)},
		{"tail", image.Pt(39, 79), image.Pt(79, 59)},
	} {
		got := color.NRGBAModel.Convert(img.At(tc.got.X, tc.got.Y))
		want := src.NRGBAAt(tc.want.X, tc.want.Y)
		if got != want {
			t.Errorf("%s pixel %v = %v; want %v", tc.name, tc.got, got, want)
		}
	}
}

func TestHandlerSprite(t *testing.T) {
	h, err := NewHandlerFromImage(testSheet(), time.Time{}, catalog.Greeny(), slicer.DefaultRoots)
	if err != nil {
		t.Fatal(err)
	}
	img, err := h.Sprite("apple")
	if err != nil {
		t.Fatalf("Sprite(apple): %v", err)
	}
	ttesting.AssertEqualString(t, "bounds", img.Bounds().Size().String(), "(20,20)")
	if _, err := h.Sprite("pear"); err == nil {
		t.Errorf("Sprite(pear) succeeded")
	}
}

func TestCatalogHandler(t *testing.T) {
	r := testRouter(t, testSheet())

	for _, inline := range []bool{false, true} {
		url := "/catalog.json"
		if inline {
			url += "?inline=1"
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		ttesting.AssertEqualInt(t, url+" status", rec.Code, http.StatusOK)

		var c catalogJSON
		if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
		ttesting.AssertEqualInt(t, url+" sprites", len(c.Sprites), 15)
		ttesting.AssertEqualInt(t, url+" cell width", c.Sheet.CellWidth, 20)
		ttesting.AssertEqualString(t, url+" special", c.Special, "apple")

		for _, s := range c.Sprites {
			if s.ID != "apple" {
				continue
			}
			ttesting.AssertEqualString(t, url+" apple path", s.Path, filepath.Join("assets/food/apple", "apple.png"))
			ttesting.AssertEqualInt(t, url+" apple top", s.Region[1], 60)
			ttesting.AssertEqualBool(t, url+" apple data url", strings.HasPrefix(s.DataURL, "data:image/png;base64,"), inline)
		}
	}
}

func TestNewHandlerMissingSheet(t *testing.T) {
	_, err := NewHandler(filepath.Join(t.TempDir(), "missing.jpg"), catalog.Greeny(), slicer.DefaultRoots)
	if !slicer.IsSourceNotFound(err) {
		t.Errorf("got %v; want a source not found error", err)
	}
}

func TestNewHandlerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, testSheet())
	f.Close()

	if _, err := NewHandler(path, catalog.Greeny(), slicer.DefaultRoots); err != nil {
		t.Errorf("NewHandler: %v", err)
	}
}

func TestNewHandlerSheetTooSmall(t *testing.T) {
	_, err := NewHandlerFromImage(image.NewNRGBA(image.Rect(0, 0, 3, 3)), time.Time{}, catalog.Greeny(), slicer.DefaultRoots)
	if !slicer.IsConfiguration(err) {
		t.Errorf("got %v; want a configuration error", err)
	}
}

func TestCacheControlAndStatic(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hello.txt"), []byte("greeny"), 0644); err != nil {
		t.Fatal(err)
	}

	r := mux.NewRouter()
	r.Use(CacheControl(NoCache))
	RegisterStatic(r, root)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello.txt", nil))
	ttesting.AssertEqualString(t, "cache control", rec.Header().Get("Cache-Control"), NoCache)
	ttesting.AssertEqualBool(t, "body", strings.Contains(rec.Body.String(), "greeny"), true)

	r = mux.NewRouter()
	r.Use(CacheControl(""))
	RegisterStatic(r, root)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello.txt", nil))
	ttesting.AssertEqualString(t, "no policy", rec.Header().Get("Cache-Control"), "")
}

func TestListen(t *testing.T) {
	l, err := Listen("127.0.0.1", 0, 1)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	if _, err := Listen("127.0.0.1", port, 1); err == nil {
		t.Errorf("listening twice on port %d succeeded", port)
	}
}
