// Command devserve serves the game directory for local development.
//
// It replaces the assorted one-off static servers: the listen address, port,
// port retry and Cache-Control policy are flags. With -sheet it also serves
// sprites cut live from the sprite sheet under /sprite/, the catalog under
// /catalog.json and a demo snake painted from those sprites at /preview.png,
// so catalog edits can be checked without re-slicing. Browsers connected to
// the /livereload websocket are told when the sheet or any -watch file
// changes; the sheet itself is re-cut when that happens.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/greeny-assets/catalog"
	"badc0de.net/pkg/greeny-assets/slicer"
	"badc0de.net/pkg/greeny-assets/web"
)

var (
	listenHost   = flag.String("listen_host", "0.0.0.0", "address to bind to")
	port         = flag.Int("port", 5000, "port to listen on")
	portAttempts = flag.Int("port_attempts", 10, "how many consecutive ports to try if the port is taken")
	root         = flag.String("root", ".", "directory to serve")
	cacheControl = flag.String("cache_control", web.NoCache, "Cache-Control header for every response; empty to omit")
	sheetPath    = flag.String("sheet", "", "sprite sheet to serve live sprites from; empty to disable")
	catalogXML   = flag.String("catalog_xml", "", "catalog XML for -sheet; defaults to the built-in Greeny catalog")
	debug        = flag.Bool("debug", false, "serve request traces under /debug/requests")
	quiet        = flag.Bool("quiet", false, "do not print the banner or access log")
	watch        = flag.String("watch", "", "comma separated files whose changes are pushed to browsers connected to /livereload; -sheet is always watched")
	pollInterval = flag.Duration("poll_interval", time.Second, "how often watched files are checked")
)

func loadCatalog() (*catalog.Catalog, error) {
	if *catalogXML == "" {
		return catalog.Greeny(), nil
	}
	f, err := os.Open(*catalogXML)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.ReadXML(f)
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	r := mux.NewRouter()
	r.Use(web.CacheControl(*cacheControl))

	if *debug {
		trace.AuthRequest = func(*http.Request) (bool, bool) { return true, true }
		r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	var watched []string
	if *watch != "" {
		watched = strings.Split(*watch, ",")
	}

	var sprites *web.Handler
	if *sheetPath != "" {
		cat, err := loadCatalog()
		if err != nil {
			glog.Exitf("loading catalog: %v", err)
		}
		sprites, err = web.NewHandler(*sheetPath, cat, slicer.DefaultRoots)
		if err != nil {
			glog.Exitf("serving %s: %v", *sheetPath, err)
		}
		sprites.RegisterRoutes(r)
		watched = append(watched, *sheetPath)
		glog.Infof("serving live sprites from %s", *sheetPath)
	}

	if len(watched) > 0 {
		rl := web.NewReloader(*pollInterval, watched...)
		rl.OnChange = func(path string) {
			if sprites != nil && path == *sheetPath {
				if err := sprites.Reload(); err != nil {
					glog.Errorf("reloading %s: %v", path, err)
				}
			}
		}
		r.Handle("/livereload", rl)
		go rl.Run(context.Background())
	}

	web.RegisterStatic(r, *root)

	l, err := web.Listen(*listenHost, *port, *portAttempts)
	if err != nil {
		glog.Exitf("%v", err)
	}

	var h http.Handler = r
	if !*quiet {
		figure.NewFigure("greeny", "", true).Print()
		h = handlers.LoggingHandler(os.Stderr, h)
	}
	h = handlers.CompressHandler(h)

	glog.Infof("Serving %s at http://%s", *root, l.Addr())
	glog.Exit(http.Serve(l, h))
}
