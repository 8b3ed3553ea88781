package web

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// NoCache is the Cache-Control policy that keeps browsers from holding on
// to assets while they are being edited.
const NoCache = "no-store, no-cache, must-revalidate"

// CacheControl sets the passed Cache-Control header on every response. An
// empty policy leaves responses untouched.
func CacheControl(policy string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if policy == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", policy)
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterStatic serves the files below root for every path not matched by
// an earlier route.
func RegisterStatic(r *mux.Router, root string) {
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(root)))
}

// Listen listens on host:port. If the port is taken it tries the following
// ones, up to attempts ports in total.
func Listen(host string, port, attempts int) (net.Listener, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port+i))
		var l net.Listener
		if l, err = net.Listen("tcp", addr); err == nil {
			return l, nil
		}
		glog.Warningf("web: cannot listen on %s: %v", addr, err)
		if port == 0 {
			break
		}
	}
	return nil, errors.Wrapf(err, "no free port in %d..%d", port, port+attempts-1)
}

func statModTime(path string) (time.Time, error) {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return st.ModTime(), nil
}
