// Package slicer cuts the cells named by a catalog out of a sprite sheet and
// writes each one as a PNG file.
//
// Extraction is a single sequential pass. The special identifier of the
// catalog is written below Roots.Special, every other asset below
// Roots.Common, always as {identifier}.png. Existing files are overwritten,
// so running the same sheet and catalog twice produces identical output.
package slicer

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/greeny-assets/catalog"
	"badc0de.net/pkg/greeny-assets/sheet"
)

// Ext is the extension of every written asset.
const Ext = ".png"

// Roots are the two output directories assets are routed to.
type Roots struct {
	Common  string
	Special string
}

// DefaultRoots is where the Greeny game expects its sprites.
var DefaultRoots = Roots{
	Common:  "assets/snakes/greeny",
	Special: "assets/food/apple",
}

// Asset is one extracted cell. Size is the number of encoded bytes written
// to DestinationPath; it is zero for assets that were only planned.
type Asset struct {
	catalog.Entry
	SourceRegion    image.Rectangle
	DestinationPath string
	Size            int64
}

type Options struct {
	// ContinueOnError keeps extracting after a failed write. All failures
	// are then returned together as Failures. By default the first failure
	// ends the run.
	ContinueOnError bool

	// Progress, if set, is called after each asset is written.
	Progress func(Asset)
}

type Slicer struct {
	Catalog *catalog.Catalog
	Roots   Roots
	Options
}

// New returns a fail-fast slicer for the passed catalog and roots.
func New(c *catalog.Catalog, roots Roots) *Slicer {
	return &Slicer{Catalog: c, Roots: roots}
}

// Load decodes the sheet at path. Any format registered with the image
// package is accepted.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindSourceNotFound, Path: path, Err: err}
	}
	glog.V(1).Infof("slicer: loaded %s (%v)", path, img.Bounds())
	return img, nil
}

// Destination returns the path e is written to.
func (s *Slicer) Destination(e catalog.Entry) string {
	root := s.Roots.Common
	if s.Catalog.IsSpecial(e.Identifier) {
		root = s.Roots.Special
	}
	return filepath.Join(root, e.Identifier+Ext)
}

// Plan validates g and the catalog and computes the source region and
// destination of every populated entry. It does not touch the filesystem.
func (s *Slicer) Plan(g sheet.Geometry) ([]Asset, error) {
	if s.Catalog == nil {
		return nil, configError(errors.New("no catalog"))
	}
	if s.Roots.Common == "" || s.Roots.Special == "" {
		return nil, configError(errors.Errorf("both output roots must be set; got %+v", s.Roots))
	}
	if err := g.Validate(); err != nil {
		return nil, configError(err)
	}
	if err := s.Catalog.Validate(); err != nil {
		return nil, configError(err)
	}
	if g.Columns != s.Catalog.Columns || g.Rows != s.Catalog.Rows {
		return nil, configError(errors.Errorf("catalog is %dx%d but the geometry is %dx%d", s.Catalog.Columns, s.Catalog.Rows, g.Columns, g.Rows))
	}

	var assets []Asset
	for _, e := range s.Catalog.Populated() {
		assets = append(assets, Asset{
			Entry:           e,
			SourceRegion:    g.CellRect(e.Row, e.Column),
			DestinationPath: s.Destination(e),
		})
	}
	return assets, nil
}

// Extract crops, encodes and writes every asset planned for g out of img.
//
// The returned slice holds the assets that were written, even when an error
// is returned; files written before a failure stay on disk.
func (s *Slicer) Extract(img image.Image, g sheet.Geometry) ([]Asset, error) {
	planned, err := s.Plan(g)
	if err != nil {
		return nil, err
	}
	if size := img.Bounds().Size(); size.X != g.SheetWidth || size.Y != g.SheetHeight {
		return nil, configError(errors.Errorf("geometry is for a %dx%d sheet but the image is %dx%d", g.SheetWidth, g.SheetHeight, size.X, size.Y))
	}

	var written []Asset
	var failures Failures
	buf := &bytes.Buffer{}
	for _, a := range planned {
		buf.Reset()
		if err := Encode(buf, Crop(img, a.SourceRegion)); err != nil {
			err = &Error{Kind: KindIO, Path: a.DestinationPath, Err: errors.Wrapf(err, "encoding %s", a.Identifier)}
			if !s.ContinueOnError {
				return written, err
			}
			failures = append(failures, err)
			continue
		}
		if err := writeFile(a.DestinationPath, buf.Bytes()); err != nil {
			err = &Error{Kind: KindIO, Path: a.DestinationPath, Err: err}
			if !s.ContinueOnError {
				return written, err
			}
			glog.Errorf("slicer: %v", err)
			failures = append(failures, err)
			continue
		}

		a.Size = int64(buf.Len())
		written = append(written, a)
		glog.V(1).Infof("slicer: wrote %s from %v (%d bytes)", a.DestinationPath, a.SourceRegion, a.Size)
		if s.Progress != nil {
			s.Progress(a)
		}
	}

	if len(failures) > 0 {
		return written, failures
	}
	return written, nil
}

// Run loads the sheet at sourcePath, derives the geometry from the
// catalog's grid, and extracts all assets. Configuration problems are
// reported before any directory is created.
func Run(sourcePath string, s *Slicer) (sheet.Geometry, []Asset, error) {
	if s.Catalog == nil {
		return sheet.Geometry{}, nil, configError(errors.New("no catalog"))
	}
	img, err := Load(sourcePath)
	if err != nil {
		return sheet.Geometry{}, nil, err
	}
	g := sheet.ComputeGeometry(img, s.Catalog.Columns, s.Catalog.Rows)
	assets, err := s.Extract(img, g)
	return g, assets, err
}

// Crop copies region r of img into a new image of exactly r's size. r is
// relative to the top left corner of img.
func Crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r.Add(img.Bounds().Min))
}

// Encode writes img to w in the asset output format.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing asset")
	}
	return nil
}
