// Command slicesprites cuts the Greeny sprite sheet into individual PNG
// assets.
//
// With no flags it reads attached_assets/greeny-sprite-sheet.jpg (or the
// first greeny-sprite-sheet.jpg found by the paths package), writes the apple
// to assets/food/apple/ and every snake piece to assets/snakes/greeny/.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/greeny-assets/catalog"
	"badc0de.net/pkg/greeny-assets/compositor"
	"badc0de.net/pkg/greeny-assets/imageprint"
	"badc0de.net/pkg/greeny-assets/paths"
	"badc0de.net/pkg/greeny-assets/sheet"
	"badc0de.net/pkg/greeny-assets/slicer"
)

const sheetFileName = "greeny-sprite-sheet.jpg"

var (
	sheetPath string

	commonRoot      = flag.String("common_root", slicer.DefaultRoots.Common, "directory for snake piece sprites")
	specialRoot     = flag.String("special_root", slicer.DefaultRoots.Special, "directory for the special (collectible) sprite")
	catalogXML      = flag.String("catalog_xml", "", "path to a catalog XML file to use instead of the built-in Greeny catalog")
	dumpCatalog     = flag.Bool("dump_catalog", false, "print the active catalog as XML and exit")
	continueOnError = flag.Bool("continue_on_error", false, "keep writing remaining sprites after a failed write")

	preview     = flag.Bool("preview", false, "preview each written sprite on the terminal")
	previewMode = flag.String("preview_mode", "24bit", "preview mode: 24bit, 256, nocolor, iterm or rasterm")
	blanks      = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	demoSnake   = flag.Bool("preview_snake", false, "after slicing, paint a demo snake from the written sprites and preview it")
)

func loadCatalog() (*catalog.Catalog, error) {
	if *catalogXML == "" {
		return catalog.Greeny(), nil
	}
	f, err := os.Open(*catalogXML)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog xml")
	}
	defer f.Close()
	return catalog.ReadXML(f)
}

func previewer() (func(slicer.Asset), error) {
	if !*preview {
		return nil, nil
	}
	mode, err := imageprint.ParseMode(*previewMode)
	if err != nil {
		return nil, err
	}
	p := &imageprint.Printer{Mode: mode, Blanks: *blanks}
	return func(a slicer.Asset) {
		img, err := slicer.Load(a.DestinationPath)
		if err != nil {
			glog.Errorf("preview of %s: %v", a.DestinationPath, err)
			return
		}
		if err := p.Print(img, a.Identifier+slicer.Ext); err != nil {
			glog.Errorf("preview of %s: %v", a.DestinationPath, err)
		}
	}, nil
}

// previewSnake paints the demo snake from the files s wrote.
func previewSnake(s *slicer.Slicer, g sheet.Geometry) error {
	mode, err := imageprint.ParseMode(*previewMode)
	if err != nil {
		return err
	}
	src := compositor.SpriteSourceFunc(func(id string) (image.Image, error) {
		e, ok := s.Catalog.Lookup(id)
		if !ok {
			return nil, errors.Errorf("no sprite %q in catalog", id)
		}
		return slicer.Load(s.Destination(e))
	})
	b := compositor.DemoBoard
	b.TileW, b.TileH = g.CellWidth, g.CellHeight
	body, apple := compositor.DemoSnake()
	img, err := compositor.CompositeSnake(src, b, body, &apple)
	if err != nil {
		return err
	}
	p := &imageprint.Printer{Mode: mode, Blanks: *blanks}
	return p.Print(img, "snake.png")
}

func main() {
	paths.SetupFilePathFlag(sheetFileName, "sheet_path", &sheetPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	cat, err := loadCatalog()
	if err != nil {
		glog.Exitf("loading catalog: %v", err)
	}
	if *dumpCatalog {
		if err := cat.WriteXML(os.Stdout); err != nil {
			glog.Exitf("writing catalog: %v", err)
		}
		return
	}

	show, err := previewer()
	if err != nil {
		glog.Exitf("setting up preview: %v", err)
	}

	s := slicer.New(cat, slicer.Roots{Common: *commonRoot, Special: *specialRoot})
	s.ContinueOnError = *continueOnError
	s.Progress = func(a slicer.Asset) {
		fmt.Printf("Saved: %s - %s\n", a.DestinationPath, a.Description)
		if show != nil {
			show(a)
		}
	}

	img, err := slicer.Load(sheetPath)
	if err != nil {
		glog.Exitf("%v", err)
	}
	g := sheet.ComputeGeometry(img, cat.Columns, cat.Rows)
	fmt.Printf("Sprite sheet size: %dx%d\n", g.SheetWidth, g.SheetHeight)
	fmt.Printf("Cell size: %dx%d\n", g.CellWidth, g.CellHeight)

	assets, err := s.Extract(img, g)
	if err != nil {
		glog.Exitf("slicing %s: %v (%d sprite(s) written)", sheetPath, err, len(assets))
	}
	fmt.Printf("\nSprite slicing completed!\n")

	if *demoSnake {
		if err := previewSnake(s, g); err != nil {
			glog.Exitf("previewing snake: %v", err)
		}
	}
}
