// Package compositor paints a snake (and optionally the apple) onto a board
// image using sprites cut from the sheet.
//
// A snake is a list of tile positions, head first. Every position must be
// adjacent to the next one. The sprite for each segment is picked from the
// sides it connects to: the head and the tail by the direction the snake is
// moving, body pieces by the pair of neighbours.
package compositor

import (
	"image"
	"image/draw"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/greeny-assets/catalog"
)

// SpriteSource returns the image for a sprite identifier.
type SpriteSource interface {
	Sprite(id string) (image.Image, error)
}

// SpriteSourceFunc adapts an ordinary function to a SpriteSource.
type SpriteSourceFunc func(id string) (image.Image, error)

func (f SpriteSourceFunc) Sprite(id string) (image.Image, error) { return f(id) }

// Board is the area a snake is painted on, in tiles.
type Board struct {
	Width, Height int
	TileW, TileH  int
}

func (b Board) contains(p image.Point) bool {
	return p.In(image.Rect(0, 0, b.Width, b.Height))
}

func (b Board) tileRect(p image.Point) image.Rectangle {
	return image.Rect(p.X*b.TileW, p.Y*b.TileH, (p.X+1)*b.TileW, (p.Y+1)*b.TileH)
}

func compositeTile(img *image.RGBA, b Board, p image.Point, sprite image.Image) {
	sz := sprite.Bounds().Size()
	if sz.X != b.TileW || sz.Y != b.TileH {
		sprite = resize.Resize(uint(b.TileW), uint(b.TileH), sprite, resize.Bilinear)
	}
	draw.Draw(img, b.tileRect(p), sprite, sprite.Bounds().Min, draw.Over)
}

// CompositeSnake paints body onto a transparent board. If apple is not nil,
// the special sprite of the Greeny catalog is painted at that tile first.
func CompositeSnake(src SpriteSource, b Board, body []image.Point, apple *image.Point) (image.Image, error) {
	if b.Width <= 0 || b.Height <= 0 || b.TileW <= 0 || b.TileH <= 0 {
		return nil, errors.Errorf("invalid board %dx%d of %dx%d tiles", b.Width, b.Height, b.TileW, b.TileH)
	}
	ids, err := SpriteIDs(body)
	if err != nil {
		return nil, err
	}
	for _, p := range body {
		if !b.contains(p) {
			return nil, errors.Errorf("segment %v is off the %dx%d board", p, b.Width, b.Height)
		}
	}
	if apple != nil && !b.contains(*apple) {
		return nil, errors.Errorf("apple %v is off the %dx%d board", *apple, b.Width, b.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, b.Width*b.TileW, b.Height*b.TileH))

	if apple != nil {
		sprite, err := src.Sprite(catalog.SpecialApple)
		if err != nil {
			return nil, errors.Wrap(err, "getting apple sprite")
		}
		compositeTile(img, b, *apple, sprite)
	}

	// Paint from the tail so the head ends up on top.
	for i := len(body) - 1; i >= 0; i-- {
		sprite, err := src.Sprite(ids[i])
		if err != nil {
			return nil, errors.Wrapf(err, "getting sprite %q for segment %d", ids[i], i)
		}
		glog.V(2).Infof("compositor: %s at %v", ids[i], body[i])
		compositeTile(img, b, body[i], sprite)
	}
	return img, nil
}
