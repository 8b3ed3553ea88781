// Package catalog maps cells of a sprite sheet grid to the named assets cut
// out of them.
//
// A catalog is sparse: cells may be marked empty explicitly or simply left
// out, which means the same thing. The catalog is the only place that decides
// which cells get extracted and what they are called.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// Coord addresses one cell of the grid. Both fields are 0-indexed.
type Coord struct {
	Row, Column int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Entry describes one cell. An entry with an empty Identifier is an
// intentionally empty cell.
type Entry struct {
	Coord
	Identifier  string
	Description string
}

// IsEmpty reports whether the cell produces no asset.
func (e Entry) IsEmpty() bool {
	return e.Identifier == ""
}

// Catalog is a Columns x Rows grid of entries. One populated identifier,
// Special, is routed apart from all others when assets are written.
type Catalog struct {
	Columns, Rows int
	Special       string

	entries map[Coord]Entry
	// dups records coordinates that were defined more than once so Validate
	// can report them; later definitions win in the map.
	dups []Coord
}

// New creates a catalog for a columns x rows grid with the passed entries.
// Cells not mentioned are empty.
func New(columns, rows int, special string, entries ...Entry) *Catalog {
	c := &Catalog{
		Columns: columns,
		Rows:    rows,
		Special: special,
		entries: make(map[Coord]Entry, len(entries)),
	}
	for _, e := range entries {
		c.add(e)
	}
	return c
}

func (c *Catalog) add(e Entry) {
	if _, ok := c.entries[e.Coord]; ok {
		c.dups = append(c.dups, e.Coord)
	}
	c.entries[e.Coord] = e
}

// Entry returns the entry for (row, column). Cells without an entry come back
// as an empty entry at that coordinate; ok is true only for populated cells.
func (c *Catalog) Entry(row, column int) (e Entry, ok bool) {
	coord := Coord{Row: row, Column: column}
	e, found := c.entries[coord]
	if !found {
		return Entry{Coord: coord}, false
	}
	return e, !e.IsEmpty()
}

// Entries returns one entry for every cell of the grid in row-major order,
// filling in empty entries for cells that were not defined.
func (c *Catalog) Entries() []Entry {
	if c.Columns <= 0 || c.Rows <= 0 {
		return nil
	}
	all := make([]Entry, 0, c.Columns*c.Rows)
	for row := range iter.N(c.Rows) {
		for column := range iter.N(c.Columns) {
			e, _ := c.Entry(row, column)
			all = append(all, e)
		}
	}
	return all
}

// Populated returns the non-empty entries in row-major order.
func (c *Catalog) Populated() []Entry {
	var populated []Entry
	for _, e := range c.entries {
		if !e.IsEmpty() {
			populated = append(populated, e)
		}
	}
	sort.Slice(populated, func(i, j int) bool {
		if populated[i].Row != populated[j].Row {
			return populated[i].Row < populated[j].Row
		}
		return populated[i].Column < populated[j].Column
	})
	return populated
}

// Lookup finds the populated entry with the passed identifier.
func (c *Catalog) Lookup(identifier string) (Entry, bool) {
	if identifier == "" {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if e.Identifier == identifier {
			return e, true
		}
	}
	return Entry{}, false
}

// IsSpecial reports whether identifier is the catalog's special asset.
func (c *Catalog) IsSpecial(identifier string) bool {
	return identifier != "" && identifier == c.Special
}

// Validate checks that the catalog can drive an extraction: every entry lies
// inside the grid, no cell is defined twice, identifiers are unique plain
// file names, and the special identifier is among the populated entries.
func (c *Catalog) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return errors.Errorf("catalog grid must have positive dimensions; got %dx%d", c.Columns, c.Rows)
	}
	if len(c.dups) > 0 {
		return errors.Errorf("cell %v defined more than once", c.dups[0])
	}

	seen := make(map[string]Coord)
	for _, e := range c.Entries() {
		if e.IsEmpty() {
			continue
		}
		if err := validIdentifier(e.Identifier); err != nil {
			return errors.Wrapf(err, "cell %v", e.Coord)
		}
		if prev, ok := seen[e.Identifier]; ok {
			return errors.Errorf("identifier %q used by both %v and %v", e.Identifier, prev, e.Coord)
		}
		seen[e.Identifier] = e.Coord
	}
	for coord := range c.entries {
		if coord.Row < 0 || coord.Row >= c.Rows || coord.Column < 0 || coord.Column >= c.Columns {
			return errors.Errorf("cell %v is outside the %dx%d grid", coord, c.Columns, c.Rows)
		}
	}

	if c.Special == "" {
		return errors.New("no special identifier set")
	}
	if _, ok := seen[c.Special]; !ok {
		return errors.Errorf("special identifier %q is not in the catalog", c.Special)
	}
	return nil
}

func validIdentifier(id string) error {
	switch {
	case strings.ContainsAny(id, `/\`):
		return errors.Errorf("identifier %q contains a path separator", id)
	case strings.Trim(id, ".") == "":
		return errors.Errorf("identifier %q is not a file name", id)
	case strings.TrimSpace(id) != id:
		return errors.Errorf("identifier %q has surrounding whitespace", id)
	}
	return nil
}
