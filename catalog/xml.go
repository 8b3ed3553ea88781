package catalog

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// xmlCatalog is the on-disk form of a catalog:
//
//	<catalog columns="5" rows="4" special="apple">
//		<cell row="0" column="3" id="head_up" description="Head facing up"/>
//		<cell row="1" column="1"/>
//	</catalog>
//
// A cell without an id is empty.
type xmlCatalog struct {
	XMLName xml.Name  `xml:"catalog"`
	Columns int       `xml:"columns,attr"`
	Rows    int       `xml:"rows,attr"`
	Special string    `xml:"special,attr"`
	Cells   []xmlCell `xml:"cell"`
}

type xmlCell struct {
	Row         int    `xml:"row,attr"`
	Column      int    `xml:"column,attr"`
	ID          string `xml:"id,attr,omitempty"`
	Description string `xml:"description,attr,omitempty"`
}

// ReadXML decodes a catalog from r and validates it.
func ReadXML(r io.Reader) (*Catalog, error) {
	dec := xml.NewDecoder(r)
	var x xmlCatalog
	if err := dec.Decode(&x); err != nil {
		return nil, errors.Wrap(err, "decoding catalog xml")
	}

	c := New(x.Columns, x.Rows, x.Special)
	for _, cell := range x.Cells {
		c.add(Entry{
			Coord:       Coord{Row: cell.Row, Column: cell.Column},
			Identifier:  cell.ID,
			Description: cell.Description,
		})
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog xml")
	}
	return c, nil
}

// WriteXML encodes every cell of the catalog, empty ones included, to w.
func (c *Catalog) WriteXML(w io.Writer) error {
	x := xmlCatalog{
		Columns: c.Columns,
		Rows:    c.Rows,
		Special: c.Special,
	}
	for _, e := range c.Entries() {
		x.Cells = append(x.Cells, xmlCell{
			Row:         e.Row,
			Column:      e.Column,
			ID:          e.Identifier,
			Description: e.Description,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(&x); err != nil {
		return errors.Wrap(err, "encoding catalog xml")
	}
	_, err := io.WriteString(w, "\n")
	return err
}
