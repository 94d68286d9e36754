// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"bytes"
	"image"
	"io"

	"golang.org/x/text/encoding"
)

// requiredLayers, requiredLineTypes, etc. are the mandatory records a
// fresh Drawing pre-seeds (spec §4.6, "constructing a fresh Drawing").
var (
	requiredLayers      = []string{"0"}
	requiredLineTypes   = []string{"BYLAYER", "BYBLOCK", "CONTINUOUS"}
	requiredStyles      = []string{"STANDARD", "ANNOTATIVE"}
	requiredDimStyles   = []string{"STANDARD", "ANNOTATIVE"}
	requiredViewPorts   = []string{"*ACTIVE"}
	requiredBlockRecords = []string{"*MODEL_SPACE", "*PAPER_SPACE"}
	requiredAppIds      = []string{"ACAD", "ACADANNOTATIVE", "ACAD_NAV_VCDISPLAY", "ACAD_MLEADERVER"}
)

// Drawing is the aggregate root: every record the Format's document model
// can hold, plus the bookkeeping (next handle, anomalies) read/write
// needs (spec §3, "Drawing").
type Drawing struct {
	Header    *Header
	Classes   []*Class
	Tables    map[string][]*TableRecord
	Blocks    []*Block
	Thumbnail image.Image

	entities []*Entity
	objects  []*Object

	nextHandle Handle
	Anomalies  []string
}

// NewDrawing returns a Drawing normalized with every mandatory table
// entry the Format requires (spec §4.6).
func NewDrawing(version Version) *Drawing {
	d := &Drawing{
		Header:     NewHeader(version),
		Tables:     make(map[string][]*TableRecord),
		nextHandle: 1,
	}
	d.seedRequiredTables()
	return d
}

func (d *Drawing) seedRequiredTables() {
	for _, name := range requiredLayers {
		d.ensureTableRecord("LAYER", name, func() any { return &LayerData{Color: 7, IsPlottable: true, LineWeight: -1, LineType: "Continuous"} })
	}
	for _, name := range requiredLineTypes {
		d.ensureTableRecord("LTYPE", name, func() any { return &LineTypeData{} })
	}
	for _, name := range requiredStyles {
		d.ensureTableRecord("STYLE", name, func() any { return &StyleData{WidthFactor: 1} })
	}
	for _, name := range requiredDimStyles {
		d.ensureTableRecord("DIMSTYLE", name, func() any { return &DimStyleData{TextHeight: 0.18, ArrowSize: 0.18} })
	}
	for _, name := range requiredViewPorts {
		d.ensureTableRecord("VPORT", name, func() any { return &ViewPortData{Height: 1} })
	}
	for _, name := range requiredBlockRecords {
		d.ensureTableRecord("BLOCK_RECORD", name, func() any { return &BlockRecordData{} })
	}
	for _, name := range requiredAppIds {
		d.ensureTableRecord("APPID", name, func() any { return &AppIdData{} })
	}
}

// ensureTableRecord adds a named record to table if no record of that
// name already exists there, minting a fresh handle for it.
func (d *Drawing) ensureTableRecord(table, name string, newData func() any) {
	for _, rec := range d.Tables[table] {
		if rec.Name == name {
			return
		}
	}
	rec := &TableRecord{Type: table, Name: name, Data: newData()}
	rec.Common.Handle = d.assignHandle()
	d.Tables[table] = append(d.Tables[table], rec)
}

// assignHandle hands out the next monotone handle value.
func (d *Drawing) assignHandle() Handle {
	h := d.nextHandle
	d.nextHandle++
	return h
}

// AddEntity appends e to the drawing's top-level entity list, enforcing
// the lazy referential invariants of spec §4.6 ("Adding an Entity
// ensures..."): its layer and line type exist, resolving any auto-assign
// handle sentinel on e or its children.
func (d *Drawing) AddEntity(e *Entity) {
	d.normalizeEntity(e)
	d.entities = append(d.entities, e)
}

// AddObject appends o to the drawing's object list, assigning a handle if
// needed.
func (d *Drawing) AddObject(o *Object) {
	if !o.Common.Handle.IsSet() || o.Common.Handle.IsAutoAssign() {
		o.Common.Handle = d.assignHandle()
	}
	d.objects = append(d.objects, o)
}

// AddBlock appends b to the drawing's block list, ensuring its layer and
// block record exist and that every child entity has a handle (spec
// §4.6, "Adding a Block ensures...").
func (d *Drawing) AddBlock(b *Block) {
	if !b.Common.Handle.IsSet() || b.Common.Handle.IsAutoAssign() {
		b.Common.Handle = d.assignHandle()
	}
	d.ensureTableRecord("LAYER", b.Layer, func() any { return &LayerData{Color: 7, IsPlottable: true, LineWeight: -1, LineType: "Continuous"} })
	d.ensureTableRecord("BLOCK_RECORD", b.Name, func() any { return &BlockRecordData{} })
	for _, e := range b.Entities {
		d.normalizeEntity(e)
	}
	d.Blocks = append(d.Blocks, b)
}

func (d *Drawing) normalizeEntity(e *Entity) {
	if !e.Common.Handle.IsSet() || e.Common.Handle.IsAutoAssign() {
		e.Common.Handle = d.assignHandle()
	}
	if e.Extra == nil {
		e.Extra = entityExtra(e.Data)
	}
	if e.Extra != nil {
		d.ensureTableRecord("LAYER", e.Extra.Layer, func() any { return &LayerData{Color: 7, IsPlottable: true, LineWeight: -1, LineType: "Continuous"} })
		if e.Extra.LineTypeName != "" && e.Extra.LineTypeName != "BYLAYER" && e.Extra.LineTypeName != "BYBLOCK" {
			d.ensureTableRecord("LTYPE", e.Extra.LineTypeName, func() any { return &LineTypeData{} })
		}
	}
	for _, c := range e.Children {
		if !c.Common.Handle.IsSet() || c.Common.Handle.IsAutoAssign() {
			c.Common.Handle = d.assignHandle()
		}
	}
}

// Entities returns every entity in the drawing: top-level entities
// followed by each block's owned entities, each followed in turn by its
// coalesced children (VERTEX, ATTRIB, SEQEND). This flattening is a
// convenience the in-memory model doesn't otherwise expose a single walk
// over.
func (d *Drawing) Entities() []*Entity {
	var out []*Entity
	appendWithChildren := func(list []*Entity) {
		for _, e := range list {
			out = append(out, e)
			out = append(out, e.Children...)
		}
	}
	appendWithChildren(d.entities)
	for _, b := range d.Blocks {
		appendWithChildren(b.Entities)
	}
	return out
}

// Objects returns every record in the OBJECTS section, in file order.
func (d *Drawing) Objects() []*Object {
	return append([]*Object{}, d.objects...)
}

// Normalize re-applies the lazy invariants of spec §4.6 across the whole
// drawing (handle assignment, entity layer and line-type records, required
// tables, sorted table collections) and is idempotent; a block's layer and
// block record are ensured only by AddBlock, not here; useful after bulk programmatic edits or before
// writing a drawing that was never routed through AddEntity/AddObject/
// AddBlock.
func (d *Drawing) Normalize() {
	d.seedRequiredTables()
	for _, e := range d.entities {
		d.normalizeEntity(e)
	}
	for _, b := range d.Blocks {
		if !b.Common.Handle.IsSet() {
			b.Common.Handle = d.assignHandle()
		}
		for _, e := range b.Entities {
			d.normalizeEntity(e)
		}
	}
	for _, o := range d.objects {
		if !o.Common.Handle.IsSet() {
			o.Common.Handle = d.assignHandle()
		}
	}
	sortTables(d.Tables)
}

func sortTables(tables map[string][]*TableRecord) {
	for _, recs := range tables {
		for i := 1; i < len(recs); i++ {
			for j := i; j > 0 && recs[j-1].Name > recs[j].Name; j-- {
				recs[j-1], recs[j] = recs[j], recs[j-1]
			}
		}
	}
}

// Load reads a Drawing from r, auto-detecting the ASCII or binary wire
// form from its first bytes, decoding pre-R2007 text with DefaultEncoding.
func Load(r io.Reader) (*Drawing, error) {
	return LoadWithCodePage(r, nil)
}

// LoadWithCodePage is Load with an explicit override for the
// byte-to-character encoding used to decode pre-R2007 string pairs
// (ignored at R2007+, where the wire form is always UTF-8). A nil
// codePage keeps DefaultEncoding.
func LoadWithCodePage(r io.Reader, codePage encoding.Encoding) (*Drawing, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(len(BinarySentinel))
	isBinary := err == nil && bytes.Equal(peek, BinarySentinel)

	var pr PairReader
	if isBinary {
		pr, err = NewBinaryReader(br)
		if err != nil {
			return nil, err
		}
	} else {
		pr = NewASCIIReader(br)
	}
	pushback := NewPushbackReader(pr)
	pushback.SetVersion(DefaultVersion)
	if codePage != nil {
		pushback.SetCodePage(codePage)
	}

	d := &Drawing{
		Header: NewHeader(DefaultVersion),
		Tables: make(map[string][]*TableRecord),
	}
	if err := readSections(pushback, d); err != nil {
		return nil, err
	}
	d.recomputeNextHandle()
	return d, nil
}

func (d *Drawing) recomputeNextHandle() {
	max := d.Header.HandleSeed
	walk := func(h Handle) {
		if h.IsSet() && !h.IsAutoAssign() && h > max {
			max = h
		}
	}
	for _, recs := range d.Tables {
		for _, r := range recs {
			walk(r.Common.Handle)
		}
	}
	for _, e := range d.Entities() {
		walk(e.Common.Handle)
	}
	for _, o := range d.objects {
		walk(o.Common.Handle)
	}
	for _, b := range d.Blocks {
		walk(b.Common.Handle)
	}
	d.nextHandle = max + 1
}

// Save writes the drawing in its ASCII wire form at its Header's version.
// d is normalized first so callers who built or edited it without going
// through AddEntity/AddObject/AddBlock still get consistent handles and
// required tables on the wire (spec §4.6, §9 "Normalize").
func Save(w io.Writer, d *Drawing) error {
	d.Normalize()
	pw := NewASCIIWriter(w, d.Header.Version)
	return writeDrawing(pw, d)
}

// SaveBinary writes the drawing in its binary wire form, normalizing d
// first for the same reason Save does.
func SaveBinary(w io.Writer, d *Drawing) error {
	d.Normalize()
	pw := NewBinaryWriter(w, d.Header.Version)
	if err := pw.WritePrelude(); err != nil {
		return err
	}
	return writeDrawing(pw, d)
}

func writeDrawing(pw PairWriter, d *Drawing) error {
	version := d.Header.Version
	if err := encodeHeader(pw, version, d.Header); err != nil {
		return err
	}
	if len(d.Classes) > 0 {
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
			return err
		}
		if err := pw.Write(CodePair{Code: 2, Value: StringValue("CLASSES")}); err != nil {
			return err
		}
		for _, c := range d.Classes {
			if err := encodeClass(pw, version, c); err != nil {
				return err
			}
		}
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")}); err != nil {
			return err
		}
	}

	if err := writeTablesSection(pw, version, d.Tables); err != nil {
		return err
	}

	if len(d.Blocks) > 0 {
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
			return err
		}
		if err := pw.Write(CodePair{Code: 2, Value: StringValue("BLOCKS")}); err != nil {
			return err
		}
		for _, b := range d.Blocks {
			if err := encodeBlockHeader(pw, version, b); err != nil {
				return err
			}
			for _, e := range b.Entities {
				if err := encodeEntity(pw, version, e); err != nil {
					return err
				}
				for _, c := range e.Children {
					if err := encodeEntity(pw, version, c); err != nil {
						return err
					}
				}
			}
			if err := encodeBlockEnd(pw, version, b); err != nil {
				return err
			}
		}
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")}); err != nil {
			return err
		}
	}

	if err := pw.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
		return err
	}
	if err := pw.Write(CodePair{Code: 2, Value: StringValue("ENTITIES")}); err != nil {
		return err
	}
	for _, e := range d.entities {
		if err := encodeEntity(pw, version, e); err != nil {
			return err
		}
		for _, c := range e.Children {
			if err := encodeEntity(pw, version, c); err != nil {
				return err
			}
		}
	}
	if err := pw.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")}); err != nil {
		return err
	}

	if version.AtLeast(R13) && len(d.objects) > 0 {
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
			return err
		}
		if err := pw.Write(CodePair{Code: 2, Value: StringValue("OBJECTS")}); err != nil {
			return err
		}
		for _, o := range d.objects {
			if err := encodeObject(pw, version, o); err != nil {
				return err
			}
		}
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")}); err != nil {
			return err
		}
	}

	if version.AtLeast(R2000) && d.Thumbnail != nil {
		if err := writeThumbnail(pw, d.Thumbnail); err != nil {
			return err
		}
	}

	if err := pw.Write(CodePair{Code: 0, Value: StringValue("EOF")}); err != nil {
		return err
	}
	return pw.Flush()
}

func writeTablesSection(pw PairWriter, version Version, tables map[string][]*TableRecord) error {
	if err := pw.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
		return err
	}
	if err := pw.Write(CodePair{Code: 2, Value: StringValue("TABLES")}); err != nil {
		return err
	}
	order := []string{"APPID", "BLOCK_RECORD", "DIMSTYLE", "LAYER", "LTYPE", "STYLE", "UCS", "VIEW", "VPORT"}
	for _, tableName := range order {
		recs := tables[tableName]
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("TABLE")}); err != nil {
			return err
		}
		if err := pw.Write(CodePair{Code: 2, Value: StringValue(tableName)}); err != nil {
			return err
		}
		if err := pw.Write(CodePair{Code: 70, Value: ShortValue(int16(len(recs)))}); err != nil {
			return err
		}
		for _, r := range recs {
			if err := encodeTableRecord(pw, version, r); err != nil {
				return err
			}
		}
		if err := pw.Write(CodePair{Code: 0, Value: StringValue("ENDTAB")}); err != nil {
			return err
		}
	}
	return pw.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")})
}
