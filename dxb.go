// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// dxbSentinel is the fixed magic string every DXB stream opens with,
// followed by 0x1A 0x00 (spec §4.8, "DXB").
const dxbSentinel = "AutoCAD DXB 1.0\r\n"

// dxbItemTag identifies one item in a DXB stream. No published byte
// table for these tags was available to ground them on, so the values
// are this codec's own numbering; dxbEOF is pinned to 0 so it round-trips
// through the same encode/decode switch as every other item even though
// the writer emits it as a bare zero byte rather than a full item write.
type dxbItemTag byte

const (
	dxbEOF dxbItemTag = iota
	dxbLine
	dxbPoint
	dxbCircle
	dxbArc
	dxbTrace
	dxbSolid
	dxbFace
	dxbSeqend
	dxbVertex
	dxbPolyline
	dxbLineExtension
	dxbLine3D
	dxbLineExtension3D
	dxbTraceExtension
	dxbNewColor
	dxbNewLayer
	dxbScaleFactor
	dxbBlockBase
	dxbBulge
	dxbNumberMode
	dxbWidth
)

// dxbReader holds the running state a DXB stream threads through its
// item loop: the active layer/color stamped onto every entity read from
// that point on, the coordinate scale factor, and whether coordinates
// are packed as scaled 16-bit integers or raw floats (spec §4.8).
type dxbReader struct {
	r             *bufio.Reader
	isIntegerMode bool
	layerName     string
	scaleFactor   float64
	currentColor  int16
	lastLinePoint Point
	lastTraceP3   Point
	lastTraceP4   Point
}

// LoadDXB reads a compact binary DXB stream into a Drawing. Unlike the
// ASCII/binary form, DXB carries no header or tables section of its own:
// a BlockBase item (legal only before the first entity item) wraps
// everything that follows into a single block; otherwise every
// item becomes a top-level entity (spec §4.8).
func LoadDXB(r io.Reader) (*Drawing, error) {
	dr := &dxbReader{
		r:             bufio.NewReader(r),
		isIntegerMode: true,
		layerName:     "0",
		scaleFactor:   1.0,
		currentColor:  256,
	}
	return dr.load()
}

func (r *dxbReader) load() (*Drawing, error) {
	sentinel := make([]byte, len(dxbSentinel))
	if _, err := io.ReadFull(r.r, sentinel); err != nil {
		return nil, ErrInvalidDxbSentinel
	}
	if string(sentinel) != dxbSentinel {
		return nil, ErrInvalidDxbSentinel
	}
	if err := r.expectByte(0x1A); err != nil {
		return nil, err
	}
	if err := r.expectByte(0x00); err != nil {
		return nil, err
	}

	var blockBase *Point
	var entities []*Entity

readLoop:
	for {
		tagByte, err := r.r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch dxbItemTag(tagByte) {
		case dxbEOF:
			break readLoop

		case dxbArc:
			e, err := r.readArc()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbCircle:
			e, err := r.readCircle()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbFace:
			e, err := r.readFace()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbLine:
			e, err := r.readLine(true)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbLine3D:
			e, err := r.readLine(true)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbLineExtension:
			e, err := r.readLineExtension(false)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbLineExtension3D:
			e, err := r.readLineExtension(true)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbPoint:
			e, err := r.readPoint()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbPolyline:
			e, err := r.readPolyline()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbSeqend:
			entities = append(entities, r.wrapEntity("SEQEND", &SeqEndData{EntityCommonExtra: DefaultEntityCommonExtra()}))
		case dxbSolid:
			e, err := r.readSolid()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbTrace:
			e, err := r.readTrace()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbTraceExtension:
			e, err := r.readTraceExtension()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		case dxbVertex:
			e, err := r.readVertex()
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)

		case dxbNewColor:
			v, err := r.readW()
			if err != nil {
				return nil, err
			}
			r.currentColor = int16(v)
		case dxbNewLayer:
			name, err := r.readNullTerminatedString()
			if err != nil {
				return nil, err
			}
			r.layerName = name
		case dxbScaleFactor:
			f, err := r.readF()
			if err != nil {
				return nil, err
			}
			r.scaleFactor = f

		case dxbBlockBase:
			x, err := r.readN()
			if err != nil {
				return nil, err
			}
			y, err := r.readN()
			if err != nil {
				return nil, err
			}
			if blockBase != nil || len(entities) != 0 {
				return nil, ErrBlockBaseAfterEntities
			}
			p := Point{X: x, Y: y}
			blockBase = &p
		case dxbBulge:
			v, err := r.readU()
			if err != nil {
				return nil, err
			}
			vtx, ok := lastVertex(entities)
			if !ok {
				return nil, &InvalidBinaryFileError{Reason: "Bulge item does not follow a Vertex"}
			}
			vtx.Bulge = v
		case dxbNumberMode:
			v, err := r.readW()
			if err != nil {
				return nil, err
			}
			r.isIntegerMode = v == 0
		case dxbWidth:
			sw, err := r.readN()
			if err != nil {
				return nil, err
			}
			ew, err := r.readN()
			if err != nil {
				return nil, err
			}
			vtx, ok := lastVertex(entities)
			if !ok {
				return nil, &InvalidBinaryFileError{Reason: "Width item does not follow a Vertex"}
			}
			vtx.StartWidth = sw
			vtx.EndWidth = ew

		default:
			return nil, ErrUnknownDxbItemTag
		}
	}

	d := NewDrawing(DefaultVersion)
	coalesced := coalesceEntities(entities, &d.Anomalies)
	if blockBase != nil {
		d.AddBlock(&Block{Name: "*DXB_BLOCK", Layer: "0", BasePoint: *blockBase, Entities: coalesced})
	} else {
		for _, e := range coalesced {
			d.AddEntity(e)
		}
	}
	return d, nil
}

// lastVertex returns the most recently appended entity if (and only if)
// it is a VERTEX, for the Bulge/Width items that amend the entity just
// before them (spec §4.8).
func lastVertex(entities []*Entity) (*VertexData, bool) {
	if len(entities) == 0 {
		return nil, false
	}
	v, ok := entities[len(entities)-1].Data.(*VertexData)
	return v, ok
}

func (r *dxbReader) wrapEntity(typeName string, data any) *Entity {
	extra := entityExtra(data)
	if extra != nil {
		extra.Color = r.currentColor
		extra.Layer = r.layerName
	}
	return &Entity{Type: typeName, Data: data, Extra: extra}
}

func (r *dxbReader) readArc() (*Entity, error) {
	cx, err := r.readN()
	if err != nil {
		return nil, err
	}
	cy, err := r.readN()
	if err != nil {
		return nil, err
	}
	radius, err := r.readN()
	if err != nil {
		return nil, err
	}
	start, err := r.readA()
	if err != nil {
		return nil, err
	}
	end, err := r.readA()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("ARC", &ArcData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Center:            Point{X: cx, Y: cy},
		Radius:            radius,
		StartAngle:        start,
		EndAngle:          end,
	}), nil
}

func (r *dxbReader) readCircle() (*Entity, error) {
	cx, err := r.readN()
	if err != nil {
		return nil, err
	}
	cy, err := r.readN()
	if err != nil {
		return nil, err
	}
	radius, err := r.readN()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("CIRCLE", &CircleData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Center:            Point{X: cx, Y: cy},
		Radius:            radius,
	}), nil
}

func (r *dxbReader) readPoint3() (Point, error) {
	x, err := r.readN()
	if err != nil {
		return Point{}, err
	}
	y, err := r.readN()
	if err != nil {
		return Point{}, err
	}
	z, err := r.readN()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y, Z: z}, nil
}

func (r *dxbReader) readFace() (*Entity, error) {
	p1, err := r.readPoint3()
	if err != nil {
		return nil, err
	}
	p2, err := r.readPoint3()
	if err != nil {
		return nil, err
	}
	p3, err := r.readPoint3()
	if err != nil {
		return nil, err
	}
	p4, err := r.readPoint3()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("3DFACE", &Face3DData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                p1, P2: p2, P3: p3, P4: p4,
	}), nil
}

func (r *dxbReader) readLine(is3D bool) (*Entity, error) {
	var from, to Point
	var err error
	if is3D {
		from, err = r.readPoint3()
	} else {
		from, err = r.readPointXY()
	}
	if err != nil {
		return nil, err
	}
	if is3D {
		to, err = r.readPoint3()
	} else {
		to, err = r.readPointXY()
	}
	if err != nil {
		return nil, err
	}
	r.lastLinePoint = to
	return r.wrapEntity("LINE", &LineData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                from, P2: to,
	}), nil
}

func (r *dxbReader) readPointXY() (Point, error) {
	x, err := r.readN()
	if err != nil {
		return Point{}, err
	}
	y, err := r.readN()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (r *dxbReader) readLineExtension(is3D bool) (*Entity, error) {
	var to Point
	var err error
	if is3D {
		to, err = r.readPoint3()
	} else {
		to, err = r.readPointXY()
	}
	if err != nil {
		return nil, err
	}
	from := r.lastLinePoint
	r.lastLinePoint = to
	return r.wrapEntity("LINE", &LineData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                from, P2: to,
	}), nil
}

func (r *dxbReader) readPoint() (*Entity, error) {
	p, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("POINT", &PointData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Location:          p,
	}), nil
}

func (r *dxbReader) readPolyline() (*Entity, error) {
	closedFlag, err := r.readW()
	if err != nil {
		return nil, err
	}
	var flags int32
	if closedFlag != 0 {
		flags = 1
	}
	return r.wrapEntity("POLYLINE", &PolylineData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Flags:             flags,
	}), nil
}

func (r *dxbReader) readSolid() (*Entity, error) {
	p1, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p2, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p3, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p4, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("SOLID", &SolidData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                p1, P2: p2, P3: p3, P4: p4,
	}), nil
}

func (r *dxbReader) readTrace() (*Entity, error) {
	p1, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p2, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p3, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p4, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	r.lastTraceP3 = p3
	r.lastTraceP4 = p4
	return r.wrapEntity("TRACE", &TraceData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                p1, P2: p2, P3: p3, P4: p4,
	}), nil
}

func (r *dxbReader) readTraceExtension() (*Entity, error) {
	p3, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p4, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	p1, p2 := r.lastTraceP3, r.lastTraceP4
	r.lastTraceP3 = p3
	r.lastTraceP4 = p4
	return r.wrapEntity("TRACE", &TraceData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                p1, P2: p2, P3: p3, P4: p4,
	}), nil
}

func (r *dxbReader) readVertex() (*Entity, error) {
	p, err := r.readPointXY()
	if err != nil {
		return nil, err
	}
	return r.wrapEntity("VERTEX", &VertexData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Location:          p,
	}), nil
}

func (r *dxbReader) expectByte(want byte) error {
	b, err := r.r.ReadByte()
	if err != nil {
		return err
	}
	if b != want {
		return ErrInvalidDxbSentinel
	}
	return nil
}

func (r *dxbReader) readNullTerminatedString() (string, error) {
	var buf []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

// readN decodes one coordinate: a scaled 16-bit integer in integer mode,
// a raw 32-bit float otherwise (spec §4.8).
func (r *dxbReader) readN() (float64, error) {
	if r.isIntegerMode {
		v, err := r.readInt16()
		if err != nil {
			return 0, err
		}
		return float64(v) * r.scaleFactor, nil
	}
	v, err := r.readFloat32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readA decodes one angle: a scaled 32-bit integer (in millionths) in
// integer mode, a raw 32-bit float otherwise.
func (r *dxbReader) readA() (float64, error) {
	if r.isIntegerMode {
		v, err := r.readInt32()
		if err != nil {
			return 0, err
		}
		return float64(v) * r.scaleFactor / 1_000_000.0, nil
	}
	v, err := r.readFloat32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readU decodes one bulge magnitude: a scaled 32-bit integer in
// integer mode, a raw 32-bit float otherwise.
func (r *dxbReader) readU() (float64, error) {
	if r.isIntegerMode {
		v, err := r.readInt32()
		if err != nil {
			return 0, err
		}
		return float64(v) * 65536.0 * r.scaleFactor, nil
	}
	v, err := r.readFloat32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readW decodes a raw 16-bit integer (flags, colors, mode switches),
// scaled by the active scale factor regardless of integer/float mode.
func (r *dxbReader) readW() (int32, error) {
	v, err := r.readInt16()
	if err != nil {
		return 0, err
	}
	return int32(float64(v) * r.scaleFactor), nil
}

// readF decodes a raw 64-bit float (only ScaleFactor uses this).
func (r *dxbReader) readF() (float64, error) {
	var bits uint64
	if err := binary.Read(r.r, binary.LittleEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (r *dxbReader) readInt16() (int16, error) {
	var v int16
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *dxbReader) readInt32() (int32, error) {
	var v int32
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *dxbReader) readFloat32() (float32, error) {
	var bits uint32
	if err := binary.Read(r.r, binary.LittleEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// dxbWriter serializes a Drawing back to the DXB dialect. It always
// switches to float-coordinate mode up front (spec §4.8) rather than
// tracking the scale factor a reader might have inherited, since a
// freshly-built Drawing has no such state to preserve.
type dxbWriter struct {
	w *bufio.Writer
}

// SaveDXB writes d as a compact binary DXB stream. If d has at least one
// top-level entity and at least one block, the first block's entities and
// base point are written as a BlockBase-prefixed stream; otherwise every
// top-level entity is written flat, grouped into runs by layer the way
// the format expects NewLayer items to be emitted (spec §4.8).
func SaveDXB(w io.Writer, d *Drawing) error {
	dw := &dxbWriter{w: bufio.NewWriter(w)}
	if err := dw.write(d); err != nil {
		return err
	}
	return dw.w.Flush()
}

func (w *dxbWriter) write(d *Drawing) error {
	if err := w.writeRawString(dxbSentinel); err != nil {
		return err
	}
	if err := w.writeByte(0x1A); err != nil {
		return err
	}
	if err := w.writeByte(0x00); err != nil {
		return err
	}

	if err := w.writeTag(dxbNumberMode); err != nil {
		return err
	}
	if err := w.writeW(1); err != nil {
		return err
	}

	writingBlock := len(d.entities) > 0 && len(d.Blocks) > 0
	if writingBlock {
		block := d.Blocks[0]
		if err := w.writeTag(dxbBlockBase); err != nil {
			return err
		}
		if err := w.writeN(block.BasePoint.X); err != nil {
			return err
		}
		if err := w.writeN(block.BasePoint.Y); err != nil {
			return err
		}
	}

	lastColor := int16(0)
	if err := w.writeTag(dxbNewColor); err != nil {
		return err
	}
	if err := w.writeW(lastColor); err != nil {
		return err
	}

	if writingBlock {
		for _, e := range d.Blocks[0].Entities {
			if err := w.writeEntity(e); err != nil {
				return err
			}
		}
	} else {
		i := 0
		for i < len(d.entities) {
			layer := ""
			if d.entities[i].Extra != nil {
				layer = d.entities[i].Extra.Layer
			}
			if err := w.writeTag(dxbNewLayer); err != nil {
				return err
			}
			if err := w.writeNullTerminatedString(layer); err != nil {
				return err
			}
			for i < len(d.entities) {
				e := d.entities[i]
				entityLayer := ""
				if e.Extra != nil {
					entityLayer = e.Extra.Layer
				}
				if entityLayer != layer {
					break
				}
				color := int16(256)
				if e.Extra != nil {
					color = e.Extra.Color
				}
				if color != lastColor {
					lastColor = color
					if err := w.writeTag(dxbNewColor); err != nil {
						return err
					}
					if err := w.writeW(lastColor); err != nil {
						return err
					}
				}
				if err := w.writeEntity(e); err != nil {
					return err
				}
				i++
			}
		}
	}

	return w.writeByte(0x00)
}

func (w *dxbWriter) writeEntity(e *Entity) error {
	switch data := e.Data.(type) {
	case *ArcData:
		if err := w.writeTag(dxbArc); err != nil {
			return err
		}
		if err := w.writeN(data.Center.X); err != nil {
			return err
		}
		if err := w.writeN(data.Center.Y); err != nil {
			return err
		}
		if err := w.writeN(data.Radius); err != nil {
			return err
		}
		if err := w.writeN(data.StartAngle); err != nil {
			return err
		}
		return w.writeN(data.EndAngle)
	case *CircleData:
		if err := w.writeTag(dxbCircle); err != nil {
			return err
		}
		if err := w.writeN(data.Center.X); err != nil {
			return err
		}
		if err := w.writeN(data.Center.Y); err != nil {
			return err
		}
		return w.writeN(data.Radius)
	case *Face3DData:
		if err := w.writeTag(dxbFace); err != nil {
			return err
		}
		for _, p := range []Point{data.P1, data.P2, data.P3, data.P4} {
			if err := w.writeN(p.X); err != nil {
				return err
			}
			if err := w.writeN(p.Y); err != nil {
				return err
			}
			if err := w.writeN(p.Z); err != nil {
				return err
			}
		}
		return nil
	case *LineData:
		if err := w.writeTag(dxbLine); err != nil {
			return err
		}
		for _, p := range []Point{data.P1, data.P2} {
			if err := w.writeN(p.X); err != nil {
				return err
			}
			if err := w.writeN(p.Y); err != nil {
				return err
			}
			if err := w.writeN(p.Z); err != nil {
				return err
			}
		}
		return nil
	case *PointData:
		if err := w.writeTag(dxbPoint); err != nil {
			return err
		}
		if err := w.writeN(data.Location.X); err != nil {
			return err
		}
		return w.writeN(data.Location.Y)
	case *PolylineData:
		if err := w.writeTag(dxbPolyline); err != nil {
			return err
		}
		closed := int16(0)
		if data.Flags&1 != 0 {
			closed = 1
		}
		if err := w.writeW(closed); err != nil {
			return err
		}
		for _, v := range data.Vertices {
			if err := w.writeVertexData(v); err != nil {
				return err
			}
		}
		return w.writeTag(dxbSeqend)
	case *SeqEndData:
		return w.writeTag(dxbSeqend)
	case *SolidData:
		if err := w.writeTag(dxbSolid); err != nil {
			return err
		}
		for _, p := range []Point{data.P1, data.P2, data.P3, data.P4} {
			if err := w.writeN(p.X); err != nil {
				return err
			}
			if err := w.writeN(p.Y); err != nil {
				return err
			}
		}
		return nil
	case *TraceData:
		if err := w.writeTag(dxbTrace); err != nil {
			return err
		}
		for _, p := range []Point{data.P1, data.P2, data.P3, data.P4} {
			if err := w.writeN(p.X); err != nil {
				return err
			}
			if err := w.writeN(p.Y); err != nil {
				return err
			}
		}
		return nil
	case *VertexData:
		return w.writeVertexData(data)
	default:
		// Entity types with no DXB representation are silently skipped,
		// mirroring the original dialect's limited entity coverage.
		return nil
	}
}

func (w *dxbWriter) writeVertexData(v *VertexData) error {
	if err := w.writeTag(dxbVertex); err != nil {
		return err
	}
	if err := w.writeN(v.Location.X); err != nil {
		return err
	}
	return w.writeN(v.Location.Y)
}

func (w *dxbWriter) writeTag(tag dxbItemTag) error {
	return w.writeByte(byte(tag))
}

func (w *dxbWriter) writeByte(b byte) error {
	return w.w.WriteByte(b)
}

func (w *dxbWriter) writeRawString(s string) error {
	_, err := w.w.WriteString(s)
	return err
}

func (w *dxbWriter) writeNullTerminatedString(s string) error {
	if err := w.writeRawString(s); err != nil {
		return err
	}
	return w.writeByte(0)
}

// writeN always writes a 32-bit float; the writer forces float mode at
// the top of every stream it produces (spec §4.8).
func (w *dxbWriter) writeN(v float64) error {
	return binary.Write(w.w, binary.LittleEndian, math.Float32bits(float32(v)))
}

func (w *dxbWriter) writeW(v int16) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}
