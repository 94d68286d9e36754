// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Entity is one graphical record of the ENTITIES section (or of a Block's
// entity list): its shared bookkeeping (CommonData) plus the type-tagged
// specific payload built by the registered decoder for Type (spec §3,
// "Entity").
type Entity struct {
	Common CommonData
	Extra  *EntityCommonExtra
	Type   string
	Data   any

	// Children holds coalesced child records: VERTEX/SEQEND under a
	// POLYLINE, ATTRIBUTE/SEQEND under an INSERT (spec §4.4). Populated
	// by the composite coalescer, never by the record codec itself.
	Children []*Entity
}

type entityKind struct {
	decode func(pr *pushbackReader, version Version, common *CommonData) (any, *EntityCommonExtra, error)
	encode func(w PairWriter, version Version, data any, extra *EntityCommonExtra) error
}

var entityRegistry = map[string]entityKind{}

// registerEntity wires one concrete entity record type T into the
// dispatch table used by decodeEntity/encodeEntity. T must embed
// EntityCommonExtra as its first field so extraOf can reach it generically
// without per-type glue (spec §4.3: "schema as data, not hand-rolled
// per-variant code"). subclassMarker is the type's AcDb<Type> subclass
// name, written at code 100 right after the AcDbEntity base fields, per
// the Format's class hierarchy (spec §4.3, "Record Codec").
func registerEntity[T any](typeName, subclassMarker string, schema []FieldSchema[T], extraOf func(*T) *EntityCommonExtra, newRec func() *T) {
	baseFields := commonEntityFields(extraOf)
	full := append(append([]FieldSchema[T]{}, baseFields...), schema...)
	entityRegistry[typeName] = entityKind{
		decode: func(pr *pushbackReader, version Version, common *CommonData) (any, *EntityCommonExtra, error) {
			rec := newRec()
			if err := decodeFields(pr, version, common, full, rec); err != nil {
				return nil, nil, err
			}
			return rec, extraOf(rec), nil
		},
		encode: func(w PairWriter, version Version, data any, extra *EntityCommonExtra) error {
			rec := data.(*T)
			if err := encodeFields(w, version, baseFields, rec); err != nil {
				return err
			}
			if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbEntity")}); err != nil {
				return err
			}
			if subclassMarker != "" {
				if err := w.Write(CodePair{Code: 100, Value: StringValue(subclassMarker)}); err != nil {
					return err
				}
			}
			return encodeFields(w, version, schema, rec)
		},
	}
}

// decodeEntity reads one entity record body given its already-consumed
// "0/<Type>" header pair. Unrecognized types are skipped wholesale (up to
// the next code-0 boundary) and recorded as an anomaly rather than
// aborting the section (spec §4.3 step 2, §7).
func decodeEntity(pr *pushbackReader, version Version, typeName string, anomalies *[]string) (*Entity, error) {
	kind, ok := entityRegistry[typeName]
	if !ok {
		if err := skipUnknownRecord(pr); err != nil {
			return nil, err
		}
		*anomalies = append(*anomalies, AnoUnknownRecordType+": "+typeName)
		return nil, nil
	}
	var common CommonData
	data, extra, err := kind.decode(pr, version, &common)
	if err == errRecordDropped {
		*anomalies = append(*anomalies, AnoDimensionSubclassDropped)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Entity{Common: common, Extra: extra, Type: typeName, Data: data}, nil
}

// encodeEntity writes one entity's "0/<Type>" header, its common and
// entity-common fields, its type-specific fields, and finally its
// extension groups / XData trailer.
func encodeEntity(w PairWriter, version Version, e *Entity) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue(e.Type)}); err != nil {
		return err
	}
	if err := encodeFields(w, version, commonSchema, &e.Common); err != nil {
		return err
	}
	kind, ok := entityRegistry[e.Type]
	if !ok {
		return nil
	}
	if err := kind.encode(w, version, e.Data, e.Extra); err != nil {
		return err
	}
	return encodeRecordTrailer(w, version, &e.Common)
}

// skipUnknownRecord discards pairs up to (not including) the next code-0
// boundary, leaving it for the caller to read next.
func skipUnknownRecord(pr *pushbackReader) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code == 0 {
			pr.PutBack(*pair)
			return nil
		}
	}
}

// encodeRecordTrailer emits extension groups (R14+) and XData (R2000+),
// the two schema-agnostic trailers every record may carry (spec §4.7).
func encodeRecordTrailer(w PairWriter, version Version, common *CommonData) error {
	if version.AtLeast(R14) {
		for _, g := range common.ExtensionGroups {
			if err := writeExtensionGroup(w, g); err != nil {
				return err
			}
		}
	}
	if version.AtLeast(R2000) {
		for _, xd := range common.XData {
			if err := writeXData(w, xd); err != nil {
				return err
			}
		}
	}
	return nil
}
