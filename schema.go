// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// FieldSchema is one row of the static, data-driven description of a
// record type (spec §4.3). A record type's schema is a []FieldSchema[T]
// consumed by decodeFields/encodeFields below; the only hand-written
// per-field switches are the LWPOLYLINE and DIMENSION reader overrides.
type FieldSchema[T any] struct {
	Name string
	Code int
	Kind ValueKind

	MinVersion Version
	MaxVersion Version

	// AllowMultiples marks a code that may repeat, each occurrence
	// appended via Append instead of overwriting via Set.
	AllowMultiples bool

	// WriteIf gates emission beyond the version range (e.g. "only when
	// nonzero", "only when a flag is set"). A nil WriteIf always writes.
	WriteIf func(rec *T) bool

	Get    func(rec *T) Value
	Set    func(rec *T, v Value)
	Append func(rec *T, v Value)
}

// decodeFields pulls pairs from pr until a code-0 boundary (pushed back)
// or end of stream, routing each pair first through commonSchema, then
// schema, and silently ignoring anything neither claims (spec §4.3 step
// 3: "Unknown codes within a known record are silently ignored"). Code
// 102 (extension group) and codes >= 1000 (XData) are intercepted before
// either schema sees them and folded into common.
func decodeFields[T any](pr *pushbackReader, version Version, common *CommonData, schema []FieldSchema[T], rec *T) error {
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
		if pair.Code == 100 {
			// Subclass marker: the generic engine does not switch schemas
			// on it (only the DIMENSION reader does, see dimension.go).
			continue
		}
		if pair.Code == 102 {
			group, err := readExtensionGroup(pr, *pair)
			if err != nil {
				return err
			}
			common.ExtensionGroups = append(common.ExtensionGroups, group)
			continue
		}
		if pair.Code == 1001 {
			xd, err := readXData(pr, *pair)
			if err != nil {
				return err
			}
			common.XData = append(common.XData, xd)
			continue
		}
		if pair.Code >= 1000 {
			// An XData value code with no preceding 1001 app name; tolerate
			// it as a headerless run rather than failing the whole record.
			xd, err := readXData(pr, CodePair{Code: 1001, Value: StringValue("")})
			if err != nil {
				return err
			}
			xd.Items = append([]CodePair{*pair}, xd.Items...)
			common.XData = append(common.XData, xd)
			continue
		}
		if applyField(commonSchema, version, common, *pair) {
			continue
		}
		if applyField(schema, version, rec, *pair) {
			continue
		}
		// Unknown code in a known record: ignored, not an error.
	}
}

// decodeCommonOnly is decodeFields specialized for records with no
// type-specific fields at all (ENDBLK): it routes everything through commonSchema/extension/XData and
// ignores anything else.
func decodeCommonOnly(pr *pushbackReader, version Version, common *CommonData) error {
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
		if pair.Code == 102 {
			group, err := readExtensionGroup(pr, *pair)
			if err != nil {
				return err
			}
			common.ExtensionGroups = append(common.ExtensionGroups, group)
			continue
		}
		if pair.Code == 1001 {
			xd, err := readXData(pr, *pair)
			if err != nil {
				return err
			}
			common.XData = append(common.XData, xd)
			continue
		}
		applyField(commonSchema, version, common, *pair)
	}
}

func applyField[T any](schema []FieldSchema[T], version Version, rec *T, pair CodePair) bool {
	for i := range schema {
		f := &schema[i]
		if f.Code != pair.Code {
			continue
		}
		if !inRange(version, f.MinVersion, f.MaxVersion) {
			continue
		}
		if f.AllowMultiples && f.Append != nil {
			f.Append(rec, pair.Value)
		} else {
			f.Set(rec, pair.Value)
		}
		return true
	}
	return false
}

// encodeFields emits every in-range, write-gated field of schema, in
// declared order. It writes no extension groups or XData; callers add
// those afterwards through encodeRecordTrailer.
func encodeFields[T any](w PairWriter, version Version, schema []FieldSchema[T], rec *T) error {
	for i := range schema {
		f := &schema[i]
		if !inRange(version, f.MinVersion, f.MaxVersion) {
			continue
		}
		if f.WriteIf != nil && !f.WriteIf(rec) {
			continue
		}
		if err := w.Write(CodePair{Code: f.Code, Value: f.Get(rec)}); err != nil {
			return err
		}
	}
	return nil
}
