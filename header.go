// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Header holds the drawing's named `$VARIABLE` settings. The full Format
// defines roughly 300 of these; this library models the subset that
// drives reader/writer behavior directly (schema version, handle seed,
// drawing extents, code page, measurement system) and preserves every
// other variable verbatim in Custom so round-tripping an unmodified
// drawing never silently drops a setting (spec §3, "Header").
type Header struct {
	Version     Version
	HandleSeed  Handle
	InsBase     Point
	ExtMin      Point
	ExtMax      Point
	Measurement int16
	CodePageName string

	// Custom preserves every header variable this library has no named
	// field for, keyed by its $NAME, in first-seen order of the values
	// that followed its code-9 pair.
	Custom     map[string][]CodePair
	customOrder []string
}

// NewHeader returns a Header with the defaults a freshly normalized
// Drawing carries.
func NewHeader(version Version) *Header {
	return &Header{
		Version:      version,
		Measurement:  0,
		CodePageName: "ANSI_1252",
		Custom:       make(map[string][]CodePair),
	}
}

type headerVarField struct {
	Code int
	Get  func(h *Header) Value
	Set  func(h *Header, v Value)
}

type headerVarSpec struct {
	Name   string
	Fields []headerVarField
}

var headerVars = []headerVarSpec{
	{Name: "$ACADVER", Fields: []headerVarField{{
		Code: 1,
		Get:  func(h *Header) Value { return StringValue(h.Version.String()) },
		Set:  func(h *Header, v Value) { h.Version, _ = ParseVersion(v.Str) },
	}}},
	{Name: "$HANDSEED", Fields: []headerVarField{{
		Code: 5,
		Get:  func(h *Header) Value { return StringValue(h.HandleSeed.String()) },
		Set:  func(h *Header, v Value) { h.HandleSeed, _ = ParseHandle(v.Str) },
	}}},
	{Name: "$MEASUREMENT", Fields: []headerVarField{{
		Code: 70,
		Get:  func(h *Header) Value { return ShortValue(h.Measurement) },
		Set:  func(h *Header, v Value) { h.Measurement = int16(v.AsInt()) },
	}}},
	{Name: "$DWGCODEPAGE", Fields: []headerVarField{{
		Code: 3,
		Get:  func(h *Header) Value { return StringValue(h.CodePageName) },
		Set:  func(h *Header, v Value) { h.CodePageName = v.Str },
	}}},
	{Name: "$INSBASE", Fields: []headerVarField{
		{Code: 10, Get: func(h *Header) Value { return DoubleValue(h.InsBase.X) }, Set: func(h *Header, v Value) { h.InsBase.X = v.AsFloat() }},
		{Code: 20, Get: func(h *Header) Value { return DoubleValue(h.InsBase.Y) }, Set: func(h *Header, v Value) { h.InsBase.Y = v.AsFloat() }},
		{Code: 30, Get: func(h *Header) Value { return DoubleValue(h.InsBase.Z) }, Set: func(h *Header, v Value) { h.InsBase.Z = v.AsFloat() }},
	}},
	{Name: "$EXTMIN", Fields: []headerVarField{
		{Code: 10, Get: func(h *Header) Value { return DoubleValue(h.ExtMin.X) }, Set: func(h *Header, v Value) { h.ExtMin.X = v.AsFloat() }},
		{Code: 20, Get: func(h *Header) Value { return DoubleValue(h.ExtMin.Y) }, Set: func(h *Header, v Value) { h.ExtMin.Y = v.AsFloat() }},
		{Code: 30, Get: func(h *Header) Value { return DoubleValue(h.ExtMin.Z) }, Set: func(h *Header, v Value) { h.ExtMin.Z = v.AsFloat() }},
	}},
	{Name: "$EXTMAX", Fields: []headerVarField{
		{Code: 10, Get: func(h *Header) Value { return DoubleValue(h.ExtMax.X) }, Set: func(h *Header, v Value) { h.ExtMax.X = v.AsFloat() }},
		{Code: 20, Get: func(h *Header) Value { return DoubleValue(h.ExtMax.Y) }, Set: func(h *Header, v Value) { h.ExtMax.Y = v.AsFloat() }},
		{Code: 30, Get: func(h *Header) Value { return DoubleValue(h.ExtMax.Z) }, Set: func(h *Header, v Value) { h.ExtMax.Z = v.AsFloat() }},
	}},
}

func findHeaderVar(name string) (headerVarSpec, bool) {
	for _, spec := range headerVars {
		if spec.Name == name {
			return spec, true
		}
	}
	return headerVarSpec{}, false
}

// decodeHeader reads the HEADER section body up to (not including) the
// "0/ENDSEC" boundary, which is left pushed back.
func decodeHeader(pr *pushbackReader, version Version) (*Header, error) {
	h := NewHeader(version)
	var varName string
	var spec headerVarSpec
	var known bool
	for {
		pair, err := pr.Next()
		if err != nil {
			return nil, err
		}
		if pair == nil {
			return h, nil
		}
		if pair.Code == 0 {
			pr.PutBack(*pair)
			return h, nil
		}
		if pair.Code == 9 {
			varName = pair.Value.Str
			spec, known = findHeaderVar(varName)
			if !known {
				h.Custom[varName] = nil
				h.customOrder = append(h.customOrder, varName)
			}
			continue
		}
		if varName == "" {
			continue
		}
		if known {
			for _, f := range spec.Fields {
				if f.Code == pair.Code {
					f.Set(h, pair.Value)
					break
				}
			}
			continue
		}
		h.Custom[varName] = append(h.Custom[varName], *pair)
	}
}

// encodeHeader emits every named variable this library knows (in table
// order) and every preserved custom variable (in first-seen order).
func encodeHeader(w PairWriter, version Version, h *Header) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 2, Value: StringValue("HEADER")}); err != nil {
		return err
	}
	for _, spec := range headerVars {
		if err := w.Write(CodePair{Code: 9, Value: StringValue(spec.Name)}); err != nil {
			return err
		}
		for _, f := range spec.Fields {
			if err := w.Write(CodePair{Code: f.Code, Value: f.Get(h)}); err != nil {
				return err
			}
		}
	}
	for _, name := range h.customOrder {
		if err := w.Write(CodePair{Code: 9, Value: StringValue(name)}); err != nil {
			return err
		}
		for _, pair := range h.Custom[name] {
			if err := w.Write(pair); err != nil {
				return err
			}
		}
	}
	return w.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")})
}
