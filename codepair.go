// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "fmt"

// ValueKind identifies which of the seven wire representations a CodePair's
// value is stored as. The code determines the expected kind; see
// KindOfCode.
type ValueKind int

const (
	KindBoolean ValueKind = iota
	KindShort             // int16
	KindInteger           // int32
	KindLong              // int64
	KindDouble            // float64
	KindString            // unicode text
	KindBinary            // raw byte sequence
)

func (k ValueKind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindShort:
		return "Short"
	case KindInteger:
		return "Integer"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// codeKindRange pairs an inclusive code range with the ValueKind every code
// in that range carries. This is the canonical code -> kind mapping from
// spec §6; it must be consulted before any other interpretation of a code.
type codeKindRange struct {
	min, max int
	kind     ValueKind
}

var codeKindTable = []codeKindRange{
	{0, 9, KindString},
	{10, 59, KindDouble},
	{60, 79, KindShort},
	{90, 99, KindInteger},
	{100, 102, KindString},
	{105, 105, KindString},
	{110, 149, KindDouble},
	{160, 169, KindLong},
	{170, 179, KindShort},
	{210, 239, KindDouble},
	{270, 289, KindShort},
	{290, 299, KindBoolean},
	{300, 309, KindString},
	{310, 319, KindBinary},
	{320, 369, KindString},
	{370, 389, KindShort},
	{390, 399, KindString},
	{400, 409, KindShort},
	{410, 419, KindString},
	{420, 429, KindInteger},
	{430, 439, KindString},
	{440, 459, KindInteger},
	{460, 469, KindDouble},
	{470, 481, KindString},
	{999, 999, KindString},
	{1000, 1009, KindString},
	{1010, 1059, KindDouble},
	{1060, 1070, KindShort},
	{1071, 1071, KindInteger},
}

// KindOfCode returns the ValueKind a code pair's value must carry for the
// given numeric code, and false if the code is outside every published
// range.
func KindOfCode(code int) (ValueKind, bool) {
	for _, r := range codeKindTable {
		if code >= r.min && code <= r.max {
			return r.kind, true
		}
	}
	return 0, false
}

// Value is the typed payload of a CodePair. Exactly one of the typed
// fields is meaningful, selected by Kind.
type Value struct {
	Kind    ValueKind
	Boolean bool
	Short   int16
	Integer int32
	Long    int64
	Double  float64
	Str     string
	Binary  []byte
}

func BooleanValue(b bool) Value   { return Value{Kind: KindBoolean, Boolean: b} }
func ShortValue(s int16) Value    { return Value{Kind: KindShort, Short: s} }
func IntegerValue(i int32) Value  { return Value{Kind: KindInteger, Integer: i} }
func LongValue(l int64) Value     { return Value{Kind: KindLong, Long: l} }
func DoubleValue(d float64) Value { return Value{Kind: KindDouble, Double: d} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func BinaryValue(b []byte) Value  { return Value{Kind: KindBinary, Binary: b} }

// AsFloat widens any numeric kind to float64; used by the schema engine
// when assigning into a Double-typed field that was, on the wire, carried
// as an Integer or Short for a particular version.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case KindDouble:
		return v.Double
	case KindShort:
		return float64(v.Short)
	case KindInteger:
		return float64(v.Integer)
	case KindLong:
		return float64(v.Long)
	}
	return 0
}

// AsInt widens any integral kind to int64.
func (v Value) AsInt() int64 {
	switch v.Kind {
	case KindShort:
		return int64(v.Short)
	case KindInteger:
		return int64(v.Integer)
	case KindLong:
		return int64(v.Long)
	case KindBoolean:
		if v.Boolean {
			return 1
		}
		return 0
	}
	return 0
}

func (v Value) String() string {
	switch v.Kind {
	case KindBoolean:
		return fmt.Sprintf("%v", v.Boolean)
	case KindShort:
		return fmt.Sprintf("%d", v.Short)
	case KindInteger:
		return fmt.Sprintf("%d", v.Integer)
	case KindLong:
		return fmt.Sprintf("%d", v.Long)
	case KindDouble:
		return fmt.Sprintf("%g", v.Double)
	case KindString:
		return v.Str
	case KindBinary:
		return fmt.Sprintf("% X", v.Binary)
	}
	return ""
}

// CodePair is the fundamental unit of the wire format: a numeric code and
// its typed value.
type CodePair struct {
	Code  int
	Value Value
}

// NewCodePair builds a CodePair, trusting the caller to have built value
// with the kind matching Code (see KindOfCode). Schema-driven callers
// always go through the field codec instead of calling this directly.
func NewCodePair(code int, value Value) CodePair {
	return CodePair{Code: code, Value: value}
}

func (p CodePair) String() string {
	return fmt.Sprintf("%d/%s", p.Code, p.Value.String())
}
