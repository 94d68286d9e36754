// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Class is one CLASSES section record: it registers a custom entity or
// object type name with its C++/application class name and behavior
// flags, so readers that don't understand the custom type can still
// account for its instances (spec §3, "classes").
type Class struct {
	RecordName  string
	CppClassName string
	AppName     string
	ProxyFlags  int32
	InstanceCount int32
	WasProxy    bool
	IsEntity    bool
}

var classSchema = []FieldSchema[Class]{
	{
		Name: "RecordName", Code: 1, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return StringValue(r.RecordName) },
		Set: func(r *Class, v Value) { r.RecordName = v.Str },
	},
	{
		Name: "CppClassName", Code: 2, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return StringValue(r.CppClassName) },
		Set: func(r *Class, v Value) { r.CppClassName = v.Str },
	},
	{
		Name: "AppName", Code: 3, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return StringValue(r.AppName) },
		Set: func(r *Class, v Value) { r.AppName = v.Str },
	},
	{
		Name: "ProxyFlags", Code: 90, Kind: KindInteger, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return IntegerValue(r.ProxyFlags) },
		Set: func(r *Class, v Value) { r.ProxyFlags = int32(v.AsInt()) },
	},
	{
		Name: "InstanceCount", Code: 91, Kind: KindInteger, MinVersion: R2004, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return IntegerValue(r.InstanceCount) },
		Set: func(r *Class, v Value) { r.InstanceCount = int32(v.AsInt()) },
	},
	{
		Name: "WasProxy", Code: 280, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return ShortValue(boolShort(r.WasProxy)) },
		Set: func(r *Class, v Value) { r.WasProxy = v.AsInt() != 0 },
	},
	{
		Name: "IsEntity", Code: 281, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *Class) Value { return ShortValue(boolShort(r.IsEntity)) },
		Set: func(r *Class, v Value) { r.IsEntity = v.AsInt() != 0 },
	},
}

// decodeClass reads one "0/CLASS" record body.
func decodeClass(pr *pushbackReader, version Version) (*Class, error) {
	var dummy CommonData
	c := &Class{}
	if err := decodeFields(pr, version, &dummy, classSchema, c); err != nil {
		return nil, err
	}
	return c, nil
}

func encodeClass(w PairWriter, version Version, c *Class) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue("CLASS")}); err != nil {
		return err
	}
	return encodeFields(w, version, classSchema, c)
}
