// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// coalesceEntities folds a flat, as-read entity list into its composite
// form: POLYLINE absorbs a run of VERTEX children and an optional SEQEND,
// INSERT absorbs a run of ATTRIB children and an optional SEQEND when its
// HasAttributes flag is set, and a lone ATTRIB/ATTDEF absorbs one
// following MTEXT into its multi-line value (spec §4.4). It runs once,
// immediately after the record codec, over whatever section or block
// produced the flat list.
func coalesceEntities(flat []*Entity, anomalies *[]string) []*Entity {
	var out []*Entity
	i := 0
	for i < len(flat) {
		e := flat[i]
		switch e.Type {
		case "POLYLINE":
			i++
			terminated := false
			for i < len(flat) && flat[i].Type == "VERTEX" {
				flat[i].Common.Handle = autoAssignIfUnset(flat[i].Common.Handle)
				v := flat[i].Data.(*VertexData)
				pdata := e.Data.(*PolylineData)
				pdata.Vertices = append(pdata.Vertices, v)
				e.Children = append(e.Children, flat[i])
				i++
			}
			if i < len(flat) && flat[i].Type == "SEQEND" {
				e.Children = append(e.Children, flat[i])
				terminated = true
				i++
			}
			if !terminated {
				*anomalies = append(*anomalies, AnoTruncatedCompositeSequence)
			}
			out = append(out, e)
		case "INSERT":
			i++
			idata := e.Data.(*InsertData)
			if idata.HasAttributes {
				terminated := false
				for i < len(flat) && flat[i].Type == "ATTRIB" {
					idata.Attributes = append(idata.Attributes, flat[i].Data.(*AttributeData))
					e.Children = append(e.Children, flat[i])
					i++
				}
				if i < len(flat) && flat[i].Type == "SEQEND" {
					e.Children = append(e.Children, flat[i])
					terminated = true
					i++
				}
				if !terminated {
					*anomalies = append(*anomalies, AnoTruncatedCompositeSequence)
				}
			}
			out = append(out, e)
		case "ATTRIB", "ATTDEF":
			i++
			if i < len(flat) && flat[i].Type == "MTEXT" {
				adata := e.Data.(*AttributeData)
				adata.MTextValue = flat[i].Data.(*MTextData).Text
				e.Children = append(e.Children, flat[i])
				i++
			}
			out = append(out, e)
		default:
			i++
			out = append(out, e)
		}
	}
	return out
}

// autoAssignIfUnset is a placeholder identity until a Drawing is available
// to mint a fresh handle; Drawing.Normalize resolves any handle still equal
// to AutoAssignHandle once every record has been inserted (spec §4.4,
// §4.6).
func autoAssignIfUnset(h Handle) Handle {
	if h.IsSet() {
		return h
	}
	return AutoAssignHandle
}
