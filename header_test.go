// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestDecodeHeader_KnownAndCustomVars(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(9, StringValue("$ACADVER")),
		pair(1, StringValue("AC1027")),
		pair(9, StringValue("$HANDSEED")),
		pair(5, StringValue("FF")),
		pair(9, StringValue("$INSBASE")),
		pair(10, DoubleValue(1)),
		pair(20, DoubleValue(2)),
		pair(30, DoubleValue(3)),
		pair(9, StringValue("$MYCUSTOMVAR")),
		pair(70, ShortValue(42)),
		pair(0, StringValue("ENDSEC")),
	})

	h, err := decodeHeader(NewPushbackReader(NewASCIIReader(strings.NewReader(text))), DefaultVersion)
	if err != nil {
		t.Fatalf("decodeHeader failed: %v", err)
	}
	if h.Version != R2013 {
		t.Errorf("got Version=%v, want R2013", h.Version)
	}
	if h.HandleSeed != 0xFF {
		t.Errorf("got HandleSeed=%v, want 0xFF", h.HandleSeed)
	}
	if h.InsBase != (Point{1, 2, 3}) {
		t.Errorf("got InsBase=%v, want (1,2,3)", h.InsBase)
	}
	vals, ok := h.Custom["$MYCUSTOMVAR"]
	if !ok {
		t.Fatal("expected $MYCUSTOMVAR to be preserved in Custom")
	}
	if len(vals) != 1 || vals[0].Code != 70 || vals[0].Value.AsInt() != 42 {
		t.Errorf("got Custom[$MYCUSTOMVAR]=%v, want a single 70/42 pair", vals)
	}
}

func TestEncodeHeader_RoundTripsCustomVar(t *testing.T) {
	h := NewHeader(R2013)
	h.HandleSeed = 0x20
	h.Custom["$MYCUSTOMVAR"] = []CodePair{{Code: 70, Value: ShortValue(7)}}
	h.customOrder = append(h.customOrder, "$MYCUSTOMVAR")

	var buf strings.Builder
	w := NewASCIIWriter(&buf, R2013)
	if err := encodeHeader(w, R2013, h); err != nil {
		t.Fatalf("encodeHeader failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	h2, err := decodeHeader(NewPushbackReader(NewASCIIReader(strings.NewReader(buf.String()))), DefaultVersion)
	if err != nil {
		t.Fatalf("decodeHeader of round-tripped header failed: %v", err)
	}
	if h2.HandleSeed != 0x20 {
		t.Errorf("got HandleSeed=%v, want 0x20", h2.HandleSeed)
	}
	if len(h2.Custom["$MYCUSTOMVAR"]) != 1 || h2.Custom["$MYCUSTOMVAR"][0].Value.AsInt() != 7 {
		t.Errorf("got Custom[$MYCUSTOMVAR]=%v, want a single 70/7 pair", h2.Custom["$MYCUSTOMVAR"])
	}
}
