// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// XDataGroup is one application's run of extended data: a code-1001
// "registered application name" pair followed by zero or more codes in
// the 1000-1071 range, up to the next 1001 pair, a code-0 boundary, or
// end of stream (spec §4.7). Like ExtensionGroup, it is opaque to the
// schema engine and is only ever written at R2000+.
type XDataGroup struct {
	AppName string
	Items   []CodePair
}

// readXData consumes one application's run given its opening 1001 pair.
// decodeFields calls this once per 1001 pair it sees; it stops as soon as
// it would otherwise consume the next 1001 (the caller's loop picks that
// one up as the start of the next group) or a non-XData code.
func readXData(pr *pushbackReader, opening CodePair) (XDataGroup, error) {
	group := XDataGroup{AppName: opening.Value.Str}
	for {
		pair, err := pr.Next()
		if err != nil {
			return group, err
		}
		if pair == nil {
			return group, nil
		}
		if pair.Code < 1000 {
			pr.PutBack(*pair)
			return group, nil
		}
		if pair.Code == 1001 {
			pr.PutBack(*pair)
			return group, nil
		}
		group.Items = append(group.Items, *pair)
	}
}

// writeXData emits a registered-application XData run: the 1001 app-name
// pair followed by its items in declared order.
func writeXData(w PairWriter, group XDataGroup) error {
	if err := w.Write(CodePair{Code: 1001, Value: StringValue(group.AppName)}); err != nil {
		return err
	}
	for _, pair := range group.Items {
		if err := w.Write(pair); err != nil {
			return err
		}
	}
	return nil
}
