// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// ExtensionGroup is an application-defined code-102 bracket: "{AppName"
// followed by an arbitrary run of pairs (possibly nesting further code-102
// brackets) and closed by a bare "}" (spec §4.7). It is opaque to the
// schema engine: decodeFields stashes it on CommonData untouched.
type ExtensionGroup struct {
	AppName string
	Items   []ExtensionItem
}

// ExtensionItem is either a leaf code pair or a nested bracket.
type ExtensionItem struct {
	Pair  *CodePair
	Nested *ExtensionGroup
}

// readExtensionGroup consumes pairs until the matching "}" close, given
// the opening code-102 pair ("{AppName"). Nested code-102 brackets recurse.
func readExtensionGroup(pr *pushbackReader, opening CodePair) (ExtensionGroup, error) {
	group := ExtensionGroup{AppName: trimExtensionBrace(opening.Value.Str)}
	for {
		pair, err := pr.Next()
		if err != nil {
			return group, err
		}
		if pair == nil {
			return group, ErrUnexpectedEndOfInput
		}
		if pair.Code == 102 && pair.Value.Str == "}" {
			return group, nil
		}
		if pair.Code == 102 {
			nested, err := readExtensionGroup(pr, *pair)
			if err != nil {
				return group, err
			}
			group.Items = append(group.Items, ExtensionItem{Nested: &nested})
			continue
		}
		p := *pair
		group.Items = append(group.Items, ExtensionItem{Pair: &p})
	}
}

func trimExtensionBrace(s string) string {
	if len(s) > 0 && s[0] == '{' {
		return s[1:]
	}
	return s
}

// writeExtensionGroup emits a code-102 bracket, recursing into nested
// groups. Extension groups are only ever written at R14+ (spec §4.7);
// the caller (encodeRecordTrailer) is responsible for the version gate.
func writeExtensionGroup(w PairWriter, group ExtensionGroup) error {
	if err := w.Write(CodePair{Code: 102, Value: StringValue("{" + group.AppName)}); err != nil {
		return err
	}
	for _, item := range group.Items {
		if item.Nested != nil {
			if err := writeExtensionGroup(w, *item.Nested); err != nil {
				return err
			}
			continue
		}
		if err := w.Write(*item.Pair); err != nil {
			return err
		}
	}
	return w.Write(CodePair{Code: 102, Value: StringValue("}")})
}
