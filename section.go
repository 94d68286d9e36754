// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// readSections drives the top-level state machine over code-0 section
// markers: SECTION/ENDSEC, with per-section sub-parsers for HEADER,
// CLASSES, TABLES, BLOCKS, ENTITIES, OBJECTS, and THUMBNAILIMAGE (spec
// §4.2). Sections may appear in any order or be entirely absent; unknown
// sections are swallowed up to their ENDSEC. version starts at
// DefaultVersion and is updated in place the moment a HEADER section
// resolves $ACADVER, so every later section sees the drawing's real
// schema revision.
func readSections(pr *pushbackReader, d *Drawing) error {
	version := &d.Header.Version
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		switch pair.Value.Str {
		case "EOF":
			return nil
		case "SECTION":
			if err := readOneSection(pr, d, version); err != nil {
				return err
			}
		default:
			// Stray code-0 outside any section; ignore and continue.
		}
	}
}

func readOneSection(pr *pushbackReader, d *Drawing, version *Version) error {
	pair, err := pr.Next()
	if err != nil {
		return err
	}
	if pair == nil || pair.Code != 2 {
		return swallowSection(pr)
	}
	name := pair.Value.Str
	if err := parseSectionBody(pr, d, version, name); err != nil {
		return err
	}
	return expectEndsec(pr)
}

// parseSectionBody dispatches to the sub-parser for one named section,
// with a recover() around the call so that a panic deep in a single
// section's decoder (a malformed record tripping an index or type
// assertion) cannot abort the whole read: it is logged as an anomaly and
// the rest of the section is swallowed up to its ENDSEC instead, letting
// every other section still load.
func parseSectionBody(pr *pushbackReader, d *Drawing, version *Version, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.addAnomaly(AnoSectionParsePanic + ": " + name)
			err = swallowSection(pr)
		}
	}()

	switch name {
	case "HEADER":
		h, herr := decodeHeader(pr, *version)
		if herr != nil {
			return herr
		}
		d.Header = h
		*version = h.Version
		pr.SetVersion(h.Version)
	case "CLASSES":
		return readClasses(pr, d, *version)
	case "TABLES":
		return readTables(pr, d, *version)
	case "BLOCKS":
		return readBlocks(pr, d, *version)
	case "ENTITIES":
		flat, eerr := readEntityRun(pr, *version, &d.Anomalies)
		if eerr != nil {
			return eerr
		}
		d.entities = coalesceEntities(flat, &d.Anomalies)
	case "OBJECTS":
		return readObjects(pr, d, *version)
	case "THUMBNAILIMAGE":
		return readThumbnail(pr, d)
	default:
		d.addAnomaly(AnoUnknownSection)
		return swallowSection(pr)
	}
	return nil
}

// swallowSection consumes pairs up to (not including) the next 0/ENDSEC.
func swallowSection(pr *pushbackReader) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code == 0 && pair.Value.Str == "ENDSEC" {
			pr.PutBack(*pair)
			return nil
		}
	}
}

func expectEndsec(pr *pushbackReader) error {
	pair, err := pr.Next()
	if err != nil {
		return err
	}
	if pair != nil && pair.Code == 0 && pair.Value.Str == "ENDSEC" {
		return nil
	}
	if pair != nil {
		pr.PutBack(*pair)
	}
	return nil
}

func readClasses(pr *pushbackReader, d *Drawing, version Version) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		if pair.Value.Str != "CLASS" {
			pr.PutBack(*pair)
			return nil
		}
		c, err := decodeClass(pr, version)
		if err != nil {
			return err
		}
		d.Classes = append(d.Classes, c)
	}
}

func readTables(pr *pushbackReader, d *Drawing, version Version) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		switch pair.Value.Str {
		case "TABLE":
			if err := readOneTable(pr, d, version); err != nil {
				return err
			}
		default:
			pr.PutBack(*pair)
			return nil
		}
	}
}

func readOneTable(pr *pushbackReader, d *Drawing, version Version) error {
	pair, err := pr.Next()
	if err != nil {
		return err
	}
	tableName := ""
	if pair != nil && pair.Code == 2 {
		tableName = pair.Value.Str
	}
	for {
		p, err := pr.Next()
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if p.Code != 0 {
			continue
		}
		if p.Value.Str == "ENDTAB" {
			return nil
		}
		rec, err := decodeTableRecord(pr, version, p.Value.Str, &d.Anomalies)
		if err != nil {
			return err
		}
		if rec != nil {
			d.Tables[tableName] = append(d.Tables[tableName], rec)
		}
	}
}

// readEntityRun reads a flat run of entity records up to (not including)
// the next 0/ENDSEC or 0/ENDBLK boundary, which is left pushed back.
func readEntityRun(pr *pushbackReader, version Version, anomalies *[]string) ([]*Entity, error) {
	var flat []*Entity
	for {
		pair, err := pr.Next()
		if err != nil {
			return flat, err
		}
		if pair == nil {
			return flat, nil
		}
		if pair.Code != 0 {
			continue
		}
		if pair.Value.Str == "ENDSEC" || pair.Value.Str == "ENDBLK" {
			pr.PutBack(*pair)
			return flat, nil
		}
		e, err := decodeEntity(pr, version, pair.Value.Str, anomalies)
		if err != nil {
			return flat, err
		}
		if e != nil {
			flat = append(flat, e)
		}
	}
}

func readBlocks(pr *pushbackReader, d *Drawing, version Version) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		if pair.Value.Str != "BLOCK" {
			pr.PutBack(*pair)
			return nil
		}
		blk, err := decodeBlockHeader(pr, version)
		if err != nil {
			return err
		}
		flat, err := readEntityRun(pr, version, &d.Anomalies)
		if err != nil {
			return err
		}
		blk.Entities = coalesceEntities(flat, &d.Anomalies)
		end, err := pr.Next()
		if err != nil {
			return err
		}
		if end != nil && end.Code == 0 && end.Value.Str == "ENDBLK" {
			var endCommon CommonData
			if err := decodeCommonOnly(pr, version, &endCommon); err != nil {
				return err
			}
			blk.EndCommon = endCommon
		}
		d.Blocks = append(d.Blocks, blk)
	}
}

func readObjects(pr *pushbackReader, d *Drawing, version Version) error {
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		if pair.Value.Str == "ENDSEC" {
			pr.PutBack(*pair)
			return nil
		}
		o, err := decodeObject(pr, version, pair.Value.Str, &d.Anomalies)
		if err != nil {
			return err
		}
		if o != nil {
			d.objects = append(d.objects, o)
		}
	}
}
