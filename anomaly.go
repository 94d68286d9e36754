// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Anomalies recorded while reading a drawing. None of these abort the
// read; they flag situations the Format tolerates but that a caller
// inspecting the result may want to know about.
const (
	// AnoUnknownSection is reported when a top-level SECTION name is not
	// one of HEADER/CLASSES/TABLES/BLOCKS/ENTITIES/OBJECTS/THUMBNAILIMAGE.
	AnoUnknownSection = "unknown section swallowed"

	// AnoUnknownRecordType is reported when a record type inside a known
	// section has no schema entry.
	AnoUnknownRecordType = "unknown record type swallowed"

	// AnoDimensionSubclassDropped is reported when a DIMENSION record's
	// subclass marker does not match any known sub-schema; the whole
	// dimension is discarded.
	AnoDimensionSubclassDropped = "DIMENSION with unrecognized subclass marker dropped"

	// AnoDuplicateTableName names the case of two records in the same table
	// sharing a name. The reader does not record it: same-named records
	// are all kept in read order and all written back.
	AnoDuplicateTableName = "duplicate name in table, first occurrence kept"

	// AnoDanglingPointer names the case of a pointer field that resolves to
	// no record in the drawing. No code path records it; Drawing.Resolve
	// reports a miss through its boolean result.
	AnoDanglingPointer = "pointer field does not resolve to any record"

	// AnoTruncatedCompositeSequence is reported when a composite entity
	// (POLYLINE, or INSERT with HasAttributes set) is followed by anything
	// other than a SEQEND once its child run ends, including end-of-section.
	AnoTruncatedCompositeSequence = "composite entity sequence not terminated by SEQEND"

	// AnoSectionParsePanic is reported when a section's parser panics;
	// the section is skipped and parsing continues with the rest of the
	// file instead of aborting the whole read.
	AnoSectionParsePanic = "section parser panicked, section skipped"
)

// addAnomaly appends the given anomaly to the drawing's anomaly list,
// skipping an exact duplicate of the most recently recorded one. The
// section and thumbnail readers record through it; the record decoders
// and the coalescer append to the list directly, without this check.
func (d *Drawing) addAnomaly(anomaly string) {
	n := len(d.Anomalies)
	if n > 0 && d.Anomalies[n-1] == anomaly {
		return
	}
	d.Anomalies = append(d.Anomalies, anomaly)
}
