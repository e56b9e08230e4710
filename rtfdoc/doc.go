// Package rtfdoc reads and writes Rich Text Format.
//
// [Read] parses an RTF byte buffer into a [model.Document] and [Write]
// serializes a Document back to canonical RTF. The two never interact
// directly; the Document is the only interface between them.
//
// # Reading
//
//	doc, sawHeader := rtfdoc.Read(data)
//	if !sawHeader {
//	    // not RTF, or truncated before \rtf
//	}
//
// Reading never fails. Unknown control words are ignored, destinations the
// reader does not model (style sheets, pictures, fields, headers and
// footers, list tables, document info) are discarded, and unbalanced group
// ends are tolerated. Use [Decode] to learn whether the input was empty or
// did not look like RTF at all, or [ReadStrict] to get those cases as
// errors.
//
// The reader interprets character formatting (\b \i \ul \strike \f \fs
// \cf), paragraph breaks (\par \pard \line \tab), bullet list markers
// (\pnlvlblt and \ls) and Unicode escapes (\u with \uc fallback skipping).
// Consecutive bulleted paragraphs are not merged into one list; each block
// carries its own marker.
//
// # Writing
//
//	data := rtfdoc.Write(doc)
//
// The writer emits a font table, a color table and one formatting group per
// run. Output is 7-bit ASCII; wider characters use \uN? escapes.
//
// # Color Indexing
//
// By default \cfN resolves to the Nth color table entry counting from 1,
// so the auto entry declared by a leading ";" occupies index 1 as black.
// RTF itself counts the auto entry as 0. The writer uses the same
// arithmetic as the reader so that Read(Write(doc)) is stable. Pass
// [WithStandardColorIndex] to both sides for RTF-conformant indices.
package rtfdoc
