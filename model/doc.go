// Package model provides the in-memory rich-text document that the RTF
// codec reads into and writes from.
//
// The types in this package are passive: they carry no parsing or
// rendering logic. The rtfdoc reader builds a [Document] in a single
// forward pass and the rtfdoc writer serializes one; the htmldoc package
// renders and parses the same structure.
//
// # Document Structure
//
// A [Document] is an ordered sequence of [Block] values, one per
// paragraph, together with the font and color tables that were declared
// by the source:
//
//	doc := model.NewDocument()
//	b := doc.AddBlock()
//	b.AddRun("Hello", model.DefaultCharFormat())
//
// Each [Block] holds [Run] values. A run is a non-empty text span with a
// [CharFormat] snapshot and the font family and color that format resolved
// to when the run was created. A block may carry a [ListMarker] when it is
// a bulleted list item; only a single disc style at level 1 is modeled.
//
// # Equivalence
//
// Readers never merge adjacent runs, so two documents that present the same
// content may differ in how text is split. [Document.Equivalent] compares
// documents after coalescing runs with identical presentation.
package model
