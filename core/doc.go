// Package core provides the lexical layer of the RTF codec.
//
// The [Lexer] converts a raw RTF byte buffer into a flat sequence of
// [Token] values. It carries no semantic state: groups are reported as
// [TokenGroupStart] and [TokenGroupEnd] without any nesting bookkeeping,
// and control words are reported by name without interpretation.
//
// # Token Types
//
//   - [TokenGroupStart] and [TokenGroupEnd] - the { and } delimiters
//   - [TokenControlWord] - a backslash-prefixed word with an optional signed
//     integer parameter, e.g. \fs24 or \li-360
//   - [TokenText] - a maximal run of literal text
//   - [TokenHexEscape] - an 8-bit character written as \'XX
//
// # Usage
//
// Most callers tokenize a complete buffer at once:
//
//	tokens := core.Tokenize(data)
//
// The [Lexer] type yields the same stream one token at a time:
//
//	lx := core.NewLexer(data)
//	for tok, ok := lx.Next(); ok; tok, ok = lx.Next() {
//	    fmt.Println(tok)
//	}
//
// Tokenization never fails. Malformed input degrades to a best-effort
// token stream: incomplete hex escapes and a trailing lone backslash are
// dropped, and unknown control symbols are passed through as text.
package core
