package core

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenGroupStart  TokenType = iota // {
	TokenGroupEnd                     // }
	TokenControlWord                  // \b, \fs24, \li-360, \*
	TokenText                         // literal text
	TokenHexEscape                    // \'e9
)

func (t TokenType) String() string {
	switch t {
	case TokenGroupStart:
		return "GroupStart"
	case TokenGroupEnd:
		return "GroupEnd"
	case TokenControlWord:
		return "ControlWord"
	case TokenText:
		return "Text"
	case TokenHexEscape:
		return "HexEscape"
	default:
		return "Unknown"
	}
}

// NonBreakingSpace is the text produced by the \~ control symbol.
const NonBreakingSpace = "\u00a0"

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Word     string // control word name, without the backslash
	Param    int    // numeric parameter, valid when HasParam is set
	HasParam bool
	Text     string // literal text, Latin-1 widened to UTF-8
	Byte     byte   // value of a hex escape
	Pos      int    // byte offset of the token in the input
}

// String returns a compact human-readable form of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenGroupStart:
		return "{"
	case TokenGroupEnd:
		return "}"
	case TokenControlWord:
		if t.HasParam {
			return fmt.Sprintf("\\%s%d", t.Word, t.Param)
		}
		return "\\" + t.Word
	case TokenText:
		return strconv.Quote(t.Text)
	case TokenHexEscape:
		return fmt.Sprintf("\\'%02x", t.Byte)
	default:
		return "?"
	}
}

// IsWord reports whether the token is the control word name.
func (t Token) IsWord(name string) bool {
	return t.Type == TokenControlWord && t.Word == name
}

// Lexer performs lexical analysis of RTF content
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer creates a new lexer over data. The lexer does not copy data,
// so the caller must not modify it while tokens are being produced.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Tokenize converts data into its complete token sequence.
func Tokenize(data []byte) []Token {
	l := NewLexer(data)
	tokens := make([]Token, 0, len(data)/4+1)
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. The boolean is false once the input is
// exhausted.
func (l *Lexer) Next() (Token, bool) {
	for l.pos < len(l.data) {
		start := l.pos
		b := l.data[l.pos]

		switch b {
		case '{':
			l.pos++
			return Token{Type: TokenGroupStart, Pos: start}, true
		case '}':
			l.pos++
			return Token{Type: TokenGroupEnd, Pos: start}, true
		case '\\':
			if tok, ok := l.readEscape(); ok {
				return tok, true
			}
			// Dropped escape, keep scanning
		case '\r', '\n':
			// Bare line breaks carry no meaning in RTF
			l.pos++
		default:
			return l.readText(), true
		}
	}
	return Token{}, false
}

// readEscape reads everything introduced by a backslash. It returns false
// when the escape produces no token.
func (l *Lexer) readEscape() (Token, bool) {
	start := l.pos
	l.pos++ // backslash
	if l.pos >= len(l.data) {
		return Token{}, false
	}

	b := l.data[l.pos]
	if isLetter(b) {
		return l.readControlWord(start), true
	}

	l.pos++
	switch b {
	case '\'':
		return l.readHexEscape(start)
	case '\r', '\n':
		return Token{Type: TokenControlWord, Word: "par", Pos: start}, true
	case '~':
		return Token{Type: TokenText, Text: NonBreakingSpace, Pos: start}, true
	case '*':
		return Token{Type: TokenControlWord, Word: "*", Pos: start}, true
	default:
		// Control symbols such as \\ \{ \} pass through as literal text
		return Token{Type: TokenText, Text: string(rune(b)), Pos: start}, true
	}
}

// readHexEscape reads the two hex digits of a \'XX escape. The escape is
// dropped when either digit is missing or malformed.
func (l *Lexer) readHexEscape(start int) (Token, bool) {
	if l.pos+1 >= len(l.data) {
		l.pos = len(l.data)
		return Token{}, false
	}
	hi, okHi := hexValue(l.data[l.pos])
	lo, okLo := hexValue(l.data[l.pos+1])
	l.pos += 2
	if !okHi || !okLo {
		return Token{}, false
	}
	return Token{Type: TokenHexEscape, Byte: hi<<4 | lo, Pos: start}, true
}

// readControlWord reads a control word name, its optional signed numeric
// parameter and at most one delimiting space.
func (l *Lexer) readControlWord(start int) Token {
	nameStart := l.pos
	for l.pos < len(l.data) && isLetter(l.data[l.pos]) {
		l.pos++
	}
	tok := Token{
		Type: TokenControlWord,
		Word: string(l.data[nameStart:l.pos]),
		Pos:  start,
	}

	if l.pos < len(l.data) && (l.data[l.pos] == '-' || isDigit(l.data[l.pos])) {
		numStart := l.pos
		if l.data[l.pos] == '-' {
			l.pos++
		}
		for l.pos < len(l.data) && isDigit(l.data[l.pos]) {
			l.pos++
		}
		tok.HasParam = true
		// A bare "-" or an out-of-range number yields 0
		if n, err := strconv.Atoi(string(l.data[numStart:l.pos])); err == nil {
			tok.Param = n
		}
	}

	if l.pos < len(l.data) && l.data[l.pos] == ' ' {
		l.pos++
	}
	return tok
}

// readText collects a maximal run of literal bytes.
func (l *Lexer) readText() Token {
	start := l.pos
	var sb strings.Builder
	for l.pos < len(l.data) && !isSpecial(l.data[l.pos]) {
		sb.WriteRune(rune(l.data[l.pos]))
		l.pos++
	}
	return Token{Type: TokenText, Text: sb.String(), Pos: start}
}

// isSpecial reports whether b terminates a text run
func isSpecial(b byte) bool {
	return b == '{' || b == '}' || b == '\\' || b == '\r' || b == '\n'
}

// isLetter checks if byte is an ASCII letter
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit checks if byte is a digit
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// hexValue converts a hex digit to its value
func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
