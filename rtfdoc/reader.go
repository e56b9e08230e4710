package rtfdoc

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/richtext/core"
	"github.com/tsawler/richtext/model"
)

var (
	ErrEmptyInput    = errors.New("rtf: empty input")
	ErrNotRTF        = errors.New("rtf: input does not start with a group")
	ErrMissingHeader = errors.New("rtf: missing \\rtf header")
)

// Status classifies what the reader found in its input.
type Status int

const (
	// StatusParsed indicates the input was a group and was parsed.
	StatusParsed Status = iota
	// StatusEmptyInput indicates the input produced no tokens.
	StatusEmptyInput
	// StatusNotRTF indicates the input does not open with a group.
	StatusNotRTF
)

func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "Parsed"
	case StatusEmptyInput:
		return "EmptyInput"
	case StatusNotRTF:
		return "NotRTF"
	default:
		return "Unknown"
	}
}

// Result is the outcome of Decode.
type Result struct {
	Document  *model.Document
	Status    Status
	SawHeader bool // an \rtf control word was seen
}

// Read parses RTF data into a Document. It always returns a Document,
// possibly empty. The boolean reports whether an \rtf control word was
// seen anywhere in the input; callers may use it as a validity signal.
func Read(data []byte, opts ...Option) (*model.Document, bool) {
	res := Decode(data, opts...)
	return res.Document, res.SawHeader
}

// ReadStrict parses RTF data and turns every Status other than a parsed
// document with a header into an error.
func ReadStrict(data []byte, opts ...Option) (*model.Document, error) {
	res := Decode(data, opts...)
	switch {
	case res.Status == StatusEmptyInput:
		return nil, ErrEmptyInput
	case res.Status == StatusNotRTF:
		return nil, ErrNotRTF
	case !res.SawHeader:
		return nil, ErrMissingHeader
	}
	return res.Document, nil
}

// Decode parses RTF data and classifies the input.
func Decode(data []byte, opts ...Option) Result {
	tokens := core.Tokenize(data)
	p := newParser(tokens, buildOptions(opts))
	p.run()

	res := Result{Document: p.doc, SawHeader: p.sawHeader, Status: StatusParsed}
	switch {
	case len(tokens) == 0:
		res.Status = StatusEmptyInput
	case tokens[0].Type != core.TokenGroupStart:
		res.Status = StatusNotRTF
	}
	return res
}

// parseMode is the interpretation applied to tokens in the current group
type parseMode int

const (
	modeNormal parseMode = iota
	modeFontTable
	modeColorTable
	modeSkipGroup
)

// ignorableKnown lists the \* destinations that are still interpreted.
var ignorableKnown = map[string]bool{
	"fonttbl":  true,
	"colortbl": true,
	"pn":       true,
}

// skippedDestinations are discarded for the remainder of their group,
// marked with \* or not.
var skippedDestinations = map[string]bool{
	"stylesheet":        true,
	"info":              true,
	"header":            true,
	"footer":            true,
	"headerl":           true,
	"headerr":           true,
	"footerl":           true,
	"footerr":           true,
	"pict":              true,
	"object":            true,
	"field":             true,
	"fldinst":           true,
	"datafield":         true,
	"mmathPr":           true,
	"generator":         true,
	"listtable":         true,
	"listoverridetable": true,
	"rsidtbl":           true,
	"pgdsctbl":          true,
	"latentstyles":      true,
	"pntext":            true,
	"pntxtb":            true,
	"pntxta":            true,
}

// paraState holds paragraph formatting in twips
type paraState struct {
	leftIndent      int
	firstLineIndent int
}

// parserState is the formatting saved on group entry and restored on exit
type parserState struct {
	char model.CharFormat
	para paraState
	uc   int // fallback characters following \uN
}

func defaultState(defaultFont int) parserState {
	char := model.DefaultCharFormat()
	char.FontIndex = defaultFont
	return parserState{char: char, uc: 1}
}

// parser builds a Document from a token sequence
type parser struct {
	opts   options
	tokens []core.Token
	doc    *model.Document

	state parserState
	stack []parserState
	modes []parseMode

	skipDepth int

	// Font table entry being accumulated
	fontID   int
	fontName strings.Builder

	// Color table entry being accumulated
	color             model.Color
	colorHasComponent bool

	decoder *charmap.Charmap

	sawHeader    bool
	pendingList  bool
	pendingBlock bool // the next content opens a new block
	current      *model.Block

	fallback      int  // fallback characters still to discard
	highSurrogate rune // first half of a \u surrogate pair
}

func newParser(tokens []core.Token, opts options) *parser {
	return &parser{
		opts:         opts,
		tokens:       tokens,
		doc:          model.NewDocument(),
		state:        defaultState(0),
		modes:        []parseMode{modeNormal},
		decoder:      latin1,
		pendingBlock: true,
	}
}

func (p *parser) mode() parseMode {
	return p.modes[len(p.modes)-1]
}

func (p *parser) setMode(m parseMode) {
	p.modes[len(p.modes)-1] = m
}

func (p *parser) pushMode(m parseMode) {
	p.modes = append(p.modes, m)
}

func (p *parser) popMode() {
	p.modes = p.modes[:len(p.modes)-1]
	if len(p.modes) == 0 {
		p.modes = append(p.modes, modeNormal)
	}
}

func (p *parser) pushState() {
	p.stack = append(p.stack, p.state)
}

// popState restores the state saved by the matching group start. With an
// empty stack the current state persists.
func (p *parser) popState(pos int) {
	if len(p.stack) == 0 {
		p.opts.logger.Debug("unbalanced group end", "pos", pos)
		return
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// run performs the single forward pass over the tokens
func (p *parser) run() {
	for i := 0; i < len(p.tokens); i++ {
		tok := p.tokens[i]

		if p.mode() == modeSkipGroup {
			p.skip(tok)
			continue
		}

		if tok.Type != core.TokenText && tok.Type != core.TokenHexEscape {
			p.fallback = 0
		}

		switch tok.Type {
		case core.TokenGroupStart:
			i += p.groupStart(i)
		case core.TokenGroupEnd:
			p.groupEnd(tok)
		case core.TokenControlWord:
			p.controlWord(tok)
		case core.TokenText:
			p.text(tok)
		case core.TokenHexEscape:
			p.hexEscape(tok)
		}
	}
	p.finish()
}

// skip consumes a token inside a skipped group
func (p *parser) skip(tok core.Token) {
	switch tok.Type {
	case core.TokenGroupStart:
		p.skipDepth++
	case core.TokenGroupEnd:
		p.skipDepth--
		if p.skipDepth <= 0 {
			p.popMode()
			p.popState(tok.Pos)
		}
	}
}

// enterSkip discards the rest of the current group
func (p *parser) enterSkip(word string, pos int) {
	p.opts.logger.Debug("skipping destination", "word", word, "pos", pos)
	p.skipDepth = 1
}

// groupStart handles '{' at index i and returns how many lookahead tokens
// it consumed.
func (p *parser) groupStart(i int) int {
	p.pushState()

	if i+2 < len(p.tokens) &&
		p.tokens[i+1].IsWord("*") &&
		p.tokens[i+2].Type == core.TokenControlWord &&
		!ignorableKnown[p.tokens[i+2].Word] {
		p.pushMode(modeSkipGroup)
		p.enterSkip(p.tokens[i+2].Word, p.tokens[i+2].Pos)
		return 2
	}

	mode := p.mode()
	if mode == modeFontTable {
		p.fontID = 0
		p.fontName.Reset()
	}
	p.pushMode(mode)
	return 0
}

func (p *parser) groupEnd(tok core.Token) {
	switch p.mode() {
	case modeFontTable:
		p.commitFont()
	case modeColorTable:
		if p.colorHasComponent {
			p.commitColor()
		}
	}
	p.popMode()
	p.popState(tok.Pos)
}

// commitFont stores the accumulated font name under the current id
func (p *parser) commitFont() {
	name := strings.TrimSpace(p.fontName.String())
	p.fontName.Reset()
	name = strings.TrimSpace(strings.TrimSuffix(name, ";"))
	if name == "" {
		return
	}
	p.doc.Fonts.Set(p.fontID, name)
}

func (p *parser) commitColor() {
	p.doc.Colors = append(p.doc.Colors, p.color)
	p.color = model.Color{}
	p.colorHasComponent = false
}

func (p *parser) controlWord(tok core.Token) {
	w := tok.Word
	if w == "rtf" {
		p.sawHeader = true
		return
	}

	switch p.mode() {
	case modeFontTable:
		if w == "f" && tok.HasParam {
			p.fontID = tok.Param
		}
		return
	case modeColorTable:
		p.colorComponent(tok)
		return
	}

	switch w {
	case "fonttbl":
		p.setMode(modeFontTable)
		return
	case "colortbl":
		p.setMode(modeColorTable)
		p.doc.Colors = nil
		p.color = model.Color{}
		p.colorHasComponent = false
		return
	}
	if skippedDestinations[w] {
		if len(p.stack) > 0 {
			p.setMode(modeSkipGroup)
			p.enterSkip(w, tok.Pos)
		}
		return
	}

	p.formatting(tok)
}

func (p *parser) colorComponent(tok core.Token) {
	if !tok.HasParam {
		return
	}
	switch tok.Word {
	case "red":
		p.color.R = clamp(tok.Param)
	case "green":
		p.color.G = clamp(tok.Param)
	case "blue":
		p.color.B = clamp(tok.Param)
	default:
		return
	}
	p.colorHasComponent = true
}

// flag interprets a toggle word: on without a parameter, else param != 0
func flag(tok core.Token) bool {
	return !tok.HasParam || tok.Param != 0
}

// formatting applies a Normal-mode control word
func (p *parser) formatting(tok core.Token) {
	cs := &p.state.char

	switch tok.Word {
	case "deff":
		if tok.HasParam {
			p.doc.DefaultFont = tok.Param
			cs.FontIndex = tok.Param
		}
	case "f":
		if tok.HasParam {
			cs.FontIndex = tok.Param
		}
	case "fs":
		if tok.HasParam {
			cs.FontSize = tok.Param
		}
	case "b":
		cs.Bold = flag(tok)
	case "i":
		cs.Italic = flag(tok)
	case "ul":
		cs.Underline = flag(tok)
	case "ulnone":
		cs.Underline = false
	case "strike":
		cs.Strikethrough = flag(tok)
	case "cf":
		if tok.HasParam {
			cs.ColorIndex = tok.Param
		}
	case "pard":
		uc := p.state.uc
		p.state = defaultState(p.doc.DefaultFont)
		p.state.uc = uc
		p.pendingList = false
		p.block()
	case "par":
		p.closeBlock(p.block())
		p.pendingBlock = true
	case "line":
		p.insert("\n")
	case "tab":
		p.insert("\t")
	case "pnlvlblt":
		p.pendingList = true
	case "ls":
		if tok.HasParam {
			p.pendingList = true
		}
	case "li":
		if tok.HasParam {
			p.state.para.leftIndent = tok.Param
			p.indentOpenBlock()
		}
	case "fi":
		if tok.HasParam {
			p.state.para.firstLineIndent = tok.Param
			p.indentOpenBlock()
		}
	case "uc":
		if tok.HasParam && tok.Param >= 0 {
			p.state.uc = tok.Param
		}
	case "ansicpg":
		if p.opts.codePages && tok.HasParam {
			if cm, ok := charmapFor(tok.Param); ok {
				p.decoder = cm
			}
		}
	case "u":
		if tok.HasParam {
			cp := tok.Param
			if cp < 0 {
				cp += 65536
			}
			p.unicode(rune(cp))
			p.fallback = p.state.uc
		}
	}
}

// unicode inserts one UTF-16 code unit, pairing surrogates
func (p *parser) unicode(cu rune) {
	switch {
	case utf16.IsSurrogate(cu) && cu < 0xDC00:
		p.flushSurrogate()
		p.highSurrogate = cu
	case utf16.IsSurrogate(cu) && p.highSurrogate != 0:
		r := utf16.DecodeRune(p.highSurrogate, cu)
		p.highSurrogate = 0
		p.insert(string(r))
	default:
		p.insert(string(cu))
	}
}

// flushSurrogate emits a replacement for an unpaired high surrogate
func (p *parser) flushSurrogate() {
	if p.highSurrogate != 0 {
		p.highSurrogate = 0
		p.insertRun(string(utf8.RuneError))
	}
}

func (p *parser) text(tok core.Token) {
	switch p.mode() {
	case modeFontTable:
		p.fontText(tok.Text)
		return
	case modeColorTable:
		for _, r := range tok.Text {
			if r == ';' {
				p.commitColor()
			}
		}
		return
	}

	s := tok.Text
	for p.fallback > 0 && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		p.fallback--
	}
	p.insert(s)
}

// fontText accumulates font name text. A semicolon ends the entry, which
// allows several fonts declared in one group.
func (p *parser) fontText(s string) {
	for {
		idx := strings.IndexByte(s, ';')
		if idx < 0 {
			p.fontName.WriteString(s)
			return
		}
		p.fontName.WriteString(s[:idx])
		p.commitFont()
		s = s[idx+1:]
	}
}

func (p *parser) hexEscape(tok core.Token) {
	switch p.mode() {
	case modeFontTable:
		p.fontName.WriteRune(p.decoder.DecodeByte(tok.Byte))
		return
	case modeColorTable:
		return
	}

	if p.fallback > 0 {
		p.fallback--
		return
	}
	p.insert(string(p.decoder.DecodeByte(tok.Byte)))
}

// block returns the block receiving content, opening one if the previous
// block was closed by \par.
func (p *parser) block() *model.Block {
	if p.pendingBlock || p.current == nil {
		p.current = p.doc.AddBlock()
		p.pendingBlock = false
	}
	return p.current
}

// closeBlock records paragraph state on b and applies a pending list marker
func (p *parser) closeBlock(b *model.Block) {
	b.LeftIndent = p.state.para.leftIndent
	b.FirstLineIndent = p.state.para.firstLineIndent
	if p.pendingList {
		b.List = model.BulletMarker()
		p.pendingList = false
	}
}

// indentOpenBlock copies paragraph indents onto the block being filled
func (p *parser) indentOpenBlock() {
	if p.pendingBlock || p.current == nil {
		return
	}
	p.current.LeftIndent = p.state.para.leftIndent
	p.current.FirstLineIndent = p.state.para.firstLineIndent
}

// insert adds text to the current block as a new run
func (p *parser) insert(s string) {
	if s == "" {
		return
	}
	p.flushSurrogate()
	p.insertRun(s)
}

func (p *parser) insertRun(s string) {
	b := p.block()
	run := model.Run{Text: s, Format: p.state.char}
	if name, ok := p.doc.Fonts.Name(run.Format.FontIndex); ok {
		run.FontFamily = name
	}
	if c, ok := p.resolveColor(run.Format.ColorIndex); ok {
		run.Color = &c
	}
	b.Runs = append(b.Runs, run)
}

// resolveColor maps a \cf index to a color table entry
func (p *parser) resolveColor(index int) (model.Color, bool) {
	if index <= 0 {
		return model.Color{}, false
	}
	if p.opts.standardColors {
		if index >= len(p.doc.Colors) {
			return model.Color{}, false
		}
		return p.doc.Colors[index], true
	}
	return p.doc.Colors.Lookup(index)
}

// finish applies end-of-stream rules
func (p *parser) finish() {
	p.flushSurrogate()
	if p.pendingList {
		if last := p.doc.LastBlock(); last != nil {
			last.List = model.BulletMarker()
		}
		p.pendingList = false
	}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
