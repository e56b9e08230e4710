package richtext

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/richtext/format"
	"github.com/tsawler/richtext/rtfdoc"
)

const sampleRTF = `{\rtf1\ansi{\fonttbl{\f0 Arial;}}{\colortbl;\red255\green0\blue0;}` +
	`\f0\cf2 Hello\par\pard\pnlvlblt Bullet text\par}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func hasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestOpenText(t *testing.T) {
	path := writeTemp(t, "sample.rtf", sampleRTF)

	text, warnings, err := Open(path).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if text != "Hello\nBullet text" {
		t.Errorf("Text() = %q", text)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.rtf")).Document()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestOpenNoFilename(t *testing.T) {
	if _, _, err := Open("").Document(); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestDocument(t *testing.T) {
	doc, _, err := FromBytes([]byte(sampleRTF), "").Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.BlockCount() != 2 {
		t.Fatalf("BlockCount() = %d, want 2", doc.BlockCount())
	}
	if doc.Blocks[0].IsListItem() || !doc.Blocks[1].IsListItem() {
		t.Error("list markers not as expected")
	}
	r := doc.Blocks[0].Runs[0]
	if r.FontFamily != "Arial" || r.Color == nil || r.Color.String() != "#ff0000" {
		t.Errorf("run = %+v", r)
	}
}

func TestDetectedFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		file string
		want format.Format
	}{
		{"rtf by content", sampleRTF, "", format.RTF},
		{"rtf content beats extension", sampleRTF, "x.txt", format.RTF},
		{"html by content", "<!DOCTYPE html><p>x</p>", "", format.HTML},
		{"html by extension", "<p>x</p>", "x.htm", format.HTML},
		{"text by extension", "words", "x.txt", format.Text},
		{"text sniffed", "words", "", format.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromBytes([]byte(tt.data), tt.file).DetectedFormat()
			if err != nil {
				t.Fatalf("DetectedFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectedFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name string
		conv *Converter
		want WarningCode
	}{
		{"empty", FromBytes(nil, "x.rtf"), WarningEmptyInput},
		{"whitespace", FromBytes([]byte("\r\n"), "x.rtf"), WarningEmptyInput},
		{"not rtf", FromBytes([]byte("plain words"), "x.rtf"), WarningNotRTF},
		{"missing header", FromBytes([]byte("{plain words}"), "x.rtf"), WarningMissingHeader},
		{"guessed", FromBytes([]byte("plain words"), "notes"), WarningFormatGuessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings, err := tt.conv.Document()
			if err != nil {
				t.Fatalf("Document() error = %v", err)
			}
			if doc == nil {
				t.Fatal("Document() returned nil document")
			}
			if !hasWarning(warnings, tt.want) {
				t.Errorf("warnings %q missing %v", FormatWarnings(warnings), tt.want)
			}
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, _, err := FromBytes([]byte{0x00, 0x01, 0x02, 0x03}, "blob.bin").Document()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Document() error = %v, want ErrUnsupportedFormat", err)
	}

	_, _, err = FromBytes([]byte(sampleRTF), "").Convert(format.Unknown)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Convert(Unknown) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestAsOverridesDetection(t *testing.T) {
	text, _, err := FromBytes([]byte(sampleRTF), "").As(format.Text).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != sampleRTF {
		t.Errorf("forced text format should keep the raw input, got %q", text)
	}
}

func TestHTML(t *testing.T) {
	html, _, err := FromBytes([]byte(sampleRTF), "").HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{
		`<span style="font-family:Arial;color:#ff0000">Hello</span>`,
		"<ul><li>",
		"Bullet text",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() missing %q\n%s", want, html)
		}
	}
}

func TestRTFRoundTrip(t *testing.T) {
	conv := FromBytes([]byte(sampleRTF), "")
	original := MustText(conv.Document())

	out, _, err := conv.RTF()
	if err != nil {
		t.Fatalf("RTF() error = %v", err)
	}
	again, _, err := FromBytes(out, "").Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if !original.Equivalent(again) {
		t.Error("RTF() output does not read back to an equivalent document")
	}
}

func TestHTMLToRTF(t *testing.T) {
	out, _, err := FromBytes([]byte(`<p><b>Bold</b> plain</p><ul><li>item</li></ul>`), "page.html").
		DefaultFont("Georgia").
		Convert(format.RTF)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	s := string(out)
	if !strings.HasPrefix(s, `{\rtf1`) {
		t.Errorf("output is not RTF: %q", s)
	}
	if !strings.Contains(s, `{\f0\fnil Georgia;}`) {
		t.Errorf("default font not applied: %q", s)
	}

	doc, _ := rtfdoc.Read(out)
	if doc.PlainText() != "Bold plain\nitem" {
		t.Errorf("PlainText() = %q", doc.PlainText())
	}
	if !doc.Blocks[1].IsListItem() {
		t.Error("list item lost in conversion")
	}
}

func TestConvertText(t *testing.T) {
	out, _, err := FromBytes([]byte(sampleRTF), "").Convert(format.Text)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if string(out) != "Hello\nBullet text\n" {
		t.Errorf("Convert(Text) = %q", out)
	}
}

func TestTextToRTF(t *testing.T) {
	out, _, err := FromBytes([]byte("line one\r\nline {two}\n"), "notes.txt").RTF()
	if err != nil {
		t.Fatalf("RTF() error = %v", err)
	}
	doc, _ := rtfdoc.Read(out)
	if got := doc.PlainText(); got != "line one\nline {two}" {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestOptionsReachReader(t *testing.T) {
	data := []byte(`{\rtf1\ansicpg1251{\colortbl;\red255\green0\blue0;}\cf1 \'c0}`)

	doc, _, err := FromBytes(data, "").ANSICodePage().StandardColorIndex().Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	r := doc.Blocks[0].Runs[0]
	if r.Text != "А" {
		t.Errorf("Text = %q, want Cyrillic A", r.Text)
	}
	if r.Color == nil || r.Color.String() != "#ff0000" {
		t.Errorf("Color = %v, want #ff0000", r.Color)
	}
}

func TestSkipBoilerplate(t *testing.T) {
	page := []byte(`<html><body><nav><p>Menu</p></nav><p>Content</p></body></html>`)

	text, _, _ := FromBytes(page, "").Text()
	if !strings.Contains(text, "Menu") {
		t.Errorf("Text() without filter = %q", text)
	}
	text, _, _ = FromBytes(page, "").SkipBoilerplate().Text()
	if text != "Content" {
		t.Errorf("Text() with filter = %q, want Content", text)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, _, err := FromBytes([]byte(sampleRTF), "in.rtf").WithLogger(logger).Document(); err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "document read") || !strings.Contains(out, "blocks=2") {
		t.Errorf("log output = %q", out)
	}
}

func TestChainImmutability(t *testing.T) {
	base := FromBytes([]byte("<p>x</p>"), "")
	forced := base.As(format.Text)

	if base.format != format.Unknown {
		t.Error("As() modified the original Converter")
	}
	if forced.format != format.Text {
		t.Error("As() did not set the format on the new Converter")
	}

	base.DefaultFont("Georgia")
	if base.options.defaultFont != rtfdoc.DefaultFontFamily {
		t.Error("DefaultFont() modified the original Converter")
	}
}

func TestMust(t *testing.T) {
	if got := Must(FromBytes([]byte(sampleRTF), "").DetectedFormat()); got != format.RTF {
		t.Errorf("Must() = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(Open("").DetectedFormat())
}

func TestMustTextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustText() should panic on error")
		}
	}()
	MustText(Open("").Text())
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarningMissingHeader, Message: "a"},
		{Code: WarningEmptyInput, Message: "b"},
	}
	if got := FormatWarnings(warnings); got != "missing-header: a; empty-input: b" {
		t.Errorf("FormatWarnings() = %q", got)
	}
	if FormatWarnings(nil) != "" {
		t.Error("FormatWarnings(nil) should be empty")
	}
}

func TestFormats(t *testing.T) {
	if got := Formats(); len(got) != 3 {
		t.Errorf("Formats() = %v", got)
	}
}
