package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{RTF, "RTF"},
		{HTML, "HTML"},
		{Text, "Text"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{RTF, ".rtf"},
		{HTML, ".html"},
		{Text, ".txt"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"rtf", RTF},
		{"RTF", RTF},
		{".rtf", RTF},
		{"html", HTML},
		{"htm", HTML},
		{"text", Text},
		{"txt", Text},
		{"pdf", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Parse(tt.name); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.rtf", RTF},
		{"document.RTF", RTF},
		{"document.Rtf", RTF},
		{"document.html", HTML},
		{"document.HTML", HTML},
		{"document.htm", HTML},
		{"document.txt", Text},
		{"document.TXT", Text},
		{"document.pdf", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.rtf", RTF},
		{"/path/to/file.html", HTML},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "RTF header",
			data: []byte(`{\rtf1\ansi Hello}`),
			want: RTF,
		},
		{
			name: "RTF with leading whitespace",
			data: []byte("\r\n  {\\rtf1}"),
			want: RTF,
		},
		{
			name: "RTF after byte order mark",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{\rtf1}`)...),
			want: RTF,
		},
		{
			name: "group without rtf word",
			data: []byte(`{\ansi}`),
			want: Unknown,
		},
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "XHTML",
			data: []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml">`),
			want: HTML,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"rtf", []byte(`{\rtf1 x}`), RTF},
		{"html fragment", []byte("<div>hello</div>"), HTML},
		{"plain text", []byte("Hello, World! This is plain text."), Text},
		{"binary", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromContent(tt.data); got != tt.want {
				t.Errorf("DetectFromContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"rtf", `{\rtf1\ansi{\fonttbl{\f0 Arial;}}\f0 Hello\par}`, RTF},
		{"html", "<!DOCTYPE html>\n<html><head><title>Test</title></head><body></body></html>", HTML},
		{"text", "Hello, World! This is plain text.", Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader([]byte(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestDetectFromReader_Error(t *testing.T) {
	if _, err := DetectFromReader(failingReader{}); err == nil {
		t.Error("DetectFromReader() should return the read error")
	}
}

func TestDetectFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		want     Format
	}{
		{"content beats extension", "notes.txt", `{\rtf1 x}`, RTF},
		{"extension when content is inconclusive", "notes.rtf", "plain words", RTF},
		{"sniffed when extension unknown", "notes", "plain words", Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFile(tt.filename, []byte(tt.data)); got != tt.want {
				t.Errorf("DetectFile() = %v, want %v", got, tt.want)
			}
		})
	}
}
