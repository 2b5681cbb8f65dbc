package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MediaType
		wantErr bool
	}{
		{name: "PDF", input: "application/pdf", want: MediaPDF},
		{name: "DOCX", input: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", want: MediaDOCX},
		{name: "Plain", input: "text/plain", want: MediaText},
		{name: "HTML", input: "text/html", want: MediaHTML},
		{name: "Parameters are not stripped here", input: "text/html; charset=utf-8", wantErr: true},
		{name: "Case sensitive", input: "Text/HTML", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Unknown", input: "application/unknown", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMediaType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ex := New(WithLogger(logger))

	text, err := ex.Extract([]byte("whatever"), "application/unknown")

	assert.Equal(t, "", text)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	var ute *UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "application/unknown", ute.MediaType)

	assert.Contains(t, buf.String(), "Unsupported content type: application/unknown")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestExtract_PlainText(t *testing.T) {
	input := "héllo\r\nwörld\n\n  spaced  "
	text, err := Extract([]byte(input), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, input, text)

	_, err = Extract([]byte{0xff, 0xfe, 'a'}, "text/plain")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrUnsupportedType))
}

func TestExtract_HTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "Paragraphs",
			html: "<p>A</p><p>B</p>",
			want: "A\nB",
		},
		{
			name: "Scripts and styles removed",
			html: `<html><head><title>T</title><style>p{color:red}</style></head>
<body><script>var x = 1;</script><p>Hello <b>bold</b> world</p><noscript>nojs</noscript><!-- note --></body></html>`,
			want: "T\nHello \nbold\n world",
		},
		{
			name: "Entities decoded",
			html: "<div>Fish &amp; Chips</div>",
			want: "Fish & Chips",
		},
		{
			name: "Only whitespace",
			html: "<div>  </div>\n<p>\n</p>",
			want: "",
		},
		{
			name: "Latin-1 meta charset",
			html: "<html><head><meta charset=\"iso-8859-1\"></head><body><p>caf\xe9</p></body></html>",
			want: "caf\u00e9",
		},
		{
			name: "Latin-1 http-equiv",
			html: "<meta http-equiv=\"Content-Type\" content=\"text/html; charset=ISO-8859-1\"><p>na\xefve</p>",
			want: "na\u00efve",
		},
		{
			name: "Undeclared non UTF-8 read as windows-1252",
			html: "<p>\x93quoted\x94</p>",
			want: "\u201cquoted\u201d",
		},
		{
			name: "UTF-8 byte order mark",
			html: "\xef\xbb\xbf<p>caf\u00e9</p>",
			want: "caf\u00e9",
		},
		{
			name: "Valid UTF-8 despite Latin-1 declaration",
			html: "<meta charset=\"iso-8859-1\"><p>caf\u00e9</p>",
			want: "caf\u00e9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract([]byte(tt.html), "text/html")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
			assert.True(t, utf8.ValidString(text))
			assert.NotContains(t, text, "<")
		})
	}
}

func TestExtract_DOCX(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "Two paragraphs",
			body: `<w:p><w:r><w:t>A</w:t></w:r></w:p><w:p><w:r><w:t>B</w:t></w:r></w:p>`,
			want: "A\nB\n",
		},
		{
			name: "Runs tabs and breaks",
			body: `<w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:t>world</w:t><w:tab/><w:t>x</w:t><w:br/><w:t>y</w:t></w:r></w:p>`,
			want: "Hello world\tx\ny\n",
		},
		{
			name: "Empty paragraph",
			body: `<w:p/><w:p><w:r><w:t>B</w:t></w:r></w:p>`,
			want: "\nB\n",
		},
		{
			name: "Table paragraphs skipped",
			body: `<w:p><w:r><w:t>A</w:t></w:r></w:p><w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			want: "A\n",
		},
		{
			name: "Hyperlink runs",
			body: `<w:p><w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink></w:p>`,
			want: "link\n",
		},
		{
			name: "No paragraphs",
			body: `<w:sectPr/>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract(buildDOCX(t, tt.body), string(MediaDOCX))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtract_DOCXBroken(t *testing.T) {
	_, err := Extract([]byte("not a zip"), string(MediaDOCX))
	assert.True(t, errors.Is(err, ErrDecode))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract(buf.Bytes(), string(MediaDOCX))
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestExtract_PDF(t *testing.T) {
	text, err := Extract(buildTextPDF("BT\n/F1 12 Tf\n72 720 Td\n(Hello) Tj\nET"), "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
}

func TestExtract_PDFBroken(t *testing.T) {
	_, err := Extract([]byte("%PDF-1.4\ngarbage"), "application/pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "Tj",
			content: "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
			want:    "Hello World",
		},
		{
			name:    "TJ with word gap",
			content: "BT [(Hel) 20 (lo) -300 (there)] TJ ET",
			want:    "Hello there",
		},
		{
			name:    "Lines via T* and quote",
			content: "BT (one) Tj T* (two) Tj (three) ' 1 2 (four) \" ET",
			want:    "one\ntwo\nthree\nfour",
		},
		{
			name:    "Vertical move starts a line",
			content: "BT (a) Tj 10 0 Td (b) Tj 0 -14 Td (c) Tj ET",
			want:    "ab\nc",
		},
		{
			name:    "Escapes and nesting",
			content: `BT (a\(b\) \\ (nested) \101\102) Tj ET`,
			want:    `a(b) \ (nested) AB`,
		},
		{
			name:    "Hex strings",
			content: "BT <48656C6C6F> Tj <FEFF00E9> Tj ET",
			want:    "Helloé",
		},
		{
			name:    "Inline image skipped",
			content: "BT (x) Tj ET BI /W 1 /H 1 ID \x00(Tj)\xff EI BT (y) Tj ET",
			want:    "xy",
		},
		{
			name:    "Marked content dictionary",
			content: "/Span <</ActualText (z)>> BDC BT (t) Tj ET EMC",
			want:    "t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textFromContentStream([]byte(tt.content)))
		})
	}
}

// buildDOCX packages body as the content of w:body in a minimal DOCX.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="` + wordNS + `"><w:body>` + body + `</w:body></w:document>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildTextPDF creates a one-page PDF with correct xref offsets around the
// given content stream.
func buildTextPDF(stream string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length " + strconv.Itoa(len(stream)) + " >>\nstream\n")
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(padOffset(offsets[i]) + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func padOffset(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}
