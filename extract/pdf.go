package extract

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// A TJ adjustment below this many thousandths of an em is read as a word gap.
const tjSpaceThreshold = -200

var disableConfigDir sync.Once

// extractPDF returns the text of every page in page order, with no separator
// between pages. A page whose content cannot be read contributes "".
func extractPDF(data []byte, logger *slog.Logger) (string, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", decodeError(MediaPDF, "read pdf", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text, err := extractPageText(ctx, pageNr)
		if err != nil {
			logger.Debug("skipping unreadable pdf page", "page", pageNr, "error", err)
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

func extractPageText(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textFromContentStream(content), nil
}

// operand is a value pushed on the content stream operand stack. Only the
// shapes the text operators consume are kept.
type operand struct {
	str    []byte
	isStr  bool
	num    float64
	isNum  bool
	values []operand
}

// textFromContentStream interprets the text-showing operators of a page
// content stream. Glyph codes are read as Latin-1 bytes,
// or UTF-16BE when the string carries a byte order mark.
func textFromContentStream(content []byte) string {
	var (
		sb       strings.Builder
		lx       = &lexer{data: content}
		operands []operand
	)

	newline := func() {
		s := sb.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			sb.WriteByte('\n')
		}
	}
	lastString := func() ([]byte, bool) {
		if n := len(operands); n > 0 && operands[n-1].isStr {
			return operands[n-1].str, true
		}
		return nil, false
	}

	for {
		tok, ok := lx.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokOperator:
			switch tok.text {
			case "Tj":
				if s, ok := lastString(); ok {
					sb.WriteString(decodeTextString(s))
				}
			case "'", "\"":
				newline()
				if s, ok := lastString(); ok {
					sb.WriteString(decodeTextString(s))
				}
			case "TJ":
				if n := len(operands); n > 0 {
					writeTJ(&sb, operands[n-1].values)
				}
			case "T*":
				newline()
			case "Td", "TD":
				if n := len(operands); n >= 2 && operands[n-1].isNum && operands[n-1].num != 0 {
					newline()
				}
			case "BI":
				lx.skipInlineImage()
			}
			operands = operands[:0]
		default:
			operands = append(operands, tok.operand)
		}
	}

	return sb.String()
}

func writeTJ(sb *strings.Builder, values []operand) {
	for _, v := range values {
		switch {
		case v.isStr:
			sb.WriteString(decodeTextString(v.str))
		case v.isNum && v.num < tjSpaceThreshold:
			s := sb.String()
			if s != "" && !strings.HasSuffix(s, " ") {
				sb.WriteByte(' ')
			}
		}
	}
}

func decodeTextString(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
		units := make([]uint16, 0, len(b)/2)
		for i := 0; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}

	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

type tokenKind int

const (
	tokValue tokenKind = iota
	tokOperator
)

type token struct {
	kind    tokenKind
	text    string
	operand operand
}

// lexer walks a content stream one token at a time.
type lexer struct {
	data []byte
	pos  int
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		switch {
		case isWhitespace(c):
			lx.pos++
		case c == '%':
			for lx.pos < len(lx.data) && lx.data[lx.pos] != '\n' && lx.data[lx.pos] != '\r' {
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *lexer) next() (token, bool) {
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.data) {
			return token{}, false
		}

		c := lx.data[lx.pos]
		switch {
		case c == '(':
			return token{operand: operand{str: lx.literalString(), isStr: true}}, true
		case c == '<' && lx.peek(1) == '<':
			lx.skipDict()
			return token{operand: operand{}}, true
		case c == '<':
			return token{operand: operand{str: lx.hexString(), isStr: true}}, true
		case c == '[':
			lx.pos++
			return token{operand: operand{values: lx.array()}}, true
		case c == '/':
			lx.pos++
			name := lx.word()
			return token{operand: operand{}, text: name}, true
		case c == ']' || c == ')' || c == '>' || c == '{' || c == '}':
			lx.pos++
			continue
		}

		w := lx.word()
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			return token{operand: operand{num: f, isNum: true}}, true
		}
		return token{kind: tokOperator, text: w}, true
	}
}

func (lx *lexer) peek(off int) byte {
	if lx.pos+off < len(lx.data) {
		return lx.data[lx.pos+off]
	}
	return 0
}

func (lx *lexer) word() string {
	start := lx.pos
	for lx.pos < len(lx.data) && !isWhitespace(lx.data[lx.pos]) && !isDelimiter(lx.data[lx.pos]) {
		lx.pos++
	}
	if lx.pos == start && lx.pos < len(lx.data) {
		lx.pos++
	}
	return string(lx.data[start:lx.pos])
}

func (lx *lexer) array() []operand {
	var values []operand
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.data) {
			return values
		}
		if lx.data[lx.pos] == ']' {
			lx.pos++
			return values
		}
		tok, ok := lx.next()
		if !ok {
			return values
		}
		if tok.kind == tokValue {
			values = append(values, tok.operand)
		}
	}
}

func (lx *lexer) skipDict() {
	depth := 0
	for lx.pos < len(lx.data) {
		switch {
		case lx.data[lx.pos] == '<' && lx.peek(1) == '<':
			depth++
			lx.pos += 2
		case lx.data[lx.pos] == '>' && lx.peek(1) == '>':
			depth--
			lx.pos += 2
			if depth == 0 {
				return
			}
		case lx.data[lx.pos] == '(':
			lx.literalString()
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) literalString() []byte {
	var out []byte
	lx.pos++ // (
	depth := 1

	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		lx.pos++

		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		case '\\':
			if lx.pos >= len(lx.data) {
				return out
			}
			e := lx.data[lx.pos]
			lx.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if lx.pos < len(lx.data) && lx.data[lx.pos] == '\n' {
					lx.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && lx.pos < len(lx.data); i++ {
						d := lx.data[lx.pos]
						if d < '0' || d > '7' {
							break
						}
						val = val*8 + int(d-'0')
						lx.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func (lx *lexer) hexString() []byte {
	lx.pos++ // <
	var digits []byte
	for lx.pos < len(lx.data) && lx.data[lx.pos] != '>' {
		if c := lx.data[lx.pos]; !isWhitespace(c) {
			digits = append(digits, c)
		}
		lx.pos++
	}
	lx.pos++ // >

	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// skipInlineImage moves past BI ... ID <binary> EI.
func (lx *lexer) skipInlineImage() {
	for {
		tok, ok := lx.next()
		if !ok {
			return
		}
		if tok.kind == tokOperator && tok.text == "ID" {
			break
		}
	}
	lx.pos++ // single whitespace after ID

	for lx.pos+1 < len(lx.data) {
		if lx.data[lx.pos] == 'E' && lx.data[lx.pos+1] == 'I' &&
			lx.pos > 0 && isWhitespace(lx.data[lx.pos-1]) &&
			(lx.pos+2 >= len(lx.data) || isWhitespace(lx.data[lx.pos+2])) {
			lx.pos += 2
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.data)
}
