package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const ntriplesFormat = "ntriples"

type ntDecoder struct {
	reader *bufio.Reader
	opts   DecodeOptions
	line   int
	err    error
}

func newNTriplesDecoder(r io.Reader, opts DecodeOptions) TripleDecoder {
	return &ntDecoder{reader: bufio.NewReader(r), opts: opts}
}

// Next returns the next triple. Blank lines and comment lines are skipped.
// After the first error every call returns that error again.
func (d *ntDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	for {
		if err := d.opts.Context.Err(); err != nil {
			d.err = err
			return Triple{}, err
		}
		line, err := d.readLine()
		if err != nil {
			d.err = err
			return Triple{}, err
		}
		d.line++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		triple, column, err := parseNTLine(line)
		if err != nil {
			d.err = newParseError(ntriplesFormat, line, d.line, column, err)
			return Triple{}, d.err
		}
		return triple, nil
	}
}

func (d *ntDecoder) Err() error {
	if d.err == io.EOF {
		return nil
	}
	return d.err
}

func (d *ntDecoder) Close() error {
	return nil
}

// readLine reads one line, enforcing MaxLineBytes while the line is
// still being buffered.
func (d *ntDecoder) readLine() (string, error) {
	var buf []byte
	for {
		chunk, err := d.reader.ReadSlice('\n')
		if d.opts.MaxLineBytes > 0 && len(buf)+len(chunk) > d.opts.MaxLineBytes {
			return "", newParseError(ntriplesFormat, "", d.line+1, 0, ErrLineTooLong)
		}
		buf = append(buf, chunk...)
		switch err {
		case nil:
			return string(buf), nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", io.EOF
		default:
			return "", err
		}
	}
}

// parseNTLine parses a single statement. On failure it also returns the
// 1-based column at which parsing stopped.
func parseNTLine(line string) (Triple, int, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Triple{}, cursor.column(), err
	}
	cursor.skipWS()
	if cursor.peek() != '<' {
		return Triple{}, cursor.column(), cursor.errorf("expected IRI predicate")
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Triple{}, cursor.column(), err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Triple{}, cursor.column(), err
	}
	if !cursor.consume('.') {
		return Triple{}, cursor.column(), cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if !cursor.atEnd() && cursor.peek() != '#' {
		return Triple{}, cursor.column(), cursor.errorf("unexpected content after '.'")
	}
	return Triple{S: subject, P: predicate, O: object}, 0, nil
}

type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) atEnd() bool { return c.pos >= len(c.input) }

func (c *ntCursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.input[c.pos]
}

func (c *ntCursor) column() int { return c.pos + 1 }

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseSubject() (Term, error) {
	return c.parseTerm(false)
}

func (c *ntCursor) parseObject() (Term, error) {
	return c.parseTerm(true)
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.atEnd() {
		return nil, c.errorf("unexpected end of line")
	}
	rest := c.input[c.pos:]
	switch {
	case strings.HasPrefix(rest, "<<"):
		return nil, ErrQuotedTriple
	case rest[0] == '<':
		return c.parseIRI()
	case strings.HasPrefix(rest, "_:"):
		return c.parseBlankNode()
	case rest[0] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed as subject")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token %q", rest[0])
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var builder strings.Builder
	start := c.pos
	escaped := false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch == '>':
			value := c.input[start:c.pos]
			if escaped {
				value = builder.String()
			}
			c.pos++
			return IRI{Value: value}, nil
		case ch == '\\':
			if !escaped {
				builder.WriteString(c.input[start:c.pos])
				escaped = true
			}
			r, err := c.parseUCHAR()
			if err != nil {
				return IRI{}, err
			}
			builder.WriteRune(r)
			continue
		case ch <= 0x20, ch == '<', ch == '"', ch == '{', ch == '}', ch == '|', ch == '^', ch == '`':
			return IRI{}, c.errorf("invalid character %q in IRI", ch)
		}
		if escaped {
			builder.WriteByte(ch)
		}
		c.pos++
	}
	return IRI{}, c.errorf("unterminated IRI")
}

// parseUCHAR decodes \uXXXX or \UXXXXXXXX at the cursor.
func (c *ntCursor) parseUCHAR() (rune, error) {
	if c.pos+1 >= len(c.input) {
		return 0, c.errorf("unterminated escape")
	}
	var width int
	switch c.input[c.pos+1] {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, c.errorf("invalid escape '\\%c'", c.input[c.pos+1])
	}
	digits := c.pos + 2
	if digits+width > len(c.input) {
		return 0, c.errorf("truncated unicode escape")
	}
	var value rune
	for i := digits; i < digits+width; i++ {
		digit, ok := hexValue(c.input[i])
		if !ok {
			return 0, c.errorf("invalid hex digit %q in unicode escape", c.input[i])
		}
		value = value<<4 | rune(digit)
	}
	if value > utf8.MaxRune || (value >= 0xD800 && value <= 0xDFFF) {
		return 0, c.errorf("invalid code point U+%X", value)
	}
	c.pos = digits + width
	return value, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += len("_:")
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == ' ' || ch == '\t' || ch == '<' || ch == '"' {
			break
		}
		// A trailing '.' terminates the statement rather than the label.
		if ch == '.' && (c.pos+1 == len(c.input) || isStatementGap(c.input[c.pos+1])) {
			break
		}
		c.pos++
	}
	label := c.input[start:c.pos]
	if label == "" {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	if !IsBlankNodeLabel(label) {
		return BlankNode{}, c.errorf("invalid blank node label %q", label)
	}
	return BlankNode{ID: label}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.pos++ // opening quote
	var builder strings.Builder
	closed := false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '"' {
			c.pos++
			closed = true
			break
		}
		if ch != '\\' {
			builder.WriteByte(ch)
			c.pos++
			continue
		}
		if c.pos+1 >= len(c.input) {
			return Literal{}, c.errorf("unterminated escape")
		}
		switch next := c.input[c.pos+1]; next {
		case 'u', 'U':
			r, err := c.parseUCHAR()
			if err != nil {
				return Literal{}, err
			}
			builder.WriteRune(r)
			continue
		case 't':
			builder.WriteByte('\t')
		case 'b':
			builder.WriteByte('\b')
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 'f':
			builder.WriteByte('\f')
		case '"', '\'', '\\':
			builder.WriteByte(next)
		default:
			return Literal{}, c.errorf("invalid escape '\\%c'", next)
		}
		c.pos += 2
	}
	if !closed {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical := builder.String()

	rest := c.input[c.pos:]
	switch {
	case strings.HasPrefix(rest, "@"):
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isStatementGap(c.input[c.pos]) && c.input[c.pos] != '.' {
			c.pos++
		}
		lang := c.input[start:c.pos]
		if !isLangTag(lang) {
			return Literal{}, c.errorf("invalid language tag %q", lang)
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	case strings.HasPrefix(rest, "^^"):
		c.pos += 2
		if c.peek() != '<' {
			return Literal{}, c.errorf("expected datatype IRI")
		}
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func isStatementGap(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '#':
		return true
	default:
		return false
	}
}

// isLangTag accepts [a-zA-Z]+ ('-' [a-zA-Z0-9]+)*.
func isLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, part := range strings.Split(tag, "-") {
		if part == "" {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			letter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
			if i == 0 && !letter {
				return false
			}
			if !letter && !(ch >= '0' && ch <= '9') {
				return false
			}
		}
	}
	return true
}

func hexValue(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	default:
		return 0, false
	}
}

type ntEncoder struct {
	writer *bufio.Writer
	line   strings.Builder
	err    error
}

func newNTriplesEncoder(w io.Writer) TripleEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w)}
}

// Write emits one statement terminated by " .\n".
func (e *ntEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	switch t.S.(type) {
	case IRI, BlankNode:
	default:
		return fmt.Errorf("ntriples: subject must be an IRI or blank node, got %T", t.S)
	}
	if t.P.Value == "" || t.O == nil {
		return fmt.Errorf("ntriples: missing statement fields")
	}

	e.line.Reset()
	writeTerm(&e.line, t.S)
	e.line.WriteByte(' ')
	writeIRI(&e.line, t.P)
	e.line.WriteByte(' ')
	writeTerm(&e.line, t.O)
	e.line.WriteString(" .\n")

	if _, err := e.writer.WriteString(e.line.String()); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.writer.Flush(); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

func writeTerm(b *strings.Builder, term Term) {
	switch value := term.(type) {
	case IRI:
		writeIRI(b, value)
	case BlankNode:
		b.WriteString("_:")
		b.WriteString(value.ID)
	case Literal:
		writeLiteral(b, value)
	}
}

func writeIRI(b *strings.Builder, iri IRI) {
	b.WriteByte('<')
	for i := 0; i < len(iri.Value); i++ {
		ch := iri.Value[i]
		switch {
		case ch <= 0x20, ch == '<', ch == '>', ch == '"', ch == '{', ch == '}',
			ch == '|', ch == '^', ch == '`', ch == '\\':
			fmt.Fprintf(b, "\\u%04X", ch)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('>')
}

func writeLiteral(b *strings.Builder, l Literal) {
	b.WriteByte('"')
	for i := 0; i < len(l.Lexical); i++ {
		switch ch := l.Lexical[i]; ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if ch < 0x20 || ch == 0x7f {
				fmt.Fprintf(b, "\\u%04X", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte('"')
	switch {
	case l.Lang != "":
		b.WriteByte('@')
		b.WriteString(l.Lang)
	case l.Datatype.Value != "":
		b.WriteString("^^")
		writeIRI(b, l.Datatype)
	}
}
