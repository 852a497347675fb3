// Package extract converts uploaded document bytes into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"ezra/internal/util"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC   = "application/msword"
	MimePlain = "text/plain"
)

// MinWords is the minimum word count for extracted text to count as a real
// document; anything shorter is treated as an extraction failure.
const MinWords = 100

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoExtractableText = errors.New("no extractable text found in document")
	ErrTextTooShort      = errors.New("extracted text is too short to analyze")
)

// Text extracts plain text from the given document bytes. The returned text
// is sanitized and guaranteed to contain at least MinWords words.
func Text(data []byte, mimeType string) (string, error) {
	var (
		text string
		err  error
	)
	switch normalizeMime(mimeType) {
	case MimePDF:
		text, err = fromPDF(data)
	case MimeDOCX:
		text, err = fromDOCX(data)
	case MimePlain:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if err != nil {
		return "", err
	}
	text = util.SanitizeText(text)
	if text == "" {
		return "", ErrNoExtractableText
	}
	if len(strings.Fields(text)) < MinWords {
		return "", ErrTextTooShort
	}
	return text, nil
}

// Supported reports whether the mime type has an extractor.
func Supported(mimeType string) bool {
	switch normalizeMime(mimeType) {
	case MimePDF, MimeDOCX, MimePlain:
		return true
	}
	return false
}

func normalizeMime(mimeType string) string {
	m, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(m))
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	return buf.String(), nil
}

// fromDOCX walks word/document.xml inside the docx zip and concatenates the
// text runs, with paragraph breaks preserved. A docx file is plain
// WordprocessingML, so no dedicated library is needed.
func fromDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("%w: docx missing word/document.xml", ErrUnsupportedFormat)
	}
	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open docx document.xml: %w", err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
