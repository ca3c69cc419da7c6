package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-roaster/internal/shared/metrics"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for media types other than PDF and DOCX.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNoText means the document parsed but held no readable text.
	ErrNoText = errors.New("no text found in document")
)

// Error reports a failed extraction for one document format.
type Error struct {
	Format string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to extract text from %s file", e.Format)
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the user-facing form of the error.
func (e *Error) Message() string {
	return fmt.Sprintf("Failed to extract text from %s file", e.Format)
}

// IsAllowedMimeType reports whether mimeType is exactly PDF or DOCX.
func IsAllowedMimeType(mimeType string) bool {
	return mimeType == MimePDF || mimeType == MimeDOCX
}

// FormatName returns "PDF" or "DOCX" for an allowed media type.
func FormatName(mimeType string) string {
	switch mimeType {
	case MimePDF:
		return "PDF"
	case MimeDOCX:
		return "DOCX"
	default:
		return ""
	}
}

// ExtractFile reads the document at path. DOCX files are opened by path,
// PDFs are read into memory first.
func ExtractFile(ctx context.Context, path string, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch mimeType {
	case MimePDF:
		data, err := os.ReadFile(path)
		if err != nil {
			return observe(mimeType, "", &Error{Format: "PDF", Err: err})
		}
		return finish(mimeType, extractPDF, data)
	case MimeDOCX:
		r, err := docx.ReadDocxFile(path)
		if err != nil {
			return observe(mimeType, "", &Error{Format: "DOCX", Err: err})
		}
		defer r.Close()
		text := stripDocxXML(r.Editable().GetContent())
		return observe(mimeType, text, checkText("DOCX", text))
	default:
		return "", ErrUnsupportedType
	}
}

// ExtractBytes extracts text from an in-memory payload.
func ExtractBytes(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch mimeType {
	case MimePDF:
		return finish(mimeType, extractPDF, data)
	case MimeDOCX:
		return finish(mimeType, extractDOCX, data)
	default:
		return "", ErrUnsupportedType
	}
}

func finish(mimeType string, fn func([]byte) (string, error), data []byte) (string, error) {
	format := FormatName(mimeType)
	text, err := fn(data)
	if err != nil {
		return observe(mimeType, "", &Error{Format: format, Err: err})
	}
	return observe(mimeType, text, checkText(format, text))
}

func checkText(format, text string) error {
	if strings.TrimSpace(text) == "" {
		return &Error{Format: format, Err: ErrNoText}
	}
	return nil
}

func observe(mimeType, text string, err error) (string, error) {
	format := strings.ToLower(FormatName(mimeType))
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrNoText) {
			outcome = "empty"
		}
		metrics.IncExtraction(format, outcome)
		return "", err
	}
	metrics.IncExtraction(format, "ok")
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer r.Close()
	return stripDocxXML(r.Editable().GetContent()), nil
}

// stripDocxXML keeps character data from WordprocessingML, breaking lines at
// paragraph and explicit break elements.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(buf.String())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
