package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// runStyle is the inline formatting applied to each paragraph run.
type runStyle struct {
	Bold bool
	Size int // half-points
}

var bodyStyle = runStyle{Size: 24}

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var docxParts = []struct {
	name, body string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`},
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
}

// renderDOCX writes a minimal WordprocessingML package with one paragraph
// per non-blank line.
func renderDOCX(text string) ([]byte, error) {
	document, err := documentXML(text)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	for _, part := range docxParts {
		if err := writeZipFile(writer, part.name, []byte(part.body)); err != nil {
			return nil, err
		}
	}
	if err := writeZipFile(writer, "word/document.xml", document); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func documentXML(text string) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)
	for _, line := range lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<w:p><w:r>")
		b.WriteString(bodyStyle.runProps())
		b.WriteString(`<w:t xml:space="preserve">`)
		if err := xml.EscapeText(&b, []byte(line)); err != nil {
			return nil, fmt.Errorf("escape paragraph: %w", err)
		}
		b.WriteString("</w:t></w:r></w:p>")
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.Bytes(), nil
}

func (s runStyle) runProps() string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if s.Bold {
		b.WriteString("<w:b/>")
	}
	if s.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, s.Size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	dst, err := writer.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}
