package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// ExtractText returns the visible text of a .docx archive. Paragraphs end
// with a newline and tab elements become tab characters; table cells are
// read in document order.
func ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Message: "not a zip archive", Cause: err}
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &ReadError{Message: "failed to open word/document.xml", Cause: err}
		}
		defer func() { _ = rc.Close() }()
		return extractBodyText(rc)
	}
	return "", &ReadError{Message: "word/document.xml not found"}
}

// ExtractTextFile reads path and returns its visible text.
func ExtractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Message: "failed to read " + path, Cause: err}
	}
	return ExtractText(data)
}

func extractBodyText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    strings.Builder
		inText bool
		inTabs bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &ReadError{Message: "invalid document xml", Cause: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tabs":
				inTabs = true
			case "tab":
				// w:tab inside w:tabs is a tab stop definition, not content.
				if !inTabs {
					out.WriteByte('\t')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				inTabs = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}
