package mks

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"
)

// si --xmlapi response document. Fields are looked up by name, so the
// order in which si emits them does not matter.
type xmlResponse struct {
	XMLName      xml.Name      `xml:"Response"`
	Command      string        `xml:"command,attr"`
	Version      string        `xml:"version,attr"`
	WorkItems    []xmlWorkItem `xml:"WorkItems>WorkItem"`
	Exception    *xmlException `xml:"Exception"`
	AppException *xmlException `xml:"App-Exception"`
}

type xmlException struct {
	Class   string `xml:"class,attr"`
	Message string `xml:"Message"`
}

type xmlWorkItem struct {
	ID        string        `xml:"id,attr"`
	ParentID  string        `xml:"parentID,attr"`
	ModelType string        `xml:"modelType,attr"`
	Fields    []xmlField    `xml:"Field"`
	Exception *xmlException `xml:"Exception"`
}

type xmlField struct {
	Name  string    `xml:"name,attr"`
	Value *xmlValue `xml:"Value"`
	Item  *xmlItem  `xml:"Item"`
}

type xmlValue struct {
	DataType string `xml:"dataType,attr"`
	Text     string `xml:",chardata"`
}

type xmlItem struct {
	ID        string     `xml:"id,attr"`
	ModelType string     `xml:"modelType,attr"`
	Fields    []xmlField `xml:"Field"`
}

func (r *xmlResponse) exception() *xmlException {
	if r.Exception != nil {
		return r.Exception
	}
	return r.AppException
}

func findField(fields []xmlField, names ...string) *xmlField {
	for _, name := range names {
		for i := range fields {
			if strings.EqualFold(fields[i].Name, name) {
				return &fields[i]
			}
		}
	}
	return nil
}

// text returns the field's value, or the id of its item when it holds a reference.
func (f *xmlField) text() string {
	if f == nil {
		return ""
	}
	if f.Value != nil {
		return strings.TrimSpace(f.Value.Text)
	}
	if f.Item != nil {
		return strings.TrimSpace(f.Item.ID)
	}
	return ""
}

func fieldText(fields []xmlField, names ...string) string {
	return findField(fields, names...).text()
}

func decodeResponse(data []byte) (*xmlResponse, error) {
	var resp xmlResponse
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// charsetReader accepts the single-byte encodings si uses on Windows hosts.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1", "windows-1252", "cp1252", "us-ascii":
		raw, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 0, len(raw))
		for _, b := range raw {
			buf = utf8.AppendRune(buf, rune(b))
		}
		return bytes.NewReader(buf), nil
	}
	return nil, &unsupportedCharsetError{charset: charset}
}

type unsupportedCharsetError struct {
	charset string
}

func (e *unsupportedCharsetError) Error() string {
	return "unsupported charset " + e.charset
}
