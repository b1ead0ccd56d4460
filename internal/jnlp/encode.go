package jnlp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
)

const indent = "   "

// Marshal renders d as an indented XML document with declaration.
func (d *Descriptor) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode jnlp: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode jnlp: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteTo implements io.WriterTo.
func (d *Descriptor) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Parse reads a descriptor previously written by Marshal, or any JNLP file
// using the same subset of elements.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse jnlp: %w", err)
	}
	return &d, nil
}

// OutputPath returns the descriptor path for a feature archive: same
// directory, with the last three characters of the file name ("jar")
// replaced by "jnlp".
func OutputPath(archivePath string) string {
	dir, name := filepath.Split(archivePath)
	if len(name) < 3 {
		return filepath.Join(dir, name+".jnlp")
	}
	return filepath.Join(dir, name[:len(name)-3]+"jnlp")
}
