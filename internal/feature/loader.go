// Package feature reads the feature.xml manifest out of an Eclipse feature
// archive.
package feature

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
)

// ManifestName is the archive entry holding the feature manifest.
const ManifestName = "feature.xml"

var (
	// ErrArchiveRead is returned when the archive is missing, unreadable or corrupt.
	ErrArchiveRead = errors.New("archive read error")
	// ErrManifestNotFound is returned when the archive has no feature.xml entry.
	ErrManifestNotFound = errors.New("feature.xml not found")
	// ErrManifestParse is returned when feature.xml is not well-formed XML.
	ErrManifestParse = errors.New("feature.xml parse error")
)

// Extract opens archivePath and decodes the first entry named feature.xml.
// Entries are scanned in stored order and the scan stops at the first match.
func Extract(archivePath string) (*Feature, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrArchiveRead, archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != ManifestName {
			continue
		}
		return decodeEntry(f)
	}
	return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, archivePath)
}

func decodeEntry(f *zip.File) (*Feature, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrArchiveRead, f.Name, err)
	}
	defer rc.Close()

	// Read the entry fully first so a truncated or corrupt entry is reported
	// as an archive error rather than as malformed XML.
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrArchiveRead, f.Name, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a feature.xml stream. No DTD or schema is enforced and
// unknown elements and attributes are ignored.
func Decode(r io.Reader) (*Feature, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var feat Feature
	if err := dec.Decode(&feat); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}
	if err := checkEpilog(dec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}
	return &feat, nil
}

// checkEpilog reads the rest of the document after the root element. Only
// whitespace, comments and processing instructions may follow it.
func checkEpilog(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("line %d: text after root element", lineOf(dec))
			}
		case xml.StartElement:
			return fmt.Errorf("line %d: element <%s> after root element", lineOf(dec), t.Name.Local)
		default:
			return fmt.Errorf("line %d: unexpected %T after root element", lineOf(dec), tok)
		}
	}
}

func lineOf(dec *xml.Decoder) int {
	line, _ := dec.InputPos()
	return line
}

// charsetReader handles the non-UTF-8 encodings Eclipse tooling commonly
// writes into the XML declaration (ISO-8859-1, windows-1252).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
