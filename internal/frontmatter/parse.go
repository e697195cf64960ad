package frontmatter

import (
	"errors"
	"strings"

	adrg "github.com/adrg/frontmatter"
)

// Document is a parsed source file.
type Document struct {
	Matter Matter
	// Fields is the full decoded metadata, including unrecognized keys.
	Fields map[string]any
	Body   string
	// Warning is set when metadata was present but could not be decoded.
	Warning *DecodeWarning
}

// Parse splits raw and decodes its metadata. With Optional, a document whose
// delimiter structure is not exactly two lines is still accepted: a leading
// front matter block is recovered if there is one, otherwise all of raw is
// the body.
func Parse(raw string, policy Policy) (*Document, error) {
	parts, err := Split(raw)
	if err != nil {
		if policy != Optional {
			return nil, err
		}
		return parseLoose(raw), nil
	}

	matter, fields, err := Decode(parts.Metadata)
	doc := &Document{Matter: matter, Fields: fields, Body: parts.Body}
	var warn *DecodeWarning
	if errors.As(err, &warn) {
		doc.Warning = warn
	}
	return doc, nil
}

func parseLoose(raw string) *Document {
	var fields map[string]any
	body, err := adrg.Parse(strings.NewReader(raw), &fields)
	if err != nil {
		return &Document{
			Matter:  Matter{},
			Fields:  map[string]any{},
			Body:    raw,
			Warning: &DecodeWarning{Err: err},
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return &Document{Matter: extract(fields), Fields: fields, Body: string(body)}
}
