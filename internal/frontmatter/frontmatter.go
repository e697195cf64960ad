// Package frontmatter separates the metadata block of a source file from its
// body and decodes the keys the content pipeline understands.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter marks the start and end of the metadata block.
const Delimiter = "---\n"

// ErrMalformed indicates that a document does not contain exactly two
// front matter delimiter lines.
var ErrMalformed = errors.New("malformed document: front matter must be enclosed by exactly two delimiter lines")

// Parts are the three sections of a document split on Delimiter.
type Parts struct {
	Preamble string
	Metadata string
	Body     string
}

// String reassembles the document with the delimiters reinserted.
func (p Parts) String() string {
	return p.Preamble + Delimiter + p.Metadata + Delimiter + p.Body
}

// Split divides raw into preamble, metadata and body. Metadata is returned
// untrimmed so that String reconstructs raw.
func Split(raw string) (Parts, error) {
	chunks := strings.Split(raw, Delimiter)
	if len(chunks) != 3 {
		return Parts{}, fmt.Errorf("%w: found %d", ErrMalformed, len(chunks)-1)
	}
	return Parts{Preamble: chunks[0], Metadata: chunks[1], Body: chunks[2]}, nil
}

// Policy decides what happens when a document lacks valid delimiters.
type Policy int

const (
	// Required treats a broken delimiter structure as ErrMalformed.
	Required Policy = iota
	// Optional treats the input as body with empty metadata instead.
	Optional
)

func (p Policy) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "required":
		return Required, nil
	case "optional":
		return Optional, nil
	default:
		return Required, fmt.Errorf("unknown front matter policy %q", s)
	}
}
