package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/karnival/limonite/internal/frontmatter"
)

// DefaultURLPrefix is the path segment posts are published under.
const DefaultURLPrefix = "p"

// ErrInvalidFilename is returned when a post file name is not of the form
// YYYY-MM-DD-SSS-slug.
var ErrInvalidFilename = errors.New("invalid post filename: want YYYY-MM-DD-SSS-slug")

var filenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(\d{3})-(.+)$`)

// Identity is the part of a post derived from its file name.
type Identity struct {
	Date     string
	Sequence uint8
	Slug     string
}

// ParseFilename extracts the identity from a file name stem (extension
// already removed). The whole stem must match.
func ParseFilename(stem string) (Identity, error) {
	m := filenamePattern.FindStringSubmatch(stem)
	if len(m) != 4 {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidFilename, stem)
	}
	seq, err := strconv.ParseUint(m[2], 10, 8)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: sequence %s out of range in %q", ErrInvalidFilename, m[2], stem)
	}
	return Identity{Date: m[1], Sequence: uint8(seq), Slug: m[3]}, nil
}

// Post is a fully built content unit. It is not modified after construction.
type Post struct {
	Title       string
	Slug        string
	Content     string // rendered HTML
	Date        string
	Sequence    uint8
	RelativeURL string
	Layout      string
	SourcePath  string
}

// NewPost assembles a post from its identity and decoded metadata. Without a
// title key the title falls back to the slug; an explicit empty title stays.
func NewPost(id Identity, matter frontmatter.Matter, content, prefix, sourcePath string) *Post {
	title, ok := matter.Title()
	if !ok {
		title = id.Slug
	}
	layout, _ := matter.Layout()
	return &Post{
		Title:       title,
		Slug:        id.Slug,
		Content:     content,
		Date:        id.Date,
		Sequence:    id.Sequence,
		RelativeURL: RelativeURL(prefix, id.Slug),
		Layout:      layout,
		SourcePath:  sourcePath,
	}
}

// RelativeURL is prefix, a slash, then slug verbatim. The slug is not cleaned.
func RelativeURL(prefix, slug string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return slug
	}
	return prefix + "/" + slug
}

// Fname rebuilds the file name stem the post was read from.
func (p *Post) Fname() string {
	return fmt.Sprintf("%s-%03d-%s", p.Date, p.Sequence, p.Slug)
}

// Vars returns the values a layout template can refer to.
func (p *Post) Vars() map[string]string {
	return map[string]string{
		"title":        p.Title,
		"slug":         p.Slug,
		"content":      p.Content,
		"date":         p.Date,
		"sequence":     strconv.Itoa(int(p.Sequence)),
		"relative_url": p.RelativeURL,
		"layout":       p.Layout,
	}
}

// Less orders posts by date, then sequence.
func Less(a, b *Post) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Sequence < b.Sequence
}
