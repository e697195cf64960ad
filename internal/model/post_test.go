package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karnival/limonite/internal/frontmatter"
)

func TestParseFilename_Valid(t *testing.T) {
	cases := []struct {
		stem string
		want Identity
	}{
		{"2015-10-26-001-merry-xmas", Identity{Date: "2015-10-26", Sequence: 1, Slug: "merry-xmas"}},
		{"2015-10-26-002-meh", Identity{Date: "2015-10-26", Sequence: 2, Slug: "meh"}},
		{"1999-01-01-255-x", Identity{Date: "1999-01-01", Sequence: 255, Slug: "x"}},
		{"2020-02-29-000-a-b-c-123", Identity{Date: "2020-02-29", Sequence: 0, Slug: "a-b-c-123"}},
	}

	for _, tc := range cases {
		t.Run(tc.stem, func(t *testing.T) {
			got, err := ParseFilename(tc.stem)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFilename_Invalid(t *testing.T) {
	cases := []string{
		"",
		"merry-xmas",
		"2015-10-26-merry-xmas",
		"2015-10-26-01-merry-xmas",
		"2015-10-26-0001-merry-xmas",
		"2015-10-26-001-",
		"15-10-26-001-merry-xmas",
		"x2015-10-26-001-merry-xmas",
		"2015-10-26-256-too-big",
		"2015-1a-26-001-slug",
	}

	for _, stem := range cases {
		t.Run(stem, func(t *testing.T) {
			_, err := ParseFilename(stem)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFilename))
		})
	}
}

func TestNewPost_TitleDefaultsToSlug(t *testing.T) {
	id := Identity{Date: "2015-10-26", Sequence: 2, Slug: "meh"}

	post := NewPost(id, frontmatter.Matter{}, "<p>meh</p>\n", DefaultURLPrefix, "meh.markdown")
	assert.Equal(t, "meh", post.Title)

	post = NewPost(id, frontmatter.Matter{frontmatter.KeyTitle: "wild merry xmas!", frontmatter.KeyLayout: "post"}, "", DefaultURLPrefix, "")
	assert.Equal(t, "wild merry xmas!", post.Title)
	assert.Equal(t, "post", post.Layout)
}

func TestNewPost_ExplicitEmptyTitleIsKept(t *testing.T) {
	id := Identity{Date: "2015-10-26", Sequence: 2, Slug: "meh"}

	post := NewPost(id, frontmatter.Matter{frontmatter.KeyTitle: ""}, "", DefaultURLPrefix, "")
	assert.Equal(t, "", post.Title)
}

func TestRelativeURL(t *testing.T) {
	assert.Equal(t, "p/merry-xmas", RelativeURL(DefaultURLPrefix, "merry-xmas"))
	assert.Equal(t, "blog/posts/merry-xmas", RelativeURL("blog/posts", "merry-xmas"))
	assert.Equal(t, "merry-xmas", RelativeURL("", "merry-xmas"))
	assert.Equal(t, "p/merry-xmas", RelativeURL("p/", "merry-xmas"))
	assert.Equal(t, "p/..", RelativeURL(DefaultURLPrefix, ".."))
	assert.Equal(t, "p/a//b", RelativeURL(DefaultURLPrefix, "a//b"))
}

func TestPost_FnameAndVars(t *testing.T) {
	post := NewPost(Identity{Date: "2015-10-26", Sequence: 1, Slug: "merry-xmas"}, frontmatter.Matter{}, "<p>x</p>", "p", "")

	assert.Equal(t, "2015-10-26-001-merry-xmas", post.Fname())

	vars := post.Vars()
	assert.Equal(t, "merry-xmas", vars["title"])
	assert.Equal(t, "<p>x</p>", vars["content"])
	assert.Equal(t, "1", vars["sequence"])
	assert.Equal(t, "p/merry-xmas", vars["relative_url"])
}

func TestLess_OrdersByDateThenSequence(t *testing.T) {
	posts := []*Post{
		{Slug: "c", Date: "2015-10-27", Sequence: 1},
		{Slug: "b", Date: "2015-10-26", Sequence: 2},
		{Slug: "a", Date: "2015-10-26", Sequence: 1},
	}

	sort.Slice(posts, func(i, j int) bool { return Less(posts[i], posts[j]) })
	assert.Equal(t, "a", posts[0].Slug)
	assert.Equal(t, "b", posts[1].Slug)
	assert.Equal(t, "c", posts[2].Slug)
}
