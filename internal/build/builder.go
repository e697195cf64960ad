// Package build turns source files into posts and layouts and renders posts
// through layouts.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/karnival/limonite/internal/config"
	"github.com/karnival/limonite/internal/document"
	"github.com/karnival/limonite/internal/frontmatter"
	"github.com/karnival/limonite/internal/model"
	"github.com/karnival/limonite/internal/render"
)

// FileError ties a build failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Builder holds the renderers and policies shared by every build. It has no
// mutable state and may be used from several goroutines.
type Builder struct {
	markdown   *render.Markdown
	templates  *render.Templates
	postPolicy frontmatter.Policy
	urlPrefix  string
	workers    int
	logger     *slog.Logger
}

// New creates a Builder from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	postPolicy, _ := frontmatter.ParsePolicy(cfg.PostFrontMatter)
	missing, _ := render.ParseMissingPolicy(cfg.MissingVariable)

	return &Builder{
		markdown:   render.NewMarkdown(cfg.MarkdownOptions()),
		templates:  render.NewTemplates(missing, logger),
		postPolicy: postPolicy,
		urlPrefix:  cfg.PostURLPrefix,
		workers:    cfg.Workers,
		logger:     logger,
	}, nil
}

// Post builds the post stored at path. The date, sequence and slug come from
// the file name, everything else from the file content.
func (b *Builder) Post(path string) (*model.Post, error) {
	id, err := model.ParseFilename(stem(path))
	if err != nil {
		return nil, err
	}

	doc, err := b.parse(path, b.postPolicy)
	if err != nil {
		return nil, err
	}

	html, err := b.markdown.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	return model.NewPost(id, doc.Matter, html, b.urlPrefix, path), nil
}

// Layout loads a layout template. Layouts always require front matter.
func (b *Builder) Layout(path string) (*model.Layout, error) {
	doc, err := b.parse(path, frontmatter.Required)
	if err != nil {
		return nil, err
	}
	parent, _ := doc.Matter.Layout()
	return &model.Layout{
		Name:       stem(path),
		Parent:     parent,
		Template:   doc.Body,
		SourcePath: path,
	}, nil
}

// Render merges post into layout.
func (b *Builder) Render(post *model.Post, layout *model.Layout) (string, error) {
	out, err := b.templates.Render(layout.Template, post.Vars())
	if err != nil {
		return "", fmt.Errorf("rendering %s with layout %s: %w", post.Fname(), layout.Name, err)
	}
	return out, nil
}

// Posts builds every path concurrently. A failing file does not stop the
// others: the successful posts are returned in input order together with the
// joined *FileError values of the failures.
func (b *Builder) Posts(ctx context.Context, paths []string) ([]*model.Post, error) {
	built := make([]*model.Post, len(paths))
	failed := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed[i] = &FileError{Path: path, Err: err}
				return nil
			}
			post, err := b.Post(path)
			if err != nil {
				b.logger.Error("post build failed", "path", path, "error", err)
				failed[i] = &FileError{Path: path, Err: err}
				return nil
			}
			built[i] = post
			return nil
		})
	}
	_ = g.Wait()

	posts := make([]*model.Post, 0, len(paths))
	for _, p := range built {
		if p != nil {
			posts = append(posts, p)
		}
	}
	return posts, errors.Join(failed...)
}

func (b *Builder) parse(path string, policy frontmatter.Policy) (*frontmatter.Document, error) {
	raw, err := document.New(path).Read()
	if err != nil {
		return nil, err
	}
	doc, err := frontmatter.Parse(raw, policy)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Warning != nil {
		b.logger.Warn("ignoring undecodable front matter", "path", path, "error", doc.Warning)
	}
	return doc, nil
}

// stem is the base name of path with its last extension removed.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
