package model

// Layout is a template file that wraps rendered post content.
type Layout struct {
	Name       string // file name without extension
	Parent     string // layout named by the layout key, if any
	Template   string
	SourcePath string
}
