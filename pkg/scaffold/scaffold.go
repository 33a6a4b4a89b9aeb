// Package scaffold generates outcome-template starter files into a
// project directory.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/quallaa/quallaa-cli/internal/progress"
)

// File is one generated file within a template.
type File struct {
	Path    string
	Content string
}

// Params feed template expansion.
type Params struct {
	ProjectName string
	Role        string
}

// Template is a named outcome template.
type Template struct {
	Name        string
	Description string
	Files       func(p Params) []File
}

// Result reports what a generation run did.
type Result struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// Manifest is the quallaa.yaml project manifest written alongside the
// generated files.
type Manifest struct {
	Project     string    `yaml:"project"`
	Template    string    `yaml:"template"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Files       []string  `yaml:"files"`
}

// Generator writes template files into a target directory.
type Generator struct {
	showProgress bool
	initGit      bool
	now          func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithProgress enables the progress bar during writes.
func WithProgress(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.showProgress = enabled
	}
}

// WithGit initializes a git repository and writes the initial commit
// after generation.
func WithGit(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.initGit = enabled
	}
}

// WithGeneratorClock injects the time source for the manifest stamp.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate expands the template into dir. Files whose on-disk content
// already matches are skipped, so re-running a template is idempotent.
func (g *Generator) Generate(dir string, tmpl Template, p Params) (*Result, error) {
	if p.ProjectName == "" {
		p.ProjectName = filepath.Base(dir)
	}

	files := tmpl.Files(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	var tracker *progress.Tracker
	if g.showProgress {
		tracker = progress.NewTracker("generating "+tmpl.Name, len(files))
	}

	result := &Result{}
	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create dir for %s: %w", f.Path, err)
		}

		if unchanged(path, f.Content) {
			result.Skipped = append(result.Skipped, f.Path)
		} else {
			if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
				if tracker != nil {
					tracker.FinishError(err)
				}
				return nil, fmt.Errorf("write %s: %w", f.Path, err)
			}
			result.Written = append(result.Written, f.Path)
		}
		if tracker != nil {
			tracker.Tick()
		}
	}
	if tracker != nil {
		tracker.FinishSuccess()
	}

	if err := g.writeManifest(dir, tmpl, p, files); err != nil {
		return nil, err
	}

	if g.initGit {
		if err := initRepo(dir, tmpl.Name); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (g *Generator) writeManifest(dir string, tmpl Template, p Params, files []File) error {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	m := Manifest{
		Project:     p.ProjectName,
		Template:    tmpl.Name,
		GeneratedAt: g.now().UTC(),
		Files:       paths,
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quallaa.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// unchanged reports whether the file at path already holds content,
// compared by hash to avoid keeping both copies in memory for large
// templates.
func unchanged(path, content string) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64String(content)
}

func initRepo(dir, templateName string) error {
	repo, err := git.PlainInit(dir, false)
	if err == git.ErrRepositoryAlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("git worktree: %w", err)
	}
	if err := wt.AddGlob("."); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	_, err = wt.Commit("Scaffold "+templateName+" outcome template", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Quallaa CLI",
			Email: "cli@quallaa.dev",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}
