// Package pmdir provides constants and utilities for the pm directory structure.
package pmdir

import "path/filepath"

const (
	// Dir is the default name of the tracking directory.
	Dir = "pm"

	// IndexFile is the index file name (inside the tracking directory).
	IndexFile = "index.yml"

	// TasksDir is the directory holding one file per task.
	TasksDir = "tasks"

	// TaskExt is the extension of task files.
	TaskExt = ".yml"

	// ConfigFile is the default config file name (in the project root).
	ConfigFile = "pm.toml"
)

// Layout resolves tracking paths for a project root.
// An empty Name means Dir.
type Layout struct {
	Root string
	Name string
}

// New returns the layout of the default tracking directory under root.
func New(root string) Layout {
	return Layout{Root: root, Name: Dir}
}

// DirPath returns the full path to the tracking directory.
func (l Layout) DirPath() string {
	name := l.Name
	if name == "" {
		name = Dir
	}
	if l.Root == "" || l.Root == "." {
		return name
	}
	return filepath.Join(l.Root, name)
}

// IndexPath returns the full path to the index file.
func (l Layout) IndexPath() string {
	return filepath.Join(l.DirPath(), IndexFile)
}

// TasksPath returns the full path to the tasks directory.
func (l Layout) TasksPath() string {
	return filepath.Join(l.DirPath(), TasksDir)
}

// TaskPath returns the full path of a task file given its slug.
func (l Layout) TaskPath(slug string) string {
	return filepath.Join(l.TasksPath(), slug+TaskExt)
}
