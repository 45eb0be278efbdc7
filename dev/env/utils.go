// Package devenv locates the workspace checkout and its git-ignored
// dev/.state directory, where local databases, http transcripts and test
// credentials live.
package devenv

import (
	"interview-harvest/lib/configutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	moduleName = "interview-harvest"
	// paths starting with this are placed under dev/.state
	StatePrefix = "<dev_state>"
)

var modName = regexp.MustCompile(`(?m)^module *([\w\-_]+)$`)

func isWorkspaceRoot(dir string) bool {
	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == moduleName
}

// GetWorkspaceRoot walks up from the cwd to the directory holding this
// module's go.mod.
func GetWorkspaceRoot() (string, error) {
	dir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	for {
		if isWorkspaceRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func stateDir() (string, error) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "dev", ".state"), nil
}

// GetStateConfig reads dev/.state/<path> with configutil, so a
// <name>.local.<ext> next to it is merged in.
func GetStateConfig[T any](path string) (T, error) {
	dir, err := stateDir()
	if err != nil {
		var out T
		return out, err
	}
	return configutil.ReadConfig[T](filepath.Join(dir, path))
}

// ResolvePath expands a `<dev_state>/...` path into the workspace's
// dev/.state directory, creating the directory if needed. Other paths are
// returned unchanged.
func ResolvePath(path string) (string, error) {
	rest, ok := strings.CutPrefix(filepath.ToSlash(path), StatePrefix)
	if !ok {
		return path, nil
	}

	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(rest, "/"))), nil
}
