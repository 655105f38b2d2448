package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath turns a configured path into an absolute, clean one. $VAR and
// ${VAR} are expanded, a leading ~ means the home directory, and relative
// paths are taken from root.
func resolvePath(p, root string) string {
	if p == "" {
		return ""
	}
	p = expandHome(os.ExpandEnv(p))
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return filepath.Clean(p)
}

// expandHome replaces a leading ~ with the home directory. p is returned
// unchanged when the home directory is unknown.
func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
