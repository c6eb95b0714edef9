// Package home resolves '~' prefixes in user-supplied paths, such as the
// base_dir value of the configuration file.
package home

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// Home returns the current user's home directory.
func Home() (string, error) {
	userData, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("find homedir: %w", err)
	}
	return userData.HomeDir, nil
}

// Expand replaces a leading '~' or '~user' in path with the corresponding
// home directory. Paths without a '~' prefix are returned unchanged.
func Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	prefix := strings.Split(filepath.ToSlash(path), "/")[0]

	var userData *user.User
	var err error
	if prefix == "~" {
		userData, err = user.Current()
	} else {
		userData, err = user.Lookup(prefix[1:])
	}
	if err != nil {
		return "", fmt.Errorf("expand tilde: %w", err)
	}

	return strings.Replace(path, prefix, userData.HomeDir, 1), nil
}
