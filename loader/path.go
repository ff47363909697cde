package loader

import "strings"

func cleanPath(path string) string { return strings.Trim(path, "/") }

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
