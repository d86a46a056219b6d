package workspace

import "strings"

// Resolve turns a module specifier requested by the file at canonical
// path from into the canonical path of the target file.
//
// Only syntactically relative specifiers are admitted; everything else
// is an access violation, not a lookup miss. Collapsing may never climb
// above the workspace root.
func (t *Table) Resolve(specifier, from string) (string, error) {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return "", denied(specifier, from)
	}

	dir := ""
	if i := strings.LastIndex(from, "/"); i >= 0 {
		dir = from[:i]
	}

	joined := specifier
	if dir != "" {
		joined = dir + "/" + specifier
	}

	canonical, ok := collapse(joined)
	if !ok {
		return "", denied(specifier, from)
	}

	path, ok := t.lookup(canonical)
	if !ok {
		return "", notFound(specifier, from)
	}
	return path, nil
}

// collapse removes "." segments and resolves ".." segments against the
// accumulated path. The second return is false when a ".." would step
// outside the workspace root.
func collapse(path string) (string, bool) {
	var stack []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, seg)
		}
	}
	return strings.Join(stack, "/"), true
}
