package policy

import (
	"path/filepath"
	"strings"

	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// Resolve locates a policy document by explicit file path or symbolic name, enforcing the
// root-containment rule of spec §4.3: when root is set, every resolved path must lie under it.
// Dotted name segments map to directory separators ("suite.smoke" -> "<root>/suite/smoke.yaml").
func Resolve(file, name, root string) (string, error) {
	var resolved string
	switch {
	case file != "":
		resolved = file
	case name != "":
		if root == "" {
			return "", xerrors.Resolution("symbolic policy name requires a configured policy root", nil)
		}
		segments := strings.Split(name, ".")
		resolved = filepath.Join(append([]string{root}, segments...)...) + ".yaml"
	default:
		return "", xerrors.Resolution("no policy file or name given", nil)
	}

	if root == "" {
		return resolved, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", xerrors.Resolution("invalid policy root", err)
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return "", xerrors.Resolution("invalid policy path", err)
	}

	rel, err := filepath.Rel(absRoot, absResolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", xerrors.Resolution("policy path escapes policy root", nil)
	}

	return resolved, nil
}
