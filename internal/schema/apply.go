package schema

import "github.com/fmf-tmt/tmtcore/internal/xerrors"

// ApplyKey normalizes a single rendered key value and sets it on the test, tagged with source
// (spec §4.3 step 3-4: "normalize the parsed result per the key's schema ... set its source tag
// to policy"). Unknown (non-Registry) keys are written into Extra, same as Normalize does for
// unknown top-level keys.
func ApplyKey(t *Test, key string, raw any, source Source) error {
	def, known := Registry[key]
	if !known {
		t.Extra[key] = raw
		return nil
	}

	val, err := coerce(raw, def.Kind, source)
	if err != nil {
		return xerrors.Schema(key, err.Error(), err).WithTest(t.Name)
	}

	t.Set(key, val)
	return nil
}
