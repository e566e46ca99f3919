package render

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tidwall/pretty"

	"github.com/otterdog-go/otterdog/internal/document"
)

// Render formats obj (typically a *model.Organization) as pretty-printed
// JSON for `show`/`show-live`/`show-default`/import output (§4.8),
// matching the teacher's use of tidwall/pretty in pkg/merge/merge.go for
// stable, diff-friendly formatting.
func Render(obj any) ([]byte, error) {
	tree, err := document.ToTree(obj)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}

	return pretty.Pretty(raw), nil
}

// CanonicalDiff computes a JSON merge patch (RFC 7386) between the
// rendered forms of expected and onDisk (§6 "canonical-diff"), surfacing
// which document paths would change without touching any provider. It
// does not produce a line-based unified diff.
func CanonicalDiff(expected, onDisk any) ([]byte, error) {
	expectedJSON, err := renderCompact(expected)
	if err != nil {
		return nil, err
	}

	onDiskJSON, err := renderCompact(onDisk)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.CreateMergePatch(onDiskJSON, expectedJSON)
	if err != nil {
		return nil, err
	}

	return pretty.Pretty(patch), nil
}

func renderCompact(obj any) ([]byte, error) {
	tree, err := document.ToTree(obj)
	if err != nil {
		return nil, err
	}

	return json.Marshal(tree)
}
