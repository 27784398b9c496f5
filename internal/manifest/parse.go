package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ytget/asset-fetcher/internal/model"
	"github.com/ytget/asset-fetcher/internal/platform"
)

// document is the on-the-wire shape. Unknown fields are ignored; pointers tell
// a missing field apart from an empty one.
type document struct {
	SHA   *string      `json:"sha"`
	Files *[]fileEntry `json:"files"`
}

type fileEntry struct {
	File *string `json:"file"`
}

// Parse decodes manifest text into a model.Manifest.
// Duplicate file names and names escaping the content root are rejected.
func Parse(data []byte) (*model.Manifest, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrManifestMalformed)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestMalformed, err)
	}

	if doc.SHA == nil {
		return nil, fmt.Errorf("%w: missing \"sha\" field", ErrManifestMalformed)
	}
	contentID := stripQuotes(*doc.SHA)
	if contentID == "" {
		return nil, fmt.Errorf("%w: empty \"sha\" field", ErrManifestMalformed)
	}
	if err := platform.ValidateRelativeName(contentID); err != nil || strings.Contains(contentID, "/") {
		return nil, fmt.Errorf("%w: invalid \"sha\" value %q", ErrManifestMalformed, contentID)
	}

	if doc.Files == nil {
		return nil, fmt.Errorf("%w: missing \"files\" field", ErrManifestMalformed)
	}

	m := &model.Manifest{
		ContentID: contentID,
		Files:     make([]model.FileDescriptor, 0, len(*doc.Files)),
	}

	seen := make(map[string]int, len(*doc.Files))
	for i, entry := range *doc.Files {
		if entry.File == nil {
			return nil, fmt.Errorf("%w: files[%d] has no \"file\" field", ErrManifestMalformed, i)
		}
		name := stripQuotes(*entry.File)
		if err := platform.ValidateRelativeName(name); err != nil {
			return nil, fmt.Errorf("%w: files[%d]: %v", ErrManifestMalformed, i, err)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: files[%d] duplicates files[%d] (%q)", ErrManifestMalformed, i, prev, name)
		}
		seen[name] = i
		m.Files = append(m.Files, model.FileDescriptor{RelativeName: name})
	}

	return m, nil
}

// stripQuotes removes quote characters wrapping a string value
func stripQuotes(s string) string {
	return strings.Trim(s, `"`)
}
