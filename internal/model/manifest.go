package model

// ManifestFileName is the well-known name of the manifest served next to the content
const ManifestFileName = "fingerprint.json"

// Manifest describes one content revision: its identifier and the files it contains
type Manifest struct {
	ContentID string
	Files     []FileDescriptor
}

// FileDescriptor is one entry of the manifest file list
type FileDescriptor struct {
	// RelativeName is a slash-separated path relative to the content root
	RelativeName string
}

// FetchPlan pairs the source URL of one file with its local destination
type FetchPlan struct {
	Name string // relative name as listed in the manifest
	URL  string // baseURL + contentID + "/" + name
	Path string // contentID + "/" + name, slash separated
}

// NewFetchPlan derives the fetch URL and destination path of a file.
// baseURL is expected to end with "/".
func NewFetchPlan(baseURL, contentID string, fd FileDescriptor) FetchPlan {
	return FetchPlan{
		Name: fd.RelativeName,
		URL:  baseURL + contentID + "/" + fd.RelativeName,
		Path: contentID + "/" + fd.RelativeName,
	}
}

// Plans returns the fetch plan of every file in manifest order
func (m *Manifest) Plans(baseURL string) []FetchPlan {
	plans := make([]FetchPlan, 0, len(m.Files))
	for _, fd := range m.Files {
		plans = append(plans, NewFetchPlan(baseURL, m.ContentID, fd))
	}
	return plans
}

// IsEmpty reports whether the manifest lists no files
func (m *Manifest) IsEmpty() bool {
	return len(m.Files) == 0
}
