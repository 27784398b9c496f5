package manifest

// Package manifest resolves and parses fingerprint manifests. A manifest is
// read from a local file or fetched from "<base URL><content id>/fingerprint.json"
// and reduced to its content id and ordered file list.
