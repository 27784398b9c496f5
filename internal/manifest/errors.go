package manifest

import "errors"

var (
	// ErrManifestUnavailable is returned when the manifest bytes cannot be obtained
	ErrManifestUnavailable = errors.New("manifest unavailable")

	// ErrManifestMalformed is returned when the manifest lacks the required fields
	ErrManifestMalformed = errors.New("manifest malformed")
)
