package builder

import (
	"path/filepath"
	"strings"
)

// ArtifactType represents the type of artifact produced by a build
type ArtifactType string

const (
	// ArtifactTypeStatic represents static files (HTML, CSS, JS)
	ArtifactTypeStatic ArtifactType = "static"
	// ArtifactTypeAPK represents an Android package or bundle
	ArtifactTypeAPK ArtifactType = "apk"
	// ArtifactTypeBinary represents any other packaged binary (ipa, appx...)
	ArtifactTypeBinary ArtifactType = "binary"
)

// BuildArtifact represents the output of a build operation
type BuildArtifact struct {
	// Type of artifact produced
	Type ArtifactType
	// Path to the artifact (local filesystem path)
	Path string
	// Metadata contains additional build information
	Metadata map[string]any
}

// ClassifyArtifact guesses the artifact type from a path.
func ClassifyArtifact(path string) ArtifactType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".apk", ".aab":
		return ArtifactTypeAPK
	case "":
		return ArtifactTypeStatic
	default:
		return ArtifactTypeBinary
	}
}
