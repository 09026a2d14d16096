package iconset

import (
	"encoding/json"
	"fmt"
)

// ManifestFilename is the filename the asset catalog toolchain expects.
const ManifestFilename = "Contents.json"

// ManifestImage describes one generated icon file. Field order matters:
// Xcode writes these keys in exactly this order and the manifest is treated
// as a compatibility contract, not a style choice.
type ManifestImage struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

type ManifestInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// Manifest is the Contents.json document of an .appiconset.
type Manifest struct {
	Images []ManifestImage `json:"images"`
	Info   ManifestInfo    `json:"info"`
}

// NewManifest builds the manifest for the given icon table, one entry per
// spec in table order.
func NewManifest(specs []Spec) *Manifest {
	m := &Manifest{
		Images: make([]ManifestImage, 0, len(specs)),
		Info: ManifestInfo{
			Author:  "xcode",
			Version: 1,
		},
	}
	for _, s := range specs {
		m.Images = append(m.Images, ManifestImage{
			Filename: s.Filename(),
			Idiom:    s.Idiom,
			Scale:    s.ScaleString(),
			Size:     s.SizeString(),
		})
	}
	return m
}

// Bytes renders the manifest as pretty-printed UTF-8 JSON with 2-space
// indentation and a trailing newline.
func (m *Manifest) Bytes() ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return append(b, '\n'), nil
}
