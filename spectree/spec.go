// Package spectree derives a directory/file tree from a flat list of test specs.
package spectree

import "strings"

// Spec types reported for discovered files.
const (
	SpecTypeIntegration = "integration"
	SpecTypeComponent   = "component"
)

// Spec describes one discoverable test file. Relative drives tree placement and
// is slash-delimited with no leading separator.
type Spec struct {
	Name              string `json:"name"`
	SpecType          string `json:"specType"`
	Absolute          string `json:"absolute"`
	BaseName          string `json:"baseName"`
	FileName          string `json:"fileName"`
	SpecFileExtension string `json:"specFileExtension"`
	FileExtension     string `json:"fileExtension"`
	Relative          string `json:"relative"`
}

// NewSpec fills in the naming metadata of a spec from its relative path.
//
// For "cypress/e2e/login.cy.ts" the spec file extension is ".cy.ts", the file
// extension ".ts" and the file name "login".
func NewSpec(relative, absolute string) Spec {
	leaf, _ := SplitPath(relative, DefaultSeparator)

	fileExt := ""
	if i := strings.LastIndex(leaf, "."); i > 0 {
		fileExt = leaf[i:]
	}

	specExt := fileExt
	if stem := strings.TrimSuffix(leaf, fileExt); fileExt != "" {
		if i := strings.LastIndex(stem, "."); i > 0 {
			specExt = stem[i:] + fileExt
		}
	}

	fileName := strings.TrimSuffix(leaf, specExt)

	specType := SpecTypeIntegration
	if fileExt == ".tsx" || fileExt == ".jsx" {
		specType = SpecTypeComponent
	}

	return Spec{
		Name:              relative,
		SpecType:          specType,
		Absolute:          absolute,
		BaseName:          fileName,
		FileName:          fileName,
		SpecFileExtension: specExt,
		FileExtension:     fileExt,
		Relative:          relative,
	}
}

// DisplayName is the file name with its spec extension, e.g. "login.cy.ts".
func (s Spec) DisplayName() string {
	return s.FileName + s.SpecFileExtension
}

// Filter keeps the specs whose relative path contains search. An empty search
// keeps everything. Matching is exact and case-sensitive. The result points
// into specs, so it shares identity with the caller's slice.
func Filter(specs []Spec, search string) []*Spec {
	out := make([]*Spec, 0, len(specs))
	for i := range specs {
		if search == "" || strings.Contains(specs[i].Relative, search) {
			out = append(out, &specs[i])
		}
	}
	return out
}
