package filesystem

import "strings"

var testSuffixes = []string{
	".test.ts", ".test.js", ".test.tsx", ".test.jsx",
	".spec.ts", ".spec.js", ".spec.tsx", ".spec.jsx",
	".cy.ts", ".cy.js", ".cy.tsx", ".cy.jsx",
}

// IsTestFile checks if a file is a test file based on its extension.
func IsTestFile(name string) bool {
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
