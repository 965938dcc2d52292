package workspace

import (
	"fmt"
	"regexp"
)

var (
	// namePattern matches valid kebab-case names.
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// ValidateName validates a name follows kebab-case convention.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name %q must be kebab-case (lowercase letters, numbers, and hyphens only, starting with a letter)", name)
	}
	return nil
}
