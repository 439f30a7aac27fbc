package validation

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxProjectDirectoryLength = 255

func isProjectDirectory(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}

	return IsValidProjectDirectory(field.String()) == nil
}

// IsValidProjectDirectory reports whether dir can be used as the target of a new project.
func IsValidProjectDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("project directory can't be an empty string")
	}

	if len(dir) > maxProjectDirectoryLength {
		return fmt.Errorf("project directory is too long, limit is %d characters", maxProjectDirectoryLength)
	}

	if strings.IndexFunc(dir, unicode.IsControl) >= 0 {
		return fmt.Errorf("project directory can't contain control characters")
	}

	switch filepath.Clean(dir) {
	case ".", "..":
		return fmt.Errorf("project directory must name a new directory, got %q", dir)
	}

	return nil
}
