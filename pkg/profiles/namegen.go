package profiles

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// NameLength is the length of generated profile names.
const NameLength = 32

// Character classes. Each position first picks a class uniformly, then a
// character uniformly within it, so digits are as likely as either letter case.
var nameClasses = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"0123456789",
}

const classSelectors = "012"

// GenerateName returns a random profile name.
func GenerateName() (string, error) {
	selectors, err := nanoid.Generate(classSelectors, NameLength)
	if err != nil {
		return "", fmt.Errorf("profile name: %w", err)
	}
	name := make([]byte, 0, NameLength)
	for i := 0; i < len(selectors); i++ {
		class := nameClasses[selectors[i]-'0']
		c, err := nanoid.Generate(class, 1)
		if err != nil {
			return "", fmt.Errorf("profile name: %w", err)
		}
		name = append(name, c[0])
	}
	return string(name), nil
}
