package profiles

import (
	"regexp"
	"testing"
)

func TestGenerateName_LengthAndCharset(t *testing.T) {
	if NameLength != 32 {
		t.Fatalf("NameLength = %d, want 32", NameLength)
	}
	pattern := regexp.MustCompile(`^[a-zA-Z0-9]{32}$`)
	for i := 0; i < 200; i++ {
		name, err := GenerateName()
		if err != nil {
			t.Fatalf("GenerateName() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(name) {
			t.Fatalf("GenerateName() = %q, does not match expected pattern", name)
		}
	}
}

func TestGenerateName_ClassBalance(t *testing.T) {
	var digits, total int
	for i := 0; i < 300; i++ {
		name, err := GenerateName()
		if err != nil {
			t.Fatalf("GenerateName() error: %v", err)
		}
		for _, c := range name {
			if c >= '0' && c <= '9' {
				digits++
			}
			total++
		}
	}
	// Digits are a third of the output, not 10/62 of it.
	share := float64(digits) / float64(total)
	if share < 0.28 || share > 0.39 {
		t.Errorf("digit share = %.3f, want about 1/3", share)
	}
}

func TestGenerateName_Uniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		name, err := GenerateName()
		if err != nil {
			t.Fatalf("GenerateName() error: %v", err)
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate name after %d generations: %q", i, name)
		}
		seen[name] = struct{}{}
	}
}
