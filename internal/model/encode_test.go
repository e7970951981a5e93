package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeJSON(t *testing.T) {
	report := Report{
		Root:      "api<v2>",
		Sections:  []Section{SectionEmpty},
		EmptyDirs: []Path{"src/domain/billing"},
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, report); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"root": "api<v2>"`, "\n  \"empty_dirs\": [", `"src/domain/billing"`} {
		if !strings.Contains(out, want) {
			t.Errorf("EncodeJSON() missing %q in:\n%s", want, out)
		}
	}

	if strings.Contains(out, "tree") {
		t.Errorf("EncodeJSON() wrote an unrequested section:\n%s", out)
	}
}

func TestEncodeYAML(t *testing.T) {
	report := Report{
		Root:      "api",
		Sections:  []Section{SectionEmpty},
		EmptyDirs: []Path{"src/domain/billing"},
	}

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, report); err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"root: api\n", "empty_dirs:\n  - src/domain/billing\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("EncodeYAML() missing %q in:\n%s", want, out)
		}
	}
}
