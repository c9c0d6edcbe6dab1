package web

import (
	"strings"
	"testing"
)

func TestTemplates_ContainsAllPages(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	for _, name := range []string{"add", "view", "history", "head", "nav"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("missing template %q", name)
		}
	}
}

func TestTemplates_SafeHTMLRendersUnescaped(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	inner, err := tmpl.New("probe").Parse(`{{safeHTML .}}`)
	if err != nil {
		t.Fatalf("parse probe: %v", err)
	}
	var sb strings.Builder
	if err := inner.Execute(&sb, "<b>bold</b>"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if sb.String() != "<b>bold</b>" {
		t.Fatalf("expected unescaped HTML, got %q", sb.String())
	}
}
