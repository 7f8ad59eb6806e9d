package handlers

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		slug    string
		content string
		excerpt string
		wantErr bool
	}{
		{name: "valid", title: "A post", content: "Body", wantErr: false},
		{name: "empty title", title: "   ", content: "Body", wantErr: true},
		{name: "title too long", title: strings.Repeat("x", maxTitleLen+1), wantErr: true},
		{name: "slug too long", title: "ok", slug: strings.Repeat("s", maxSlugLen+1), wantErr: true},
		{name: "content too long", title: "ok", content: strings.Repeat("c", maxContentLen+1), wantErr: true},
		{name: "excerpt too long", title: "ok", excerpt: strings.Repeat("e", maxExcerptLen+1), wantErr: true},
		{name: "limits exactly met", title: strings.Repeat("t", maxTitleLen), slug: strings.Repeat("s", maxSlugLen), excerpt: strings.Repeat("e", maxExcerptLen), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePost(tt.title, tt.slug, tt.content, tt.excerpt)
			if (msg != "") != tt.wantErr {
				t.Errorf("validatePost() = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateSectionName(t *testing.T) {
	if msg := validateSectionName("Databases"); msg != "" {
		t.Errorf("valid name rejected: %q", msg)
	}
	if msg := validateSectionName("  "); msg == "" {
		t.Error("blank name accepted")
	}
	if msg := validateSectionName(strings.Repeat("n", maxSectionNameLen+1)); msg == "" {
		t.Error("overlong name accepted")
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "simple", raw: "go, databases", want: []string{"go", "databases"}},
		{name: "empty", raw: "", want: nil},
		{name: "blanks dropped", raw: " , go, , web ", want: []string{"go", "web"}},
		{name: "case-insensitive dedupe", raw: "Go, go, GO", want: []string{"Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTagsCapped(t *testing.T) {
	parts := make([]string, maxTagCount+5)
	for i := range parts {
		parts[i] = strings.Repeat("t", 3) + string(rune('a'+i))
	}
	got := parseTags(strings.Join(parts, ","))
	if len(got) != maxTagCount {
		t.Errorf("len = %d, want %d", len(got), maxTagCount)
	}
}
