// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-friendly slugs from section and post names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a lowercase letter, digit,
	// whitespace, or hyphen. Applied after lowercasing.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun collapses consecutive hyphens into one.
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// Derive creates a URL-friendly slug from the given name: lowercase, with
// punctuation stripped and whitespace runs replaced by single hyphens.
// Example: "Storage Engines, Part 2!" → "storage-engines-part-2"
func Derive(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = hyphenRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
