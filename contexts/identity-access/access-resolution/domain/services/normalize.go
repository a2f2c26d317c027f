package services

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeDomainPath maps a concrete request path to the canonical domain
// pattern used for ACL matching. Each segment that looks like an identifier
// is collapsed to the literal placeholder "{id}"; plain lowercase route
// words are left untouched. The function is idempotent and the result is
// used for matching only, never persisted.
func NormalizeDomainPath(path string) string {
	if path == "" {
		return path
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if isIdentifierSegment(segment) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// StripVersionPrefix removes the fixed API version prefix before
// normalization.
func StripVersionPrefix(path string, prefix string) string {
	if prefix == "" {
		return path
	}
	return strings.TrimPrefix(path, prefix)
}

// A segment is an identifier when it is purely numeric, a canonical
// lowercase UUID, or lowercase alphanumeric containing an underscore or
// hyphen (e.g. campaign_001, user-123).
func isIdentifierSegment(segment string) bool {
	if segment == "" {
		return false
	}
	if isNumeric(segment) {
		return true
	}
	if isCanonicalUUID(segment) {
		return true
	}
	return isSeparatedIdentifier(segment)
}

func isNumeric(segment string) bool {
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Canonical form only: 8-4-4-4-12 lowercase hex groups. uuid.Parse accepts
// braced, URN, and uppercase variants, so length and case are pinned first.
func isCanonicalUUID(segment string) bool {
	if len(segment) != 36 || segment != strings.ToLower(segment) {
		return false
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

func isSeparatedIdentifier(segment string) bool {
	separated := false
	for _, r := range segment {
		switch {
		case r == '_' || r == '-':
			separated = true
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return separated
}
