package hoot

import "strings"

// HeaderField is a single caller-supplied request header. Grounded on the
// CompactHeaders entry shape in shockwave/pkg/shockwave/client/
// headers_compact.go but kept as plain strings: the codec validates and
// writes each header exactly once per Call, so that inline-array
// zero-copy storage (built for per-connection reuse under load) buys
// nothing here.
type HeaderField struct {
	Name  string
	Value string
}

// forbiddenBodyHeaders are the header names that must be chosen via the
// body constructor (WithBody's contentLength/chunked arguments) rather
// than supplied as a free header. Grounded on original_source/src/send.rs's
// HEADERS_FORBID_BODY table.
var forbiddenBodyHeaders = []string{"content-length", "transfer-encoding"}

// isForbiddenHeader reports whether name (ASCII case-insensitive) matches
// one of the forbidden table entries.
//
// original_source/src/send.rs's check_forbidden_headers has a bug: its
// inner loop does
//
//	for (a, b) in name.chars().zip(c.chars()) {
//	    if !a.is_ascii_alphabetic() { continue }
//	    if a.to_ascii_lowercase() != b { continue }
//	}
//
// `continue` only advances to the next character pair — it never breaks
// the outer per-candidate loop on a mismatch — so every non-matching
// character is silently skipped and any header name of the same *length*
// as a forbidden entry is reported as forbidden regardless of its actual
// content. This is resolved here as plain length-then-case-fold equality.
func isForbiddenHeader(name string, table []string) bool {
	for _, candidate := range table {
		if len(name) != len(candidate) {
			continue
		}
		if asciiEqualFold(name, candidate) {
			return true
		}
	}
	return false
}

// asciiEqualFold compares two equal-length ASCII strings case-insensitively.
func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// headerEqualFold is like asciiEqualFold but does not assume equal length;
// used for response-header lookups (Body Reader, Response) where names
// come from the wire rather than a fixed table.
func headerEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return asciiEqualFold(a, b)
}

// isTokenChar reports whether b is a valid RFC 7230 "token" character, the
// grammar for a header field-name.
func isTokenChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// isValueChar reports whether b is legal inside a header field-value:
// printable ASCII, HTAB, SP, or any byte 0x80-0xFF; excludes CR, LF, NUL,
// the other control characters and DEL.
func isValueChar(b byte) bool {
	if b == '\t' || b == ' ' {
		return true
	}
	return b >= 0x21 && b != 0x7f
}

// validateHeaderName checks name against the token grammar.
func validateHeaderName(name string) error {
	if name == "" {
		return newErr(HeaderName)
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return newErr(HeaderName)
		}
	}
	return nil
}

// validateHeaderValue checks value against the field-value grammar.
func validateHeaderValue(value string) error {
	for i := 0; i < len(value); i++ {
		if !isValueChar(value[i]) {
			return newErr(HeaderValue)
		}
	}
	return nil
}

// hostFromHeaders looks up a case-insensitive "Host" header, if the caller
// already supplied one.
func hostFromHeaders(headers []HeaderField) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "host") {
			return h.Value, true
		}
	}
	return "", false
}
