package hoot

import (
	"net"
	"net/url"
	"strconv"

	"golang.org/x/net/idna"
)

// analyzed is the output of analyzeRequest: the request's target broken
// into wire form, its chosen framing, and the derived Host header value.
type analyzed struct {
	requestTarget string // path[?query] to place after METHOD SP in the request line
	host          string // value for the synthesized Host header
	framing       Framing
	contentLength uint64 // meaningful only when framing == FramingLength
}

// analyzeRequest validates method/body compatibility and derives framing.
// It is a pure function of its inputs, unit-testable in isolation,
// mirroring original_source/src/send.rs's with_body/without_body/
// with_chunked dispatch.
func analyzeRequest(req Request, kind ctorKind) (analyzed, error) {
	if kind == ctorWithBody && forbidsBody(req.Method) {
		return analyzed{}, newMethodErr(MethodForbidsBody, req.Method)
	}
	if kind == ctorWithoutBody && requiresBody(req.Method) {
		return analyzed{}, newMethodErr(MethodRequiresBody, req.Method)
	}
	if !methodAllowedForVersion(req.Method, req.Version) {
		return analyzed{}, newMethodErr(ForbiddenHTTP11Header, req.Method)
	}

	for _, h := range req.Headers {
		if err := validateHeaderName(h.Name); err != nil {
			return analyzed{}, err
		}
		if err := validateHeaderValue(h.Value); err != nil {
			return analyzed{}, err
		}
		if isForbiddenHeader(h.Name, forbiddenBodyHeaders) {
			return analyzed{}, newErrDetail(ForbiddenBodyHeader, h.Name)
		}
	}

	if req.ContentLength != nil && req.Chunked {
		return analyzed{}, newErr(ForbiddenBodyHeader)
	}
	if req.Chunked && req.Version == HTTP10 {
		return analyzed{}, newErr(ForbiddenHTTP11Header)
	}

	target, host, err := splitTarget(req.Target, req.Headers)
	if err != nil {
		return analyzed{}, err
	}

	a := analyzed{requestTarget: target, host: host}

	switch {
	case kind == ctorWithoutBody:
		a.framing = FramingNone
	case req.ContentLength != nil:
		a.framing = FramingLength
		a.contentLength = *req.ContentLength
	case req.Chunked:
		a.framing = FramingChunked
	case req.Version == HTTP11:
		a.framing = FramingChunked
	default:
		// HTTP/1.0 with-body request and no explicit content-length: the
		// wire length must be known up front, since HTTP/1.0 has no
		// chunked transfer-encoding.
		return analyzed{}, newErr(ForbiddenHTTP11Header)
	}

	return a, nil
}

// splitTarget parses req.Target into a request-target suitable for the
// request line, and derives the Host header value from its authority
// (normalized through idna, as curol-go-net's http/util.go does for
// outgoing requests) unless the caller already supplied a Host header.
func splitTarget(target string, headers []HeaderField) (requestTarget, host string, err error) {
	if explicit, ok := hostFromHeaders(headers); ok {
		host = explicit
	}

	u, perr := url.Parse(target)
	if perr != nil {
		return "", "", newErrDetail(HeaderValue, "invalid request target")
	}

	if u.Host != "" {
		if host == "" {
			host, err = normalizeHost(u.Host)
			if err != nil {
				return "", "", err
			}
		}
		rt := u.RequestURI()
		if rt == "" {
			rt = "/"
		}
		return rt, host, nil
	}

	// Origin-form target (no scheme/authority): use as-is.
	rt := target
	if rt == "" {
		rt = "/"
	}
	return rt, host, nil
}

// normalizeHost converts an internationalized authority (host[:port]) to
// its ASCII/Punycode wire form via idna.ToASCII, preserving an explicit
// port. Grounded on curol-go-net's http/util.go host-normalization step.
func normalizeHost(authority string) (string, error) {
	h, port, splitErr := net.SplitHostPort(authority)
	if splitErr != nil {
		h = authority
		port = ""
	}
	ascii, err := idna.Lookup.ToASCII(h)
	if err != nil {
		return "", newErrDetail(HeaderValue, "invalid host: "+err.Error())
	}
	if port == "" {
		return ascii, nil
	}
	return net.JoinHostPort(ascii, port), nil
}

// formatContentLength renders n as a decimal ASCII string for the
// content-length header value.
func formatContentLength(n uint64) string {
	return strconv.FormatUint(n, 10)
}
