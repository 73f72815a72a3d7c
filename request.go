package hoot

// Framing is the mechanism by which a message body's length is determined
// on the wire.
type Framing uint8

const (
	FramingNone Framing = iota
	FramingLength
	FramingChunked
)

// Request is the caller-supplied descriptor of an outgoing request.
// Modeled on shockwave/client/request.go's ClientRequest field layout,
// with fixed-size inline arrays replaced by caller-owned slices: the
// descriptor must not force an allocation policy on the caller any more
// than the Call itself does.
//
// Headers is the free-form header list; content-length and
// transfer-encoding must never appear here (ForbiddenBodyHeader) — body
// framing is chosen exclusively through ContentLength/Chunked below.
type Request struct {
	Method  Method
	Target  string // origin-form or absolute-form request-target
	Version Version
	Headers []HeaderField

	// ContentLength, when non-nil, selects Length(*ContentLength) framing.
	// Mutually exclusive with Chunked.
	ContentLength *uint64
	// Chunked selects Chunked framing. Mutually exclusive with
	// ContentLength. Only legal on HTTP/1.1.
	Chunked bool

	kind ctorKind
}

// ctorKind records which of the two constructors produced a Request,
// since framing selection depends on it: a with-body Request with
// neither ContentLength nor Chunked set defaults to Chunked on HTTP/1.1
// or is rejected on HTTP/1.0, while a without-body Request is always
// FramingNone.
type ctorKind uint8

const (
	ctorWithoutBody ctorKind = iota
	ctorWithBody
)

// WithoutBody builds a Request for a method that carries no request body
// (GET, HEAD, DELETE, OPTIONS, TRACE). Calling this for a body-requiring
// method (POST, PUT, PATCH) is rejected at Call construction time with
// MethodRequiresBody.
func WithoutBody(method Method, target string, version Version, headers []HeaderField) Request {
	return Request{Method: method, Target: target, Version: version, Headers: headers, kind: ctorWithoutBody}
}

// WithBody builds a Request for a method that carries a request body.
// Exactly one of contentLength (non-nil) or chunked should be set by the
// caller to pick explicit framing; if neither is set, the analyzer
// defaults to Chunked on HTTP/1.1 and rejects on HTTP/1.0. Calling this
// for a body-forbidding method is rejected at Call construction time with
// MethodForbidsBody.
func WithBody(method Method, target string, version Version, headers []HeaderField, contentLength *uint64, chunked bool) Request {
	return Request{
		Method:        method,
		Target:        target,
		Version:       version,
		Headers:       headers,
		ContentLength: contentLength,
		Chunked:       chunked,
		kind:          ctorWithBody,
	}
}
