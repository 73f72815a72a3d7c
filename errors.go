package hoot

import "fmt"

// ErrorKind is the closed set of failure modes the codec can report.
// Modeled on the package-level sentinel errors in
// shockwave/pkg/shockwave/client/client.go (ErrInvalidURL) and
// shockwave/pkg/shockwave/http11/errors.go, generalized into a single
// tagged type so callers can switch on Kind without string matching.
type ErrorKind uint8

const (
	// OutputOverflow: dst was too small for the current emission step.
	// The Call is resumable: flush dst to the transport and call the
	// same operation again with a fresh buffer.
	OutputOverflow ErrorKind = iota + 1

	// HeaderName: a header name failed byte-level token validation.
	HeaderName
	// HeaderValue: a header value failed byte-level grammar validation.
	HeaderValue

	// ForbiddenBodyHeader: caller supplied content-length or
	// transfer-encoding directly instead of through the body
	// constructor.
	ForbiddenBodyHeader
	// ForbiddenHTTP11Header: header, framing or method illegal for the
	// request's declared HTTP version.
	ForbiddenHTTP11Header
	// ForbiddenTrailer: trailer name is not allowed.
	ForbiddenTrailer

	// MethodForbidsBody: method does not permit a request body but the
	// with-body constructor was used.
	MethodForbidsBody
	// MethodRequiresBody: method requires a request body but the
	// without-body constructor was used.
	MethodRequiresBody

	// BodyLargerThanContentLength: a body write would exceed the
	// declared Content-Length.
	BodyLargerThanContentLength
	// BodyContentAfterFinish: a body write was attempted after the
	// body was already marked finished.
	BodyContentAfterFinish
	// SentLessThanContentLength: caller tried to leave SEND_BODY before
	// the declared Content-Length was fully written.
	SentLessThanContentLength

	// Status: the response status line failed to parse.
	Status
	// NewLine: a malformed line terminator was encountered while
	// parsing the response.
	NewLine
	// TooManyHeaders: the response has more headers than the caller's
	// header-list capacity.
	TooManyHeaders
	// HTTPVersionMismatch: response HTTP version incompatible with the
	// request's declared version (strict mode only).
	HTTPVersionMismatch
	// InsufficientSpaceToParseHeaders: the caller's parse buffer has no
	// spare room; flush consumed bytes and resume.
	InsufficientSpaceToParseHeaders

	// IllegalState: the operation is not legal in the Call's current
	// phase.
	IllegalState

	// ChunkedEncoding: malformed chunk framing while decoding a
	// response body.
	ChunkedEncoding
)

var errorKindNames = map[ErrorKind]string{
	OutputOverflow:                  "output overflow",
	HeaderName:                      "invalid header name",
	HeaderValue:                     "invalid header value",
	ForbiddenBodyHeader:             "forbidden body-framing header",
	ForbiddenHTTP11Header:           "header/framing forbidden for HTTP version",
	ForbiddenTrailer:                "forbidden trailer",
	MethodForbidsBody:               "method forbids a request body",
	MethodRequiresBody:              "method requires a request body",
	BodyLargerThanContentLength:     "body larger than content-length",
	BodyContentAfterFinish:          "body content after finish",
	SentLessThanContentLength:       "sent less than content-length",
	Status:                          "invalid status line",
	NewLine:                         "invalid line terminator",
	TooManyHeaders:                  "too many headers",
	HTTPVersionMismatch:             "http version mismatch",
	InsufficientSpaceToParseHeaders: "insufficient space to parse headers",
	IllegalState:                    "illegal operation for current phase",
	ChunkedEncoding:                 "malformed chunked encoding",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the single error type the codec returns. Method is populated
// for MethodForbidsBody/MethodRequiresBody, and for ForbiddenHTTP11Header
// when the method itself is not available in HTTP/1.0.
type Error struct {
	Kind   ErrorKind
	Method Method
	detail string
}

func (e *Error) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("hoot: %s: %s", e.Kind, e.Method)
	}
	if e.detail != "" {
		return fmt.Sprintf("hoot: %s: %s", e.Kind, e.detail)
	}
	return "hoot: " + e.Kind.String()
}

// Is supports errors.Is comparisons against a bare ErrorKind sentinel
// built with &Error{Kind: k}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind ErrorKind) *Error { return &Error{Kind: kind} }

func newErrDetail(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, detail: detail}
}

func newMethodErr(kind ErrorKind, m Method) *Error {
	return &Error{Kind: kind, Method: m}
}

// Sentinels for errors.Is comparisons against operations that never carry
// extra context.
var (
	ErrOutputOverflow                  = newErr(OutputOverflow)
	ErrHeaderName                      = newErr(HeaderName)
	ErrHeaderValue                     = newErr(HeaderValue)
	ErrForbiddenBodyHeader             = newErr(ForbiddenBodyHeader)
	ErrForbiddenHTTP11Header           = newErr(ForbiddenHTTP11Header)
	ErrForbiddenTrailer                = newErr(ForbiddenTrailer)
	ErrBodyLargerThanContentLength     = newErr(BodyLargerThanContentLength)
	ErrBodyContentAfterFinish          = newErr(BodyContentAfterFinish)
	ErrSentLessThanContentLength       = newErr(SentLessThanContentLength)
	ErrStatus                          = newErr(Status)
	ErrNewLine                         = newErr(NewLine)
	ErrTooManyHeaders                  = newErr(TooManyHeaders)
	ErrHTTPVersionMismatch             = newErr(HTTPVersionMismatch)
	ErrInsufficientSpaceToParseHeaders = newErr(InsufficientSpaceToParseHeaders)
	ErrIllegalState                    = newErr(IllegalState)
	ErrChunkedEncoding                 = newErr(ChunkedEncoding)
)
