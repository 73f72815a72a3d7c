package hoot

// Method is an HTTP request method. Modeled on the method-ID tables in
// shockwave/pkg/shockwave/client/constants_shared.go, simplified from a
// byte/string/ID triple down to a single comparable string type since the
// codec never needs the zero-copy byte form that hot-path request builder
// does (methods are written once per Call, not once per connection-pool
// checkout).
type Method string

const (
	MethodGET     Method = "GET"
	MethodHEAD    Method = "HEAD"
	MethodPOST    Method = "POST"
	MethodPUT     Method = "PUT"
	MethodDELETE  Method = "DELETE"
	MethodPATCH   Method = "PATCH"
	MethodOPTIONS Method = "OPTIONS"
	MethodTRACE   Method = "TRACE"
	// CONNECT is intentionally unsupported: original_source/hoot's
	// send.rs leaves it commented out ("// CONNECT") since it does not
	// carry an ordinary request/response body cycle.
)

// methodsForbiddingBody lists methods that must be constructed via
// WithoutBody. DELETE is included in its default (bodyless) form; a
// body-carrying DELETE is out of scope for this codec's method table.
var methodsForbiddingBody = map[Method]bool{
	MethodGET:     true,
	MethodHEAD:    true,
	MethodDELETE:  true,
	MethodOPTIONS: true,
	MethodTRACE:   true,
}

var methodsRequiringBody = map[Method]bool{
	MethodPOST:  true,
	MethodPUT:   true,
	MethodPATCH: true,
}

func forbidsBody(m Method) bool  { return methodsForbiddingBody[m] }
func requiresBody(m Method) bool { return methodsRequiringBody[m] }

// http10Methods mirrors original_source/hoot/src/client/mod.rs's
// Call<SEND_LINE, HTTP_10, ...> impl, which only exposes get/head/post;
// put/delete/options/trace are HTTP/1.1-only in that source.
var http10Methods = map[Method]bool{
	MethodGET:  true,
	MethodHEAD: true,
	MethodPOST: true,
}

func methodAllowedForVersion(m Method, v Version) bool {
	if v == HTTP10 {
		return http10Methods[m]
	}
	return true
}
