package hoot

import "strconv"

// ParseResult reports how much of src a parse step consumed and whether
// it finished: Done with Consumed == n means n bytes were consumed and
// parsing is complete; Done == false means more bytes are needed.
type ParseResult struct {
	Consumed int
	Done     bool
}

// findCRLF returns the index of the first "\r\n" in b starting at from,
// or -1 if none is present yet.
func findCRLF(b []byte, from int) int {
	for i := from; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i
		}
		if b[i] == '\n' {
			// bare LF without CR: malformed, caller reports NewLine.
			return -2
		}
	}
	return -1
}

// bufferFull reports whether src has no spare capacity left for the
// caller to append more bytes into. Used to distinguish "need more bytes"
// from "caller's parse buffer is too small and must be flushed/resized".
func bufferFull(src []byte) bool {
	return len(src) == cap(src) && len(src) > 0
}

// ParseStatus parses the response status line from src. On success it
// records the parsed Status, advances the Call to PhaseRecvHeaders, and
// returns the number of bytes consumed. If src does not
// yet contain a full line, it returns ParseResult{Done: false} with
// Consumed == 0 and a nil error; the caller must append more bytes and
// retry with the same unconsumed prefix plus the new data.
func (c *Call) ParseStatus(src []byte) (ParseResult, error) {
	if c.phase != PhaseRecvStatus {
		return ParseResult{}, newErr(IllegalState)
	}

	end := findCRLF(src, 0)
	if end == -1 {
		if bufferFull(src) {
			return ParseResult{}, newErr(InsufficientSpaceToParseHeaders)
		}
		return ParseResult{}, nil
	}
	if end == -2 {
		return ParseResult{}, newErr(NewLine)
	}

	line := src[:end]
	status, err := parseStatusLine(line)
	if err != nil {
		return ParseResult{}, err
	}
	if c.strictVersion && status.Version != c.version {
		return ParseResult{}, newErr(HTTPVersionMismatch)
	}

	c.respStatus = status
	c.phase = PhaseRecvHeaders
	return ParseResult{Consumed: end + 2, Done: true}, nil
}

// parseStatusLine parses "HTTP/major.minor SP status SP reason" (no
// trailing CRLF in line). Grounded on shockwave/client/response.go's
// ParseStatusLine, rewritten to operate on an arbitrary slice instead of
// an internally buffered line.
func parseStatusLine(line []byte) (Status, error) {
	const minLen = len("HTTP/1.1 200 ")
	if len(line) < minLen-1 {
		return Status{}, newErr(Status)
	}

	var version Version
	switch {
	case hasPrefixBytes(line, http11Bytes):
		version = HTTP11
	case hasPrefixBytes(line, http10Bytes):
		version = HTTP10
	default:
		return Status{}, newErr(Status)
	}
	rest := line[len(http10Bytes):]
	if len(rest) == 0 || rest[0] != ' ' {
		return Status{}, newErr(Status)
	}
	rest = rest[1:]

	sp := indexByte(rest, ' ')
	var codeBytes []byte
	var reason string
	if sp == -1 {
		codeBytes = rest
		reason = ""
	} else {
		codeBytes = rest[:sp]
		reason = string(rest[sp+1:])
	}
	if len(codeBytes) != 3 {
		return Status{}, newErr(Status)
	}
	code, err := strconv.Atoi(string(codeBytes))
	if err != nil || code < 100 || code > 599 {
		return Status{}, newErr(Status)
	}

	return Status{Version: version, Code: code, Reason: reason}, nil
}

func hasPrefixBytes(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// ParseHeaders incrementally parses the response header block into
// headers, a caller-provided fixed-capacity slice. It may be called
// repeatedly with growing src; each call returns how many leading bytes
// of src were fully consumed. Returns Done once the blank-line terminator
// is parsed, at which point the Call advances to PhaseRecvBody.
func (c *Call) ParseHeaders(src []byte, headers []HeaderField) (ParseResult, error) {
	if c.phase != PhaseRecvHeaders {
		return ParseResult{}, newErr(IllegalState)
	}
	c.respHeaders = headers

	consumed := 0
	for {
		end := findCRLF(src, consumed)
		if end == -1 {
			if bufferFull(src) {
				return ParseResult{Consumed: consumed}, newErr(InsufficientSpaceToParseHeaders)
			}
			return ParseResult{Consumed: consumed}, nil
		}
		if end == -2 {
			return ParseResult{Consumed: consumed}, newErr(NewLine)
		}

		if end == consumed {
			// Blank line: end of header block.
			c.respHeaders = headers
			c.phase = PhaseRecvBody
			return ParseResult{Consumed: consumed + 2, Done: true}, nil
		}

		line := src[consumed:end]
		name, value, perr := parseHeaderLine(line)
		if perr != nil {
			return ParseResult{Consumed: consumed}, perr
		}
		if c.respHeaderCount >= len(headers) {
			return ParseResult{Consumed: consumed}, newErr(TooManyHeaders)
		}
		headers[c.respHeaderCount] = HeaderField{Name: name, Value: value}
		c.respHeaderCount++

		consumed = end + 2
	}
}

// parseHeaderLine splits a single header line (no CRLF) into name/value,
// trimming a single optional leading space after the colon per RFC 7230.
func parseHeaderLine(line []byte) (name, value string, err error) {
	colon := indexByte(line, ':')
	if colon <= 0 {
		return "", "", newErr(HeaderName)
	}
	nameBytes := line[:colon]
	for _, b := range nameBytes {
		if !isTokenChar(b) {
			return "", "", newErr(HeaderName)
		}
	}
	valBytes := line[colon+1:]
	if len(valBytes) > 0 && valBytes[0] == ' ' {
		valBytes = valBytes[1:]
	}
	for _, b := range valBytes {
		if !isValueChar(b) {
			return "", "", newErr(HeaderValue)
		}
	}
	return string(nameBytes), string(valBytes), nil
}
