package hoot

import "strconv"

// BodyPart is a single decoded slice of response body data. Data aliases
// the caller-supplied dst passed to ReadBody; it is never independently
// allocated.
type BodyPart struct {
	Data     []byte
	Finished bool
}

type chunkState uint8

const (
	chunkStateSize chunkState = iota
	chunkStateSizeExt
	chunkStateData
	chunkStateDataCR
	chunkStateDataLF
	chunkStateTrailerCR
	chunkStateTrailerLF
	chunkStateDone
)

// resolveBodyFraming derives how the response body is delimited:
// HEAD/1xx/204/304 responses have no body regardless of headers;
// otherwise transfer-encoding: chunked, then content-length, then
// read-to-close.
func (c *Call) resolveBodyFraming() error {
	if noBodyExpected(c.method, c.respStatus) {
		c.bodyFraming = FramingNone
		return nil
	}

	if te, ok := c.responseHeaderValue("transfer-encoding"); ok && headerEqualFold(te, "chunked") {
		c.bodyFraming = FramingChunked
		c.chunkState = chunkStateSize
		return nil
	}
	if cl, ok := c.responseHeaderValue("content-length"); ok {
		n, err := strconv.ParseUint(cl, 10, 64)
		if err != nil {
			return newErrDetail(HeaderValue, "invalid content-length")
		}
		c.bodyFraming = FramingLength
		c.bodyContentLength = n
		return nil
	}

	// Read-to-close: finished is signaled externally by EOF.
	c.bodyFraming = framingCloseDelimited
	return nil
}

const framingCloseDelimited Framing = 255

// ReadBody decodes response body bytes from src into dst. It returns the
// number of src bytes consumed and a BodyPart whose Data aliases dst. The
// Call transitions to PhaseEnded once Finished is true.
func (c *Call) ReadBody(src, dst []byte) (inputUsed int, part BodyPart, err error) {
	if c.phase != PhaseRecvBody {
		return 0, BodyPart{}, newErr(IllegalState)
	}
	if !c.bodyFramingResolved {
		if ferr := c.resolveBodyFraming(); ferr != nil {
			return 0, BodyPart{}, ferr
		}
		c.bodyFramingResolved = true
		if c.bodyFraming == FramingNone {
			c.phase = PhaseEnded
			return 0, BodyPart{Finished: true}, nil
		}
	}

	switch c.bodyFraming {
	case FramingLength:
		return c.readBodyLength(src, dst)
	case FramingChunked:
		return c.readBodyChunked(src, dst)
	default: // close-delimited
		return c.readBodyCloseDelimited(src, dst)
	}
}

func (c *Call) readBodyLength(src, dst []byte) (int, BodyPart, error) {
	remaining := c.bodyContentLength - c.bodyAlreadyRead
	n := len(src)
	if uint64(n) > remaining {
		n = int(remaining)
	}
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst[:n], src[:n])
	c.bodyAlreadyRead += uint64(n)
	finished := c.bodyAlreadyRead == c.bodyContentLength
	if finished {
		c.phase = PhaseEnded
	}
	return n, BodyPart{Data: dst[:n], Finished: finished}, nil
}

func (c *Call) readBodyCloseDelimited(src, dst []byte) (int, BodyPart, error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst[:n], src[:n])
	if n == 0 && len(src) == 0 {
		// Caller signals EOF by presenting an empty src with nothing
		// further to give.
		c.phase = PhaseEnded
		return 0, BodyPart{Finished: true}, nil
	}
	return n, BodyPart{Data: dst[:n]}, nil
}

// readBodyChunked decodes RFC 7230 §4.1 chunked framing. Tolerates a
// chunk header or data payload split across multiple calls: partial hex
// digits are accumulated into an integer field on the Call (not a heap
// buffer), mirroring the bounded-state approach of
// http11/chunked.go's ChunkedReader, adapted to the sans-I/O (src, dst)
// contract instead of io.Reader.
func (c *Call) readBodyChunked(src, dst []byte) (int, BodyPart, error) {
	si, di := 0, 0

	for si < len(src) && di < len(dst) {
		switch c.chunkState {
		case chunkStateSize:
			b := src[si]
			if b == '\r' {
				c.chunkState = chunkStateSizeExt // reuse as "expect LF after size"
				si++
				continue
			}
			if b == ';' {
				c.chunkState = chunkStateSizeExt
				si++
				continue
			}
			v, ok := hexVal(b)
			if !ok {
				return si, BodyPart{Data: dst[:di]}, newErr(ChunkedEncoding)
			}
			c.chunkHex = c.chunkHex<<4 | uint64(v)
			si++
		case chunkStateSizeExt:
			// Skipping a chunk-extension or the CR before the size
			// line's LF; either way we're waiting for '\n'.
			if src[si] != '\n' {
				if src[si] == '\r' {
					si++
					continue
				}
				si++ // extension byte, ignore
				continue
			}
			si++
			if c.chunkHex == 0 {
				c.chunkState = chunkStateTrailerCR
			} else {
				c.chunkRemaining = c.chunkHex
				c.chunkHex = 0
				c.chunkState = chunkStateData
			}
		case chunkStateData:
			n := len(src) - si
			if uint64(n) > c.chunkRemaining {
				n = int(c.chunkRemaining)
			}
			if n > len(dst)-di {
				n = len(dst) - di
			}
			copy(dst[di:di+n], src[si:si+n])
			si += n
			di += n
			c.chunkRemaining -= uint64(n)
			if c.chunkRemaining == 0 {
				c.chunkState = chunkStateDataCR
			}
		case chunkStateDataCR:
			if src[si] != '\r' {
				return si, BodyPart{Data: dst[:di]}, newErr(ChunkedEncoding)
			}
			si++
			c.chunkState = chunkStateDataLF
		case chunkStateDataLF:
			if src[si] != '\n' {
				return si, BodyPart{Data: dst[:di]}, newErr(ChunkedEncoding)
			}
			si++
			c.chunkHex = 0
			c.chunkState = chunkStateSize
		case chunkStateTrailerCR:
			if src[si] != '\r' {
				return si, BodyPart{Data: dst[:di]}, newErr(ChunkedEncoding)
			}
			si++
			c.chunkState = chunkStateTrailerLF
		case chunkStateTrailerLF:
			if src[si] != '\n' {
				return si, BodyPart{Data: dst[:di]}, newErr(ChunkedEncoding)
			}
			si++
			c.chunkState = chunkStateDone
			c.phase = PhaseEnded
			return si, BodyPart{Data: dst[:di], Finished: true}, nil
		case chunkStateDone:
			return si, BodyPart{Data: dst[:di], Finished: true}, nil
		}
	}

	return si, BodyPart{Data: dst[:di]}, nil
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
