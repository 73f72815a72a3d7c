package hoot

// Phase is the Call's runtime state tag. Go has no first-class typestate,
// so this is a runtime enum with a dispatch guard on every exported
// operation (Write, Finish, ParseStatus, ParseHeaders, ReadBody; the
// accessors Phase, RequestFinished, Status and Headers are unguarded),
// modeled on shockwave/client/constants_shared.go's
// enum-plus-switch idiom for method IDs.
//
// The init/send-line/send-headers phases of a request are folded into
// NewCall: method, version and headers are supplied together and the
// prologue is composed once at construction, so a Call only ever starts
// life already past those three phases.
type Phase uint8

const (
	PhaseSending Phase = iota
	PhaseRecvStatus
	PhaseRecvHeaders
	PhaseRecvBody
	PhaseEnded
)

// Call is the central sans-I/O state machine: one HTTP/1.x request/
// response cycle's serialization and parsing.
//
// A Call owns exactly one heap-sized buffer, the prologue, built once at
// construction time and only ever copied from thereafter. Every other
// operation (Write, ReadBody) moves bytes exclusively between caller-
// supplied src/dst slices.
type Call struct {
	phase   Phase
	method  Method
	version Version

	framing       Framing
	contentLength uint64
	bytesSentBody uint64
	requestFinished bool

	prologue       []byte
	prologueOffset int

	strictVersion bool

	respStatus      Status
	respHeaders     []HeaderField
	respHeaderCount int

	bodyFraming          Framing
	bodyFramingResolved  bool
	bodyContentLength    uint64
	bodyAlreadyRead      uint64

	chunkState     chunkState
	chunkHex       uint64
	chunkRemaining uint64
}

// NewCall validates req (method/body compatibility, header grammar,
// framing conflicts) and builds its prologue. The returned Call starts in
// PhaseSending.
func NewCall(req Request) (*Call, error) {
	a, err := analyzeRequest(req, req.kind)
	if err != nil {
		return nil, err
	}

	c := &Call{
		phase:         PhaseSending,
		method:        req.Method,
		version:       req.Version,
		framing:       a.framing,
		contentLength: a.contentLength,
		prologue:      buildPrologue(req, a),
	}
	return c, nil
}

// NewCallStrict is NewCall with strict response-version checking enabled:
// the response status line must carry the same HTTP version as the
// request, or ParseStatus fails with HTTPVersionMismatch.
func NewCallStrict(req Request) (*Call, error) {
	c, err := NewCall(req)
	if err != nil {
		return nil, err
	}
	c.strictVersion = true
	return c, nil
}

// RequestFinished reports whether the request side (prologue + body) has
// been fully emitted.
func (c *Call) RequestFinished() bool {
	return c.requestFinished
}

// Phase returns the Call's current phase.
func (c *Call) Phase() Phase {
	return c.phase
}

var crlf = []byte("\r\n")

// buildPrologue composes the request line, header block and terminating
// blank line into a single buffer. Grounded on
// shockwave/client/request.go's BuildRequest/BuildRequestLine, which does
// the same composition into a reused []byte before any socket write.
func buildPrologue(req Request, a analyzed) []byte {
	size := len(req.Method) + 1 + len(a.requestTarget) + 1 + 8 + 2
	for _, h := range req.Headers {
		size += len(h.Name) + 2 + len(h.Value) + 2
	}
	size += len("host: ") + len(a.host) + 2
	size += 40 // framing header + final CRLF headroom
	buf := make([]byte, 0, size)

	buf = append(buf, req.Method...)
	buf = append(buf, ' ')
	buf = append(buf, a.requestTarget...)
	buf = append(buf, ' ')
	buf = append(buf, req.Version.bytes()...)
	buf = append(buf, crlf...)

	if _, explicit := hostFromHeaders(req.Headers); a.host != "" && !explicit {
		// A caller-supplied Host header is written with the other headers
		// below; only a derived host is synthesized here.
		buf = append(buf, "host: "...)
		buf = append(buf, a.host...)
		buf = append(buf, crlf...)
	}

	for _, h := range req.Headers {
		buf = append(buf, h.Name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Value...)
		buf = append(buf, crlf...)
	}

	switch a.framing {
	case FramingLength:
		buf = append(buf, "content-length: "...)
		buf = append(buf, formatContentLength(a.contentLength)...)
		buf = append(buf, crlf...)
	case FramingChunked:
		buf = append(buf, "transfer-encoding: chunked"...)
		buf = append(buf, crlf...)
	}

	buf = append(buf, crlf...)
	return buf
}

// Write is the central send-phase operation. It flushes any unsent
// prologue bytes first, then emits body bytes according to the Call's
// framing. It returns the number of src bytes consumed and the number of
// dst bytes produced. Once the request is finished, a non-empty src fails
// with BodyContentAfterFinish and an empty src returns (0, 0).
//
// Prologue bytes and Length-framed body bytes are copied into whatever
// space dst has, so any dst size >= 1 byte makes progress there, and the
// concatenation of produced bytes across however many calls it takes to
// drain src is byte-identical to a single call with an unbounded dst.
// Chunked framing emits only whole chunks: a body chunk needs room for its
// size line, at least one data byte and the closing CRLF, and the
// terminator needs all 5 bytes; with less space left the call returns
// OutputOverflow.
func (c *Call) Write(src, dst []byte) (inputConsumed, outputProduced int, err error) {
	if c.requestFinished {
		if len(src) > 0 {
			return 0, 0, newErr(BodyContentAfterFinish)
		}
		return 0, 0, nil
	}
	if c.phase != PhaseSending {
		return 0, 0, newErr(IllegalState)
	}

	ow := newOutWriter(dst)

	if c.prologueOffset < len(c.prologue) {
		n := ow.writePartial(c.prologue[c.prologueOffset:])
		c.prologueOffset += n
		if c.prologueOffset < len(c.prologue) {
			return 0, ow.pos, nil
		}
	}

	switch c.framing {
	case FramingNone:
		if len(src) > 0 {
			return 0, ow.pos, newErr(BodyContentAfterFinish)
		}
		c.requestFinished = true
		c.phase = PhaseRecvStatus
		return 0, ow.pos, nil

	case FramingLength:
		remaining := c.contentLength - c.bytesSentBody
		if uint64(len(src)) > remaining {
			return 0, ow.pos, newErr(BodyLargerThanContentLength)
		}
		n := ow.writePartial(src)
		c.bytesSentBody += uint64(n)
		if c.bytesSentBody == c.contentLength {
			c.requestFinished = true
			c.phase = PhaseRecvStatus
		}
		return n, ow.pos, nil

	case FramingChunked:
		return c.writeChunkedBody(src, ow)

	default:
		return 0, ow.pos, newErr(IllegalState)
	}
}

// writeChunkedBody emits chunked body bytes: an empty src emits the atomic
// terminator; a non-empty src emits as large a single chunk as fits in
// the writer's remaining space, framing whatever prefix of src that turns
// out to be (short writes are legal and must frame exactly what fits).
func (c *Call) writeChunkedBody(src []byte, ow *outWriter) (inputConsumed, outputProduced int, err error) {
	if len(src) == 0 {
		if !ow.writeAll(chunkedTerminator) {
			return 0, ow.pos, newErr(OutputOverflow)
		}
		c.requestFinished = true
		c.phase = PhaseRecvStatus
		return 0, ow.pos, nil
	}

	avail := ow.avail()
	n := len(src)
	if n > avail {
		n = avail
	}
	for n > 0 && chunkHeaderLen(n)+n+2 > avail {
		n--
	}
	if n == 0 {
		return 0, ow.pos, newErr(OutputOverflow)
	}

	var hdrBuf [20]byte
	hdr := appendChunkSizeLine(hdrBuf[:0], n)
	ow.writeAll(hdr)
	ow.writePartial(src[:n])
	ow.writeAll(crlf)

	return n, ow.pos, nil
}

// Finish is the without-body terminal transition, grounded on
// original_source/hoot/src/client/mod.rs's finish(): for a with-body call
// where the caller ends up not writing any body this round, Finish drives
// the same termination Write(nil, dst) would. It is rejected with
// SentLessThanContentLength if a declared Length framing has not yet been
// fully satisfied.
func (c *Call) Finish(dst []byte) (outputProduced int, err error) {
	if c.phase != PhaseSending {
		return 0, newErr(IllegalState)
	}
	if c.framing == FramingLength && c.bytesSentBody < c.contentLength {
		return 0, newErr(SentLessThanContentLength)
	}
	_, produced, err := c.Write(nil, dst)
	return produced, err
}
