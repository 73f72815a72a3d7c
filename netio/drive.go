package netio

import (
	"errors"
	"io"
	"net"

	"github.com/valyala/bytebufferpool"

	"github.com/yourusername/hoot"
)

// scratchSize is the size of the pooled output buffer handed to
// Call.Write/ReadBody. Matches shockwave/client/bufio.go's
// OptimizedReaderSize rather than reinventing a constant.
const scratchSize = 2048

// SendRequest drives hoot.Call through PhaseSending over conn, reading the
// request body (if any) from body and flushing to conn whenever the Call
// reports OutputOverflow, resuming the write with a fresh dst. body may
// be nil for bodyless requests.
func SendRequest(conn net.Conn, call *hoot.Call, body io.Reader) error {
	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)
	out.B = growTo(out.B, scratchSize)
	dst := out.B

	chunk := bytebufferpool.Get()
	defer bytebufferpool.Put(chunk)
	chunk.B = growTo(chunk.B, scratchSize)
	src := chunk.B[:0]

	for !call.RequestFinished() {
		if len(src) == 0 && body != nil {
			n, err := body.Read(chunk.B)
			if n > 0 {
				src = chunk.B[:n]
			}
			if err != nil && err != io.EOF {
				return err
			}
			if err == io.EOF {
				body = nil
			}
		}

		consumed, produced, werr := call.Write(src, dst)
		if produced > 0 {
			if _, ferr := conn.Write(dst[:produced]); ferr != nil {
				return ferr
			}
		}
		if werr != nil {
			var hootErr *hoot.Error
			if errors.As(werr, &hootErr) && hootErr.Kind == hoot.OutputOverflow {
				continue
			}
			return werr
		}
		src = src[consumed:]

		if body == nil && len(src) == 0 && !call.RequestFinished() {
			// No more body input and everything offered so far has been
			// consumed: signal end of body with an empty write.
			if _, _, ferr := call.Write(nil, dst); ferr != nil {
				return ferr
			}
		}
	}
	return nil
}

// ReceiveResponse reads from conn, feeding bytes into the Call's response
// parser (status line, then headers), then streams the decoded body to
// bodyOut. headers is the caller-provided fixed-capacity header slice.
func ReceiveResponse(conn net.Conn, call *hoot.Call, headers []hoot.HeaderField, bodyOut io.Writer) error {
	acc := bytebufferpool.Get()
	defer bytebufferpool.Put(acc)
	acc.B = growTo(acc.B, scratchSize)

	have := 0
	readMore := func() error {
		if have == len(acc.B) {
			acc.B = growTo(acc.B, len(acc.B)*2)
		}
		n, err := conn.Read(acc.B[have:])
		have += n
		if n == 0 && err != nil {
			return err
		}
		return nil
	}

	for call.Phase() == hoot.PhaseRecvStatus {
		res, err := call.ParseStatus(acc.B[:have])
		if err != nil {
			return err
		}
		if res.Done {
			shiftLeft(acc.B, &have, res.Consumed)
			break
		}
		if err := readMore(); err != nil {
			return err
		}
	}

	for call.Phase() == hoot.PhaseRecvHeaders {
		res, err := call.ParseHeaders(acc.B[:have], headers)
		if err != nil {
			return err
		}
		if res.Done {
			shiftLeft(acc.B, &have, res.Consumed)
			break
		}
		if res.Consumed > 0 {
			shiftLeft(acc.B, &have, res.Consumed)
		}
		if err := readMore(); err != nil {
			return err
		}
	}

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)
	out.B = growTo(out.B, scratchSize)

	for call.Phase() == hoot.PhaseRecvBody {
		if have == 0 {
			if err := readMore(); err != nil {
				if err != io.EOF {
					return err
				}
			}
		}
		used, part, err := call.ReadBody(acc.B[:have], out.B)
		if err != nil {
			return err
		}
		if len(part.Data) > 0 {
			if _, werr := bodyOut.Write(part.Data); werr != nil {
				return werr
			}
		}
		shiftLeft(acc.B, &have, used)
		if part.Finished {
			break
		}
		if used == 0 && have == 0 {
			// Close-delimited body signals EOF via an empty read; give
			// ReadBody an explicit empty src to let it notice.
			_, part, err = call.ReadBody(nil, out.B)
			if err != nil {
				return err
			}
			if part.Finished {
				break
			}
		}
	}

	return nil
}

func growTo(b []byte, n int) []byte {
	if cap(b) >= n {
		return b[:n]
	}
	return make([]byte, n)
}

func shiftLeft(buf []byte, have *int, n int) {
	if n <= 0 {
		return
	}
	copy(buf, buf[n:*have])
	*have -= n
}
