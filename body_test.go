package hoot

import "testing"

func callAtRecvBody(t *testing.T, method Method, statusLine string, headers []HeaderField) *Call {
	t.Helper()
	req := WithoutBody(method, "http://f.test/", HTTP11, nil)
	call, err := NewCall(req)
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}
	dst := make([]byte, 4096)
	if _, _, err := call.Write(nil, dst); err != nil {
		t.Fatalf("flush prologue: %v", err)
	}
	if _, err := call.ParseStatus([]byte(statusLine)); err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}

	hdrBuf := make([]HeaderField, 16)
	var raw []byte
	for _, h := range headers {
		raw = append(raw, h.Name...)
		raw = append(raw, ':', ' ')
		raw = append(raw, h.Value...)
		raw = append(raw, '\r', '\n')
	}
	raw = append(raw, '\r', '\n')
	if _, err := call.ParseHeaders(raw, hdrBuf); err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	return call
}

func TestReadBodyLengthDelimited(t *testing.T) {
	call := callAtRecvBody(t, MethodGET, "HTTP/1.1 200 OK\r\n", []HeaderField{{Name: "Content-Length", Value: "5"}})

	dst := make([]byte, 16)
	used, part, err := call.ReadBody([]byte("hallo"), dst)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if used != 5 || string(part.Data) != "hallo" || !part.Finished {
		t.Fatalf("got used=%d data=%q finished=%v", used, part.Data, part.Finished)
	}
	if call.Phase() != PhaseEnded {
		t.Errorf("phase = %v, want PhaseEnded", call.Phase())
	}
}

func TestReadBodyLengthDelimitedSplitAcrossCalls(t *testing.T) {
	call := callAtRecvBody(t, MethodGET, "HTTP/1.1 200 OK\r\n", []HeaderField{{Name: "Content-Length", Value: "5"}})

	dst := make([]byte, 16)
	used, part, err := call.ReadBody([]byte("hal"), dst)
	if err != nil {
		t.Fatalf("ReadBody 1: %v", err)
	}
	if used != 3 || part.Finished {
		t.Fatalf("got used=%d finished=%v, want 3 false", used, part.Finished)
	}

	used, part, err = call.ReadBody([]byte("lo"), dst)
	if err != nil {
		t.Fatalf("ReadBody 2: %v", err)
	}
	if used != 2 || !part.Finished {
		t.Fatalf("got used=%d finished=%v, want 2 true", used, part.Finished)
	}
}

func TestReadBodyHeadHasNoBody(t *testing.T) {
	call := callAtRecvBody(t, MethodHEAD, "HTTP/1.1 200 OK\r\n", []HeaderField{{Name: "Content-Length", Value: "100"}})

	dst := make([]byte, 16)
	used, part, err := call.ReadBody(nil, dst)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if used != 0 || !part.Finished || len(part.Data) != 0 {
		t.Fatalf("got used=%d finished=%v data=%q", used, part.Finished, part.Data)
	}
}

func TestReadBodyChunked(t *testing.T) {
	call := callAtRecvBody(t, MethodGET, "HTTP/1.1 200 OK\r\n", []HeaderField{{Name: "Transfer-Encoding", Value: "chunked"}})

	src := []byte("5\r\nhallo\r\n0\r\n\r\n")
	dst := make([]byte, 64)
	used, part, err := call.ReadBody(src, dst)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if used != len(src) || string(part.Data) != "hallo" || !part.Finished {
		t.Fatalf("got used=%d data=%q finished=%v", used, part.Data, part.Finished)
	}
	if call.Phase() != PhaseEnded {
		t.Errorf("phase = %v, want PhaseEnded", call.Phase())
	}
}

func TestReadBodyChunkedSplitAcrossCalls(t *testing.T) {
	call := callAtRecvBody(t, MethodGET, "HTTP/1.1 200 OK\r\n", []HeaderField{{Name: "Transfer-Encoding", Value: "chunked"}})

	dst := make([]byte, 64)
	var got []byte
	pieces := []string{"5\r\nhal", "lo\r", "\n0\r\n", "\r\n"}
	for _, p := range pieces {
		src := []byte(p)
		for len(src) > 0 {
			used, part, err := call.ReadBody(src, dst)
			if err != nil {
				t.Fatalf("ReadBody: %v", err)
			}
			got = append(got, part.Data...)
			src = src[used:]
			if used == 0 {
				break
			}
		}
	}
	if string(got) != "hallo" {
		t.Fatalf("got = %q, want hallo", got)
	}
	if call.Phase() != PhaseEnded {
		t.Errorf("phase = %v, want PhaseEnded", call.Phase())
	}
}

func TestReadBodyCloseDelimited(t *testing.T) {
	call := callAtRecvBody(t, MethodGET, "HTTP/1.1 200 OK\r\n", nil)

	dst := make([]byte, 64)
	used, part, err := call.ReadBody([]byte("whatever is left"), dst)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if used != len("whatever is left") || part.Finished {
		t.Fatalf("got used=%d finished=%v", used, part.Finished)
	}

	used, part, err = call.ReadBody(nil, dst)
	if err != nil {
		t.Fatalf("ReadBody EOF: %v", err)
	}
	if used != 0 || !part.Finished {
		t.Fatalf("got used=%d finished=%v, want EOF finished", used, part.Finished)
	}
}
