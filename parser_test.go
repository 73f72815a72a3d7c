package hoot

import (
	"errors"
	"testing"
)

func newRecvCall(t *testing.T, strict bool) *Call {
	t.Helper()
	req := WithoutBody(MethodGET, "http://f.test/", HTTP11, nil)
	var call *Call
	var err error
	if strict {
		call, err = NewCallStrict(req)
	} else {
		call, err = NewCall(req)
	}
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}
	dst := make([]byte, 4096)
	if _, _, err := call.Write(nil, dst); err != nil {
		t.Fatalf("flush prologue: %v", err)
	}
	if call.Phase() != PhaseRecvStatus {
		t.Fatalf("phase = %v, want PhaseRecvStatus", call.Phase())
	}
	return call
}

func TestParseStatusComplete(t *testing.T) {
	call := newRecvCall(t, false)
	src := []byte("HTTP/1.1 200 OK\r\nrest")
	res, err := call.ParseStatus(src)
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if !res.Done || res.Consumed != len("HTTP/1.1 200 OK\r\n") {
		t.Fatalf("res = %+v", res)
	}
	status := call.Status()
	if status.Version != HTTP11 || status.Code != 200 || status.Reason != "OK" {
		t.Errorf("status = %+v", status)
	}
	if call.Phase() != PhaseRecvHeaders {
		t.Errorf("phase = %v, want PhaseRecvHeaders", call.Phase())
	}
}

func TestParseStatusPartial(t *testing.T) {
	call := newRecvCall(t, false)
	res, err := call.ParseStatus([]byte("HTTP/1.1 20"))
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if res.Done || res.Consumed != 0 {
		t.Fatalf("res = %+v, want Partial", res)
	}
}

func TestParseStatusMalformed(t *testing.T) {
	call := newRecvCall(t, false)
	_, err := call.ParseStatus([]byte("not a status line\r\n"))
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want Status", err)
	}
}

func TestParseStatusStrictVersionMismatch(t *testing.T) {
	call := newRecvCall(t, true)
	_, err := call.ParseStatus([]byte("HTTP/1.0 200 OK\r\n"))
	if !errors.Is(err, ErrHTTPVersionMismatch) {
		t.Fatalf("err = %v, want HTTPVersionMismatch", err)
	}
}

func TestParseHeadersComplete(t *testing.T) {
	call := newRecvCall(t, false)
	if _, err := call.ParseStatus([]byte("HTTP/1.1 200 OK\r\n")); err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}

	headers := make([]HeaderField, 8)
	src := []byte("Content-Type: text/plain\r\nContent-Length: 5\r\n\r\n")
	res, err := call.ParseHeaders(src, headers)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	if !res.Done || res.Consumed != len(src) {
		t.Fatalf("res = %+v, want Done consuming %d", res, len(src))
	}
	got := call.Headers()
	if len(got) != 2 || got[0].Name != "Content-Type" || got[1].Value != "5" {
		t.Errorf("headers = %+v", got)
	}
	if call.Phase() != PhaseRecvBody {
		t.Errorf("phase = %v, want PhaseRecvBody", call.Phase())
	}
}

func TestParseHeadersPartial(t *testing.T) {
	call := newRecvCall(t, false)
	call.ParseStatus([]byte("HTTP/1.1 200 OK\r\n"))

	headers := make([]HeaderField, 8)
	res, err := call.ParseHeaders([]byte("Content-Type: text/pla"), headers)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	if res.Done || res.Consumed != 0 {
		t.Fatalf("res = %+v, want Partial", res)
	}
}

func TestParseHeadersTooMany(t *testing.T) {
	call := newRecvCall(t, false)
	call.ParseStatus([]byte("HTTP/1.1 200 OK\r\n"))

	headers := make([]HeaderField, 1)
	src := []byte("A: 1\r\nB: 2\r\n\r\n")
	_, err := call.ParseHeaders(src, headers)
	if !errors.Is(err, ErrTooManyHeaders) {
		t.Fatalf("err = %v, want TooManyHeaders", err)
	}
}
