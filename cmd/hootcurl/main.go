// Command hootcurl is a minimal demonstration of driving hoot.Call over a
// real connection via the netio package — the external-collaborator
// boundary the codec itself deliberately knows nothing about.
//
// Usage: hootcurl -method GET -url http://example.test/path
package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/hoot"
	"github.com/yourusername/hoot/netio"
)

func main() {
	method := flag.String("method", "GET", "HTTP method")
	target := flag.String("url", "", "request URL")
	data := flag.String("data", "", "request body (sent with a content-length header if set)")
	timeout := flag.Duration("timeout", 10*time.Second, "connection timeout")
	flag.Parse()

	if *target == "" {
		log.Fatal("hootcurl: -url is required")
	}

	u, err := url.Parse(*target)
	if err != nil {
		log.Fatalf("hootcurl: invalid url: %v", err)
	}

	addr := u.Host
	var tlsConfig *tls.Config
	switch u.Scheme {
	case "https":
		if !strings.Contains(addr, ":") {
			addr += ":443"
		}
		tlsConfig = &tls.Config{ServerName: u.Hostname()}
	case "http", "":
		if !strings.Contains(addr, ":") {
			addr += ":80"
		}
	default:
		log.Fatalf("hootcurl: unsupported scheme %q", u.Scheme)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := netio.Dial(ctx, "tcp", addr, tlsConfig)
	if err != nil {
		log.Fatalf("hootcurl: dial: %v", err)
	}
	defer conn.Close()

	m := hoot.Method(strings.ToUpper(*method))
	var req hoot.Request
	var body io.Reader
	if *data != "" {
		n := uint64(len(*data))
		req = hoot.WithBody(m, *target, hoot.HTTP11, nil, &n, false)
		body = bytes.NewReader([]byte(*data))
	} else {
		req = hoot.WithoutBody(m, *target, hoot.HTTP11, nil)
	}

	call, err := hoot.NewCall(req)
	if err != nil {
		log.Fatalf("hootcurl: build request: %v", err)
	}

	if err := netio.SendRequest(conn, call, body); err != nil {
		log.Fatalf("hootcurl: send: %v", err)
	}

	headers := make([]hoot.HeaderField, 64)
	var out bytes.Buffer
	if err := netio.ReceiveResponse(conn, call, headers, &out); err != nil {
		log.Fatalf("hootcurl: receive: %v", err)
	}

	status := call.Status()
	fmt.Printf("%s %d %s\n", status.Version, status.Code, status.Reason)
	for _, h := range call.Headers() {
		fmt.Printf("%s: %s\n", h.Name, h.Value)
	}
	fmt.Println()
	fmt.Print(out.String())
}
