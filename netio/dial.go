// Package netio adapts the sans-I/O hoot.Call state machine to a real
// net.Conn. It is deliberately thin: hoot itself never touches a socket,
// so something has to pump bytes between Call and the transport. This is
// that something.
//
// Grounded on shockwave/pkg/shockwave/client/pool.go's dial pattern
// (plain or TLS dial behind one function) and bufio.go's buffered-reader
// idiom, without the connection pooling or health checking both of those
// files also do — pooling is out of scope for this package.
package netio

import (
	"context"
	"crypto/tls"
	"net"
)

// Dial opens a plain or TLS connection to addr. Passing a non-nil
// tlsConfig performs the TLS handshake inline, mirroring pool.go's
// dialTLS branch but without registering the result in any pool.
func Dial(ctx context.Context, network, addr string, tlsConfig *tls.Config) (net.Conn, error) {
	d := &net.Dialer{}
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if tlsConfig == nil {
		return conn, nil
	}

	tlsConn := tls.Client(conn, tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
