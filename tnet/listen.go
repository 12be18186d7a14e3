package tnet

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/ridge/must/v2"
)

var lc = net.ListenConfig{
	KeepAlive: 3 * time.Minute,
}

// Listen opens a listener on the address.
//
// "tcp:[host]:port" opens a TCP socket with keep-alive, "unix:path" opens a
// UNIX domain socket. Without a prefix, TCP is assumed, so ":3000" listens on
// port 3000 of all interfaces.
func Listen(address string) (net.Listener, error) {
	network := "tcp"
	if proto, rest, ok := strings.Cut(address, ":"); ok {
		switch proto {
		case "unix":
			network = "unix"
			address = rest
		case "tcp":
			address = rest
		}
	}
	return lc.Listen(context.Background(), network, address)
}

// ListenOnRandomPort opens a TCP listener on a random localhost port
func ListenOnRandomPort() net.Listener {
	return must.OK1(Listen("localhost:"))
}
