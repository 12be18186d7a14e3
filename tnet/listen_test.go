package tnet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListen(t *testing.T) {
	sock := t.TempDir() + "/methods.sock"

	for _, tc := range []struct {
		address string
		network string
		addr    string // regexp
	}{
		{address: "localhost:", network: "tcp", addr: `^127\.0\.0\.1:\d+$`},
		{address: "tcp:localhost:", network: "tcp", addr: `^127\.0\.0\.1:\d+$`},
		{address: "tcp:127.0.0.1:0", network: "tcp", addr: `^127\.0\.0\.1:\d+$`},
		{address: "unix:" + sock, network: "unix", addr: "^" + sock + "$"},
	} {
		t.Run(tc.address, func(t *testing.T) {
			l, err := Listen(tc.address)
			require.NoError(t, err)
			defer l.Close()
			require.Equal(t, tc.network, l.Addr().Network())
			require.Regexp(t, tc.addr, l.Addr().String())
		})
	}
}

// a second demo started on the same port fails instead of sharing it
func TestListenBusyPort(t *testing.T) {
	l := ListenOnRandomPort()
	defer l.Close()

	_, err := Listen(l.Addr().String())
	require.Error(t, err)
	_, err = Listen("tcp:" + l.Addr().String())
	require.Error(t, err)
}
