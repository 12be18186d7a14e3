// Package basics is a set of small HTTP demos.
//
// # Services
//
// Each service is a package with Main, Run and Router functions, and a binary
// under cmd/:
//
//   - methods: GET / answers "Hello World!", POST /checkpost answers a JSON
//     list of three Linux distributions.
//   - params: /qry, /hdr and /bdy echo the "first" and "second" parameters
//     taken from the query string, the request headers and the JSON body.
//   - sum: GET /?first=1&second=2 answers {"sum":"12"}. The operands are
//     joined as text, not added.
//
// All of them listen on :3000 unless --addr says otherwise, so run one at a
// time.
//
// # Client
//
// fetch calls the sum service and prints the JSON it answers with:
//
//	$ go run ./cmd/sum &
//	$ go run ./cmd/fetch
//	{"sum":"12"}
//
// fetch retries while the service is not listening yet, up to --timeout.
//
// # Support packages
//
// thttp holds the HTTP server, middleware and client helpers, tlog the
// context-carried zap logger, run the process entry points, param the
// parameter extraction and rendering shared by the services.
package basics
