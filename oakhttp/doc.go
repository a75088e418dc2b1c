// Package oakhttp is a small HTTP/1.1 server library built directly on
// TCP. It parses raw byte streams into requests, routes each request to
// a registered callback by path and method, and serializes the
// callback's output back onto the connection.
//
// Highlights
//   - Routing: exact-path handlers for a single method or for any
//     method, plus directory handlers bound to a path prefix, with
//     deterministic precedence (specific beats any beats directory,
//     longest directory prefix wins).
//   - Responses are fully buffered: a handler that fails mid-write is
//     replaced by a clean 500 and the client never sees the partial
//     output.
//   - Keep-alive per HTTP/1.1 defaults, with Keep-Alive timeout= and
//     max= request parameters honored when they tighten server limits.
//   - Malformed input is never answered: a bad start line, bad header
//     or unsupported version drops the connection with zero bytes
//     written back.
//   - Observability: plug-in Logger and Meter interfaces.
//
// Quick start:
//
//	srv := oakhttp.NewServer("localhost", 2300)
//	srv.OnGet("/hello", func(req *oakhttp.Request, resp *oakhttp.Response) error {
//	    return resp.EndWith("Hello, World!")
//	})
//	if err := srv.ListenAndServe(); err != nil { log.Fatal(err) }
package oakhttp
