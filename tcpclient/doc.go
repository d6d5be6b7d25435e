// Package tcpclient provides a buffered, timeout-aware TCP client for
// line-oriented device protocols, where a sensor exchanges ASCII or binary
// frames terminated by CR or LF.
//
// # Connecting
//
// A [Client] is created unopened with [New] and connected with
// [Client.Open] to a numeric IPv4 address ("localhost" is accepted as
// 127.0.0.1; no DNS lookup is performed). The connect attempt is bounded by
// the configured connect timeout, 2 seconds by default. Failures are reported
// with distinct sentinel errors so callers can tell "never connected" from
// "connected then rejected":
//
//   - [ErrAddressParse]: the address is not a dotted-quad IPv4 literal.
//   - [ErrSocketCreate]: the socket could not be created.
//   - [ErrConnectTimeout]: the handshake did not complete in time.
//   - [ErrConnectRejected]: the peer refused or reset the connection.
//   - [ErrConnectFailed]: any other connect failure.
//
// A failed Open never leaves a socket behind.
//
// # Reading
//
// [Client.Read] assembles up to len(p) bytes in three tiers, each engaged only
// while a deficit remains:
//
//  1. the client's ring buffer;
//  2. one non-blocking receive of whatever the OS has already queued, pushed
//     through the ring buffer;
//  3. one blocking receive for the remainder, bounded by the caller's timeout.
//
// A short count is not an error: a lapsed timeout yields the bytes gathered
// so far with a nil error. Callers needing an exact count loop.
//
// [Client.ReadLine] builds a line one byte at a time on top of Read, stopping
// at CR or LF. When the caller's buffer fills first, the last byte is held
// back and replayed at the start of the next call, so no byte is lost or
// duplicated across calls.
//
// # Concurrency
//
// A Client is meant for sequential use by one goroutine. Only
// [Client.Metrics] may be read concurrently.
package tcpclient
