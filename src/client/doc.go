// Package client implements asynchronous DNS queries over UDP.
//
// A Client owns a single UDP connection. Queries are assigned 16-bit
// transaction IDs and registered for correlation; inbound datagrams are
// decoded and routed back to the query they answer. Each query yields a
// one-shot handle that resolves with the first response, and a callback
// that receives every response, which allows mDNS queries to stream
// multiple answers through a single registration.
//
// All correlation state is owned by the client's run loop; other goroutines
// interact with it by posting commands, never by locking.
package client
