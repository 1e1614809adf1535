// Package resolver provides typed DNS queries on top of the asynchronous
// client: address, SRV, TXT and PTR lookups that return parsed results
// rather than raw messages.
//
// Names under ".local." are queried via multicast DNS when a multicast
// client is configured; everything else goes to the configured unicast
// nameserver.
package resolver
