// Package replicas moves a packed merkle tree between peers.
//
// A source publishes a signed TreeState. A peer which trusts the signer
// reserves an empty replica from it with ReserveFromSigned, then a Replicator
// fills the replica one ordinal at a time from whichever peers hold the
// payloads. Bundles travel CBOR encoded (EncodeBundle, DecodeBundle) and are
// verified against the reserved root before anything is written, so the peers
// themselves need not be trusted.
package replicas
