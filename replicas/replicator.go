package replicas

import (
	"context"
	"errors"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-packedmerkle/packed"
	"github.com/google/uuid"
)

// Peer is a replica the sink can ask for bundles
type Peer struct {
	ID     uuid.UUID
	Source BundleSource
}

// NewPeer identifies source with a fresh random id
func NewPeer(source BundleSource) Peer {
	return Peer{ID: uuid.New(), Source: source}
}

type ReplicatorConfig struct {
	// MaxRejects quarantines a peer once this many of its bundles have failed
	// verification. Zero means a peer is never quarantined for bad proofs.
	MaxRejects int
}

// Replicator fills a sink replica from its peers. Every bundle is verified
// against the sink's root before anything is written, so a peer need not be
// trusted, only the root the sink was reserved with.
//
// A Replicator is the single mutator of its sink for as long as it runs.
type Replicator struct {
	Cfg   ReplicatorConfig
	Log   logger.Logger
	Sink  *packed.Tree
	Peers []Peer

	rejects     map[uuid.UUID]int
	quarantined map[uuid.UUID]bool
}

func NewReplicator(cfg ReplicatorConfig, log logger.Logger, sink *packed.Tree, peers ...Peer) (*Replicator, error) {
	if sink == nil {
		return nil, ErrSinkNotProvided
	}
	return &Replicator{
		Cfg:         cfg,
		Log:         log,
		Sink:        sink,
		Peers:       peers,
		rejects:     make(map[uuid.UUID]int),
		quarantined: make(map[uuid.UUID]bool),
	}, nil
}

// Missing returns the ordinals for which the sink does not hold a payload
func (r *Replicator) Missing() []uint64 {
	var missing []uint64
	for ordinal := uint64(0); ordinal < r.Sink.Leaves(); ordinal++ {
		key, ok := r.Sink.IthLeaf(ordinal)
		if ok && r.Sink.HasData(key) {
			continue
		}
		missing = append(missing, ordinal)
	}
	return missing
}

// Reconcile asks the peers for every ordinal the sink is missing.
//
// Parameters:
//
//	ctx - checked between ordinals, a cancelled reconciliation keeps what it
//	      has already inserted
//
// Returns:
//
//	error - ErrOrdinalsUnresolved if some ordinals could not be filled,
//	        ErrPeerInconsistent if a peer served a conflicting bundle
func (r *Replicator) Reconcile(ctx context.Context) error {
	return r.ReplicateOrdinals(ctx, r.Missing())
}

// ReplicateOrdinals asks the peers, in order, for each of the ordinals until
// one supplies a bundle the sink accepts
func (r *Replicator) ReplicateOrdinals(ctx context.Context, ordinals []uint64) error {
	r.Log.Infof("replicating %d ordinals of %d from %d peers", len(ordinals), r.Sink.Leaves(), len(r.Peers))

	var unresolved []uint64
	for _, ordinal := range ordinals {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := r.replicateOrdinal(ctx, ordinal)
		if err != nil {
			return err
		}
		if !ok {
			unresolved = append(unresolved, ordinal)
		}
	}
	if len(unresolved) > 0 {
		return fmt.Errorf("%w: %v", ErrOrdinalsUnresolved, unresolved)
	}
	return nil
}

func (r *Replicator) replicateOrdinal(ctx context.Context, ordinal uint64) (bool, error) {
	for _, peer := range r.Peers {
		if r.quarantined[peer.ID] {
			continue
		}

		b, ok, err := peer.Source.GetBundle(ctx, ordinal)
		if err != nil {
			// the next peer may still have it
			r.Log.Infof("peer %s: ordinal %d: %v", peer.ID, ordinal, err)
			bundlesRejected.WithLabelValues(rejectUnavailable).Inc()
			continue
		}
		if !ok {
			continue
		}

		ok, err = r.Sink.InsertBundle(b)
		if errors.Is(err, packed.ErrSlotConflict) {
			bundlesRejected.WithLabelValues(rejectInconsistent).Inc()
			r.quarantine(peer)
			return false, fmt.Errorf("%w: peer %s, ordinal %d: %w", ErrPeerInconsistent, peer.ID, ordinal, err)
		}
		if err != nil {
			return false, err
		}
		if !ok {
			bundlesRejected.WithLabelValues(rejectUnverified).Inc()
			r.reject(peer, ordinal)
			continue
		}

		bundlesAccepted.Inc()
		r.Log.Debugf("peer %s: ordinal %d accepted", peer.ID, ordinal)
		return true, nil
	}
	return false, nil
}

func (r *Replicator) reject(peer Peer, ordinal uint64) {
	r.rejects[peer.ID]++
	r.Log.Infof("peer %s: ordinal %d: bundle does not verify against the sink root", peer.ID, ordinal)
	if r.Cfg.MaxRejects > 0 && r.rejects[peer.ID] >= r.Cfg.MaxRejects {
		r.quarantine(peer)
	}
}

func (r *Replicator) quarantine(peer Peer) {
	if r.quarantined[peer.ID] {
		return
	}
	r.quarantined[peer.ID] = true
	peersQuarantined.Inc()
	r.Log.Infof("peer %s quarantined after %d rejected bundles", peer.ID, r.rejects[peer.ID])
}

// Quarantined returns the peers which are no longer asked for bundles
func (r *Replicator) Quarantined() []uuid.UUID {
	var ids []uuid.UUID
	for _, peer := range r.Peers {
		if r.quarantined[peer.ID] {
			ids = append(ids, peer.ID)
		}
	}
	return ids
}
