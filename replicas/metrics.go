package replicas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rejectUnverified   = "unverified"
	rejectUnavailable  = "unavailable"
	rejectInconsistent = "inconsistent"
)

var bundlesAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "packedmerkle_bundles_accepted_total",
	Help: "Bundles verified and inserted into a sink replica",
})

var bundlesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "packedmerkle_bundles_rejected_total",
	Help: "Bundles which could not be fetched or were not accepted, by reason",
}, []string{"reason"})

var peersQuarantined = promauto.NewCounter(prometheus.CounterOpts{
	Name: "packedmerkle_peers_quarantined_total",
	Help: "Peers excluded from replication after serving bad bundles",
})

var bundleCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "packedmerkle_bundle_cache_hits_total",
	Help: "Bundles answered from the bundle cache",
})

var bundleCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
	Name: "packedmerkle_bundle_cache_misses_total",
	Help: "Bundles built from the tree because the cache did not have them",
})
