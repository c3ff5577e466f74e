package ratios

import "github.com/aristath/finsight/pkg/formulas"

// Peer metric keys
const (
	MetricRevenue    = "revenue"
	MetricEbitMargin = "ebit_margin"
	MetricNetMargin  = "net_margin"
	MetricRoic       = "roic"
	MetricFcfTtm     = "fcf_ttm"
)

// MetricStats holds cross-sectional statistics for one metric
type MetricStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Count  int     `json:"count"`
}

// PeerSnapshot aggregates named metrics across a peer set. Immutable once
// built; metrics with no reporting peers are simply absent from the map.
type PeerSnapshot struct {
	Metrics map[string]MetricStats `json:"metrics"`
}

// Stats returns the statistics for a metric, or nil when no peer reported it
func (p *PeerSnapshot) Stats(metric string) *MetricStats {
	if p == nil || p.Metrics == nil {
		return nil
	}
	if s, ok := p.Metrics[metric]; ok {
		return &s
	}
	return nil
}

// BuildPeerSnapshot computes mean/median/stddev per metric over the latest
// ratio row of each peer. Peers missing a metric are excluded from that
// metric's statistics rather than counted as zero.
func BuildPeerSnapshot(peers []Row) PeerSnapshot {
	values := map[string][]float64{}

	collect := func(metric string, v *float64) {
		if v != nil {
			values[metric] = append(values[metric], *v)
		}
	}

	for i := range peers {
		collect(MetricRevenue, peers[i].Revenue)
		collect(MetricEbitMargin, peers[i].EbitMargin)
		collect(MetricNetMargin, peers[i].NetMargin)
		collect(MetricRoic, peers[i].Roic)
		collect(MetricFcfTtm, peers[i].FcfTtm)
	}

	snapshot := PeerSnapshot{Metrics: map[string]MetricStats{}}
	for metric, vals := range values {
		snapshot.Metrics[metric] = MetricStats{
			Mean:   formulas.Mean(vals),
			Median: formulas.Median(vals),
			StdDev: formulas.StdDev(vals),
			Count:  len(vals),
		}
	}

	return snapshot
}
