package ratios

import (
	"math"
	"testing"
)

func TestBuildPeerSnapshot(t *testing.T) {
	peers := []Row{
		{EbitMargin: fp(10), Roic: fp(5)},
		{EbitMargin: fp(20), Roic: fp(15)},
		{EbitMargin: fp(30)}, // ROIC unreported, excluded from that metric
	}

	snapshot := BuildPeerSnapshot(peers)

	ebit := snapshot.Stats(MetricEbitMargin)
	if ebit == nil {
		t.Fatal("Expected EBIT margin stats")
	}
	if ebit.Count != 3 {
		t.Errorf("Expected 3 EBIT margin observations, got %d", ebit.Count)
	}
	if math.Abs(ebit.Mean-20) > 1e-9 {
		t.Errorf("Expected mean 20, got %f", ebit.Mean)
	}
	if math.Abs(ebit.Median-20) > 1e-9 {
		t.Errorf("Expected median 20, got %f", ebit.Median)
	}

	roic := snapshot.Stats(MetricRoic)
	if roic == nil {
		t.Fatal("Expected ROIC stats")
	}
	if roic.Count != 2 {
		t.Errorf("Expected 2 ROIC observations, got %d", roic.Count)
	}

	if snapshot.Stats(MetricFcfTtm) != nil {
		t.Error("Expected no stats for a metric no peer reported")
	}
}

func TestPeerSnapshot_Stats_NilSafe(t *testing.T) {
	var snapshot *PeerSnapshot
	if snapshot.Stats(MetricRevenue) != nil {
		t.Error("Expected nil stats from a nil snapshot")
	}
}
