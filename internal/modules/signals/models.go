package signals

import (
	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/internal/modules/ratios"
)

// Signal is one fired rule. Weight is a signed contribution to the
// aggregate sentiment score: positive is favorable, negative is a risk.
type Signal struct {
	Title  string  `json:"title"`
	Detail string  `json:"detail"`
	Weight float64 `json:"weight"`
}

// Context is the read-only evaluation context shared by all rules.
// Previous-period data, peer benchmarks and the inventory trend are
// optional; rules missing a required input skip silently.
type Context struct {
	Current        *domain.KpiRecord
	Previous       *domain.KpiRecord
	CurrentRatios  *ratios.Row
	PreviousRatios *ratios.Row
	InventoryYoY   *float64
	Peers          *ratios.PeerSnapshot
}
