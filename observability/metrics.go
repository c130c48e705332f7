package observability

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records campaign/reward ledger activity for the node's
// prometheus endpoint.
type LedgerMetrics struct {
	campaignsCreated  prometheus.Counter
	mountainsAdded    prometheus.Counter
	sponsorships      prometheus.Counter
	sponsoredValue    prometheus.Counter
	tokensMinted      prometheus.Counter
	tokensVerified    prometheus.Counter
	distributions     prometheus.Counter
	prizeClaims       prometheus.Counter
	prizeClaimedValue prometheus.Counter
}

var (
	ledgerMetricsOnce sync.Once
	ledgerRegistry    *LedgerMetrics
)

// Ledger returns the lazily-initialised ledger metrics registry.
func Ledger() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerRegistry = &LedgerMetrics{
			campaignsCreated: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "campaigns_created_total",
				Help:      "Total campaigns opened by the administrator.",
			}),
			mountainsAdded: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "mountains_added_total",
				Help:      "Total mountains registered across all campaigns.",
			}),
			sponsorships: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "sponsorships_total",
				Help:      "Total sponsorship deposits accepted.",
			}),
			sponsoredValue: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "sponsored_value_wei_total",
				Help:      "Cumulative native value deposited into prize pools.",
			}),
			tokensMinted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "climb_tokens_minted_total",
				Help:      "Total proof-of-climb tokens minted.",
			}),
			tokensVerified: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "climb_tokens_verified_total",
				Help:      "Total proof-of-climb tokens verified by the administrator.",
			}),
			distributions: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "distributions_total",
				Help:      "Total campaigns settled.",
			}),
			prizeClaims: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "prize_claims_total",
				Help:      "Total prize shares pulled by climbers.",
			}),
			prizeClaimedValue: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hike",
				Subsystem: "ledger",
				Name:      "prize_claimed_value_wei_total",
				Help:      "Cumulative native value paid out to climbers.",
			}),
		}
		prometheus.MustRegister(
			ledgerRegistry.campaignsCreated,
			ledgerRegistry.mountainsAdded,
			ledgerRegistry.sponsorships,
			ledgerRegistry.sponsoredValue,
			ledgerRegistry.tokensMinted,
			ledgerRegistry.tokensVerified,
			ledgerRegistry.distributions,
			ledgerRegistry.prizeClaims,
			ledgerRegistry.prizeClaimedValue,
		)
	})
	return ledgerRegistry
}

func addBig(counter prometheus.Counter, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	value, _ := new(big.Float).SetInt(amount).Float64()
	counter.Add(value)
}

// CampaignCreated records a new campaign.
func (m *LedgerMetrics) CampaignCreated() { m.campaignsCreated.Inc() }

// MountainAdded records a new mountain registration.
func (m *LedgerMetrics) MountainAdded() { m.mountainsAdded.Inc() }

// Sponsored records a deposit and its value.
func (m *LedgerMetrics) Sponsored(amount *big.Int) {
	m.sponsorships.Inc()
	addBig(m.sponsoredValue, amount)
}

// TokenMinted records a mint.
func (m *LedgerMetrics) TokenMinted() { m.tokensMinted.Inc() }

// TokenVerified records a verification.
func (m *LedgerMetrics) TokenVerified() { m.tokensVerified.Inc() }

// Distributed records a settlement.
func (m *LedgerMetrics) Distributed() { m.distributions.Inc() }

// PrizeClaimed records a pulled payout and its value.
func (m *LedgerMetrics) PrizeClaimed(amount *big.Int) {
	m.prizeClaims.Inc()
	addBig(m.prizeClaimedValue, amount)
}
