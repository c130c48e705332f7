package core

import (
	"encoding/hex"
	"log/slog"
	"math/big"
	"sync"

	"hikechain/core/events"
	"hikechain/core/state"
	"hikechain/core/types"
	"hikechain/native/expedition"
	"hikechain/observability"
	"hikechain/storage"
)

// maxRecordedEvents bounds the in-memory event log exposed over RPC.
const maxRecordedEvents = 4096

// Node owns the ledger state and executes every operation under a single
// lock, mirroring the serialized-transaction model of a chain VM: one call
// commits fully before the next observes state, so ordering hazards reduce to
// call ordering and no partial application is ever visible.
type Node struct {
	mu      sync.Mutex
	state   *state.Manager
	engine  *expedition.Engine
	metrics *observability.LedgerMetrics
	logger  *slog.Logger
	events  []types.Event
	admin   [20]byte
}

// NewNode wires a node over the provided database with the given privileged
// addresses. The vault holds undistributed pools; the treasury receives
// distribution remainders.
func NewNode(db storage.Database, admin, vault, treasury [20]byte) *Node {
	manager := state.NewManager(db)
	engine := expedition.NewEngine()
	engine.SetState(manager)
	engine.SetAdmin(admin)
	engine.SetVault(vault)
	engine.SetTreasury(treasury)

	node := &Node{
		state:   manager,
		engine:  engine,
		metrics: observability.Ledger(),
		logger:  slog.Default(),
		admin:   admin,
	}
	engine.SetEmitter(node)
	return node
}

// SetLogger overrides the node's logger.
func (n *Node) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	n.logger = logger
}

// SetNowFunc overrides the ledger clock. Intended for tests.
func (n *Node) SetNowFunc(now func() int64) {
	n.engine.SetNowFunc(now)
}

// Admin returns the administrator address the node was started with.
func (n *Node) Admin() [20]byte { return n.admin }

// Emit implements events.Emitter. Emitted events are appended to a bounded
// in-memory log served over RPC.
func (n *Node) Emit(evt events.Event) {
	carrier, ok := evt.(interface{ Event() *types.Event })
	if !ok {
		return
	}
	payload := carrier.Event()
	if payload == nil {
		return
	}
	if len(n.events) >= maxRecordedEvents {
		n.events = n.events[1:]
	}
	n.events = append(n.events, *payload)
	n.logger.Info("ledger event", "type", payload.Type, "attributes", payload.Attributes)
}

// Events returns a copy of the recorded event log.
func (n *Node) Events() []types.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]types.Event, len(n.events))
	copy(out, n.events)
	return out
}

// --- Campaign registry ---

func (n *Node) CampaignCreate(caller [20]byte, name string, startTime, endTime uint64) (*expedition.Campaign, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	campaign, err := n.engine.CreateCampaign(caller, name, startTime, endTime)
	if err != nil {
		return nil, err
	}
	n.metrics.CampaignCreated()
	return campaign, nil
}

func (n *Node) CampaignSponsor(sponsor [20]byte, campaignID uint64, name, logoURI string, amount *big.Int) (*expedition.Sponsorship, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	record, err := n.engine.SponsorCampaign(sponsor, campaignID, name, logoURI, amount)
	if err != nil {
		return nil, err
	}
	n.metrics.Sponsored(record.Amount)
	return record, nil
}

func (n *Node) CampaignInfo(campaignID uint64) (*expedition.Campaign, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.CampaignInfo(campaignID)
}

func (n *Node) CampaignCount() (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.CampaignCount()
}

func (n *Node) Sponsorships(campaignID uint64) ([]*expedition.Sponsorship, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.Sponsorships(campaignID)
}

// --- Mountain registry ---

func (n *Node) MountainAdd(caller [20]byte, campaignID uint64, name string, altitude uint64, location string) (*expedition.Mountain, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	mountain, err := n.engine.AddMountain(caller, campaignID, name, altitude, location)
	if err != nil {
		return nil, err
	}
	n.metrics.MountainAdded()
	return mountain, nil
}

func (n *Node) MountainSetActive(caller [20]byte, mountainID uint64, active bool) (*expedition.Mountain, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.SetMountainActive(caller, mountainID, active)
}

func (n *Node) MountainInfo(mountainID uint64) (*expedition.Mountain, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.MountainInfo(mountainID)
}

func (n *Node) MountainCount() (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.MountainCount()
}

// --- Climb tokens ---

func (n *Node) NFTMint(climber [20]byte, mountainID uint64, proofURI string) (*expedition.ClimbNFT, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	token, err := n.engine.MintClimbNFT(climber, mountainID, proofURI)
	if err != nil {
		return nil, err
	}
	n.metrics.TokenMinted()
	return token, nil
}

func (n *Node) NFTVerify(caller [20]byte, tokenID uint64) (*expedition.ClimbNFT, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	token, err := n.engine.VerifyNFT(caller, tokenID)
	if err != nil {
		return nil, err
	}
	n.metrics.TokenVerified()
	return token, nil
}

func (n *Node) NFTTransfer(caller, to [20]byte, tokenID uint64) (*expedition.ClimbNFT, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.TransferNFT(caller, to, tokenID)
}

func (n *Node) NFTInfo(tokenID uint64) (*expedition.NFTInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.TokenInfo(tokenID)
}

func (n *Node) ParticipantTokens(addr [20]byte) ([]uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.ParticipantTokens(addr)
}

func (n *Node) TokenCount() (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.TokenCount()
}

// --- Prize distribution ---

func (n *Node) DistributePrizes(campaignID uint64) (*expedition.Campaign, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	campaign, err := n.engine.DistributePrizes(campaignID)
	if err != nil {
		return nil, err
	}
	n.metrics.Distributed()
	return campaign, nil
}

func (n *Node) ClaimPrize(caller [20]byte, campaignID uint64) (*expedition.PrizeClaim, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	claim, err := n.engine.ClaimPrize(caller, campaignID)
	if err != nil {
		return nil, err
	}
	n.metrics.PrizeClaimed(claim.Amount)
	return claim, nil
}

func (n *Node) PrizeClaimInfo(campaignID uint64, addr [20]byte) (*expedition.PrizeClaim, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.engine.PrizeClaimInfo(campaignID, addr)
}

// --- Accounts ---

// MintFunds credits native balance to an address. Admin only; this is the
// supply entry point for deployments without an external bridge.
func (n *Node) MintFunds(caller, to [20]byte, amount *big.Int) (*types.Account, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if caller != n.admin {
		return nil, expedition.ErrUnauthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, expedition.ErrInvalidAmount
	}
	account, err := n.state.GetAccount(to[:])
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = &types.Account{Balance: big.NewInt(0)}
	}
	if account.Balance == nil {
		account.Balance = big.NewInt(0)
	}
	account.Balance = new(big.Int).Add(account.Balance, amount)
	if err := n.state.PutAccount(to[:], account); err != nil {
		return nil, err
	}
	n.logger.Info("funds minted", "to", hex.EncodeToString(to[:]), "amount", amount.String())
	return account.Clone(), nil
}

// Balance returns the account record for an address, or a zeroed account when
// the address has never been touched.
func (n *Node) Balance(addr [20]byte) (*types.Account, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	account, err := n.state.GetAccount(addr[:])
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &types.Account{Balance: big.NewInt(0)}, nil
	}
	return account.Clone(), nil
}
