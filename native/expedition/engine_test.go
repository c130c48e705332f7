package expedition

import (
	"math/big"
	"testing"

	"hikechain/core/types"
)

type mockState struct {
	campaigns     map[uint64]*Campaign
	campaignCount uint64
	mountains     map[uint64]*Mountain
	mountainCount uint64
	nfts          map[uint64]*ClimbNFT
	nftCount      uint64
	climberTokens map[[20]byte][]uint64
	climberSeen   map[string]bool
	climbers      map[uint64][][20]byte
	sponsorships  map[uint64][]*Sponsorship
	claims        map[string]*PrizeClaim
	accounts      map[string]*types.Account
}

func newMockState() *mockState {
	return &mockState{
		campaigns:     make(map[uint64]*Campaign),
		mountains:     make(map[uint64]*Mountain),
		nfts:          make(map[uint64]*ClimbNFT),
		climberTokens: make(map[[20]byte][]uint64),
		climberSeen:   make(map[string]bool),
		climbers:      make(map[uint64][][20]byte),
		sponsorships:  make(map[uint64][]*Sponsorship),
		claims:        make(map[string]*PrizeClaim),
		accounts:      make(map[string]*types.Account),
	}
}

func (m *mockState) CampaignGet(id uint64) (*Campaign, bool, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, false, nil
	}
	return c.Clone(), true, nil
}

func (m *mockState) CampaignPut(c *Campaign) error {
	if c == nil {
		return nil
	}
	m.campaigns[c.ID] = c.Clone()
	return nil
}

func (m *mockState) CampaignCount() (uint64, error) { return m.campaignCount, nil }

func (m *mockState) CampaignSetCount(n uint64) error {
	m.campaignCount = n
	return nil
}

func (m *mockState) MountainGet(id uint64) (*Mountain, bool, error) {
	mt, ok := m.mountains[id]
	if !ok {
		return nil, false, nil
	}
	return mt.Clone(), true, nil
}

func (m *mockState) MountainPut(mt *Mountain) error {
	if mt == nil {
		return nil
	}
	m.mountains[mt.ID] = mt.Clone()
	return nil
}

func (m *mockState) MountainCount() (uint64, error) { return m.mountainCount, nil }

func (m *mockState) MountainSetCount(n uint64) error {
	m.mountainCount = n
	return nil
}

func (m *mockState) NFTGet(tokenID uint64) (*ClimbNFT, bool, error) {
	n, ok := m.nfts[tokenID]
	if !ok {
		return nil, false, nil
	}
	return n.Clone(), true, nil
}

func (m *mockState) NFTPut(n *ClimbNFT) error {
	if n == nil {
		return nil
	}
	m.nfts[n.TokenID] = n.Clone()
	return nil
}

func (m *mockState) NFTCount() (uint64, error) { return m.nftCount, nil }

func (m *mockState) NFTSetCount(n uint64) error {
	m.nftCount = n
	return nil
}

func (m *mockState) ClimberTokens(addr [20]byte) ([]uint64, error) {
	tokens := m.climberTokens[addr]
	out := make([]uint64, len(tokens))
	copy(out, tokens)
	return out, nil
}

func (m *mockState) ClimberTokensAppend(addr [20]byte, tokenID uint64) error {
	m.climberTokens[addr] = append(m.climberTokens[addr], tokenID)
	return nil
}

func climberKey(campaignID uint64, addr [20]byte) string {
	return string(append([]byte{byte(campaignID)}, addr[:]...))
}

func (m *mockState) CampaignClimberSeen(campaignID uint64, addr [20]byte) (bool, error) {
	return m.climberSeen[climberKey(campaignID, addr)], nil
}

func (m *mockState) CampaignClimberAdd(campaignID uint64, addr [20]byte) error {
	m.climberSeen[climberKey(campaignID, addr)] = true
	m.climbers[campaignID] = append(m.climbers[campaignID], addr)
	return nil
}

func (m *mockState) CampaignClimbers(campaignID uint64) ([][20]byte, error) {
	list := m.climbers[campaignID]
	out := make([][20]byte, len(list))
	copy(out, list)
	return out, nil
}

func (m *mockState) SponsorshipAppend(s *Sponsorship) error {
	if s == nil {
		return nil
	}
	m.sponsorships[s.CampaignID] = append(m.sponsorships[s.CampaignID], s.Clone())
	return nil
}

func (m *mockState) Sponsorships(campaignID uint64) ([]*Sponsorship, error) {
	records := m.sponsorships[campaignID]
	out := make([]*Sponsorship, 0, len(records))
	for _, record := range records {
		out = append(out, record.Clone())
	}
	return out, nil
}

func (m *mockState) PrizeClaimGet(campaignID uint64, addr [20]byte) (*PrizeClaim, bool, error) {
	claim, ok := m.claims[climberKey(campaignID, addr)]
	if !ok {
		return nil, false, nil
	}
	return claim.Clone(), true, nil
}

func (m *mockState) PrizeClaimPut(c *PrizeClaim) error {
	if c == nil {
		return nil
	}
	m.claims[climberKey(c.CampaignID, c.Climber)] = c.Clone()
	return nil
}

func (m *mockState) GetAccount(addr []byte) (*types.Account, error) {
	if acc, ok := m.accounts[string(addr)]; ok && acc != nil {
		return acc.Clone(), nil
	}
	return nil, nil
}

func (m *mockState) PutAccount(addr []byte, account *types.Account) error {
	if account == nil {
		delete(m.accounts, string(addr))
		return nil
	}
	m.accounts[string(addr)] = account.Clone()
	return nil
}

func (m *mockState) setAccount(addr [20]byte, amount int64) {
	m.accounts[string(addr[:])] = &types.Account{Balance: big.NewInt(amount)}
}

func (m *mockState) account(addr [20]byte) *types.Account {
	if acc, ok := m.accounts[string(addr[:])]; ok {
		return acc.Clone()
	}
	return &types.Account{Balance: big.NewInt(0)}
}

func sumBalances(state *mockState, addrs ...[20]byte) *big.Int {
	total := big.NewInt(0)
	for _, addr := range addrs {
		acc := state.account(addr)
		total = new(big.Int).Add(total, acc.Balance)
	}
	return total
}

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

var (
	testAdmin    = addr(0xA0)
	testVault    = addr(0xAA)
	testTreasury = addr(0xBB)
)

// newTestEngine wires an engine over a fresh mock state with a fixed clock.
func newTestEngine(t *testing.T, now int64) (*Engine, *mockState) {
	t.Helper()
	state := newMockState()
	engine := NewEngine()
	engine.SetState(state)
	engine.SetAdmin(testAdmin)
	engine.SetVault(testVault)
	engine.SetTreasury(testTreasury)
	engine.SetNowFunc(func() int64 { return now })
	return engine, state
}

func TestEngineRequiresState(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.CreateCampaign(testAdmin, "winter", 1, 2); err != errNilState {
		t.Fatalf("expected errNilState, got %v", err)
	}
	if _, err := engine.MintClimbNFT(addr(0x01), 0, ""); err != errNilState {
		t.Fatalf("expected errNilState, got %v", err)
	}
	if _, err := engine.DistributePrizes(0); err != errNilState {
		t.Fatalf("expected errNilState, got %v", err)
	}
}
