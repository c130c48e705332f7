package state

import (
	"encoding/binary"
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"hikechain/core/types"
	"hikechain/native/expedition"
	"hikechain/storage"
)

// Manager persists ledger state into a key-value backend. Each record lives
// under a keccak-hashed, prefix-scoped key and is RLP encoded. The manager is
// not safe for concurrent use; the node serializes access to it.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager operating on the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

func hashedKey(prefix []byte, suffix []byte) []byte {
	buf := make([]byte, 0, len(prefix)+len(suffix))
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return ethcrypto.Keccak256(buf)
}

func uintSuffix(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func addrSuffix(campaignID uint64, addr [20]byte) []byte {
	buf := make([]byte, 0, 28)
	buf = append(buf, uintSuffix(campaignID)...)
	buf = append(buf, addr[:]...)
	return buf
}

func (m *Manager) write(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.db.Put(key, encoded)
}

func (m *Manager) read(key []byte, out interface{}) (bool, error) {
	ok, err := m.db.Has(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	data, err := m.db.Get(key)
	if err != nil {
		return false, err
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) readCount(key []byte) (uint64, error) {
	var count uint64
	ok, err := m.read(key, &count)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return count, nil
}

// --- Accounts ---

// GetAccount loads the account record for an address. Unknown addresses
// return nil so callers can lazily initialise them.
func (m *Manager) GetAccount(addr []byte) (*types.Account, error) {
	account := new(types.Account)
	ok, err := m.read(hashedKey(accountPrefix, addr), account)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return account, nil
}

// PutAccount persists the account record for an address.
func (m *Manager) PutAccount(addr []byte, account *types.Account) error {
	if account == nil {
		return fmt.Errorf("state: nil account for %x", addr)
	}
	if account.Balance == nil {
		account.Balance = big.NewInt(0)
	}
	return m.write(hashedKey(accountPrefix, addr), account)
}

// --- Campaigns ---

func (m *Manager) CampaignGet(id uint64) (*expedition.Campaign, bool, error) {
	campaign := new(expedition.Campaign)
	ok, err := m.read(hashedKey(campaignPrefix, uintSuffix(id)), campaign)
	if err != nil || !ok {
		return nil, false, err
	}
	return campaign, true, nil
}

func (m *Manager) CampaignPut(c *expedition.Campaign) error {
	if c == nil {
		return fmt.Errorf("state: nil campaign")
	}
	if c.PrizePool == nil {
		c.PrizePool = big.NewInt(0)
	}
	return m.write(hashedKey(campaignPrefix, uintSuffix(c.ID)), c)
}

func (m *Manager) CampaignCount() (uint64, error) {
	return m.readCount(hashedKey(campaignCountKeyBytes, nil))
}

func (m *Manager) CampaignSetCount(n uint64) error {
	return m.write(hashedKey(campaignCountKeyBytes, nil), n)
}

// --- Mountains ---

func (m *Manager) MountainGet(id uint64) (*expedition.Mountain, bool, error) {
	mountain := new(expedition.Mountain)
	ok, err := m.read(hashedKey(mountainPrefix, uintSuffix(id)), mountain)
	if err != nil || !ok {
		return nil, false, err
	}
	return mountain, true, nil
}

func (m *Manager) MountainPut(mt *expedition.Mountain) error {
	if mt == nil {
		return fmt.Errorf("state: nil mountain")
	}
	return m.write(hashedKey(mountainPrefix, uintSuffix(mt.ID)), mt)
}

func (m *Manager) MountainCount() (uint64, error) {
	return m.readCount(hashedKey(mountainCountKeyBytes, nil))
}

func (m *Manager) MountainSetCount(n uint64) error {
	return m.write(hashedKey(mountainCountKeyBytes, nil), n)
}

// --- Climb tokens ---

func (m *Manager) NFTGet(tokenID uint64) (*expedition.ClimbNFT, bool, error) {
	token := new(expedition.ClimbNFT)
	ok, err := m.read(hashedKey(nftPrefix, uintSuffix(tokenID)), token)
	if err != nil || !ok {
		return nil, false, err
	}
	return token, true, nil
}

func (m *Manager) NFTPut(n *expedition.ClimbNFT) error {
	if n == nil {
		return fmt.Errorf("state: nil token")
	}
	return m.write(hashedKey(nftPrefix, uintSuffix(n.TokenID)), n)
}

func (m *Manager) NFTCount() (uint64, error) {
	return m.readCount(hashedKey(nftCountKeyBytes, nil))
}

func (m *Manager) NFTSetCount(n uint64) error {
	return m.write(hashedKey(nftCountKeyBytes, nil), n)
}

func (m *Manager) ClimberTokens(addr [20]byte) ([]uint64, error) {
	var tokens []uint64
	key := hashedKey(climberTokensPrefix, addr[:])
	if _, err := m.read(key, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (m *Manager) ClimberTokensAppend(addr [20]byte, tokenID uint64) error {
	tokens, err := m.ClimberTokens(addr)
	if err != nil {
		return err
	}
	tokens = append(tokens, tokenID)
	return m.write(hashedKey(climberTokensPrefix, addr[:]), tokens)
}

// --- Per-campaign verified climber set ---

func (m *Manager) CampaignClimberSeen(campaignID uint64, addr [20]byte) (bool, error) {
	var seen bool
	key := hashedKey(campaignClimberPrefix, addrSuffix(campaignID, addr))
	ok, err := m.read(key, &seen)
	if err != nil {
		return false, err
	}
	return ok && seen, nil
}

func (m *Manager) CampaignClimberAdd(campaignID uint64, addr [20]byte) error {
	key := hashedKey(campaignClimberPrefix, addrSuffix(campaignID, addr))
	if err := m.write(key, true); err != nil {
		return err
	}
	climbers, err := m.CampaignClimbers(campaignID)
	if err != nil {
		return err
	}
	climbers = append(climbers, addr)
	return m.write(hashedKey(campaignClimbersPrefix, uintSuffix(campaignID)), climbers)
}

func (m *Manager) CampaignClimbers(campaignID uint64) ([][20]byte, error) {
	var climbers [][20]byte
	key := hashedKey(campaignClimbersPrefix, uintSuffix(campaignID))
	if _, err := m.read(key, &climbers); err != nil {
		return nil, err
	}
	return climbers, nil
}

// --- Sponsorships ---

func (m *Manager) SponsorshipAppend(s *expedition.Sponsorship) error {
	if s == nil {
		return fmt.Errorf("state: nil sponsorship")
	}
	records, err := m.Sponsorships(s.CampaignID)
	if err != nil {
		return err
	}
	records = append(records, s.Clone())
	return m.write(hashedKey(sponsorshipsPrefix, uintSuffix(s.CampaignID)), records)
}

func (m *Manager) Sponsorships(campaignID uint64) ([]*expedition.Sponsorship, error) {
	var records []*expedition.Sponsorship
	key := hashedKey(sponsorshipsPrefix, uintSuffix(campaignID))
	if _, err := m.read(key, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// --- Prize claims ---

func (m *Manager) PrizeClaimGet(campaignID uint64, addr [20]byte) (*expedition.PrizeClaim, bool, error) {
	claim := new(expedition.PrizeClaim)
	key := hashedKey(prizeClaimPrefix, addrSuffix(campaignID, addr))
	ok, err := m.read(key, claim)
	if err != nil || !ok {
		return nil, false, err
	}
	return claim, true, nil
}

func (m *Manager) PrizeClaimPut(c *expedition.PrizeClaim) error {
	if c == nil {
		return fmt.Errorf("state: nil prize claim")
	}
	if c.Amount == nil {
		c.Amount = big.NewInt(0)
	}
	key := hashedKey(prizeClaimPrefix, addrSuffix(c.CampaignID, c.Climber))
	return m.write(key, c)
}
