package expedition

import (
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"hikechain/core/events"
	"hikechain/core/types"
)

var (
	errNilState         = errors.New("expedition engine: state not configured")
	errVaultNotSet      = errors.New("expedition engine: prize vault not configured")
	errTreasuryNotSet   = errors.New("expedition engine: treasury not configured")
	errVaultUnderfunded = errors.New("expedition engine: prize vault underfunded")
)

type engineState interface {
	CampaignGet(id uint64) (*Campaign, bool, error)
	CampaignPut(c *Campaign) error
	CampaignCount() (uint64, error)
	CampaignSetCount(n uint64) error
	MountainGet(id uint64) (*Mountain, bool, error)
	MountainPut(m *Mountain) error
	MountainCount() (uint64, error)
	MountainSetCount(n uint64) error
	NFTGet(tokenID uint64) (*ClimbNFT, bool, error)
	NFTPut(n *ClimbNFT) error
	NFTCount() (uint64, error)
	NFTSetCount(n uint64) error
	ClimberTokens(addr [20]byte) ([]uint64, error)
	ClimberTokensAppend(addr [20]byte, tokenID uint64) error
	CampaignClimberSeen(campaignID uint64, addr [20]byte) (bool, error)
	CampaignClimberAdd(campaignID uint64, addr [20]byte) error
	CampaignClimbers(campaignID uint64) ([][20]byte, error)
	SponsorshipAppend(s *Sponsorship) error
	Sponsorships(campaignID uint64) ([]*Sponsorship, error)
	PrizeClaimGet(campaignID uint64, addr [20]byte) (*PrizeClaim, bool, error)
	PrizeClaimPut(c *PrizeClaim) error
	GetAccount(addr []byte) (*types.Account, error)
	PutAccount(addr []byte, account *types.Account) error
}

// Engine wires the campaign/reward ledger business logic with persistence and
// event emission. All value movement flows through the configured vault
// account; the treasury absorbs integer-division dust at distribution time.
type Engine struct {
	state    engineState
	emitter  events.Emitter
	nowFn    func() int64
	admin    [20]byte
	vault    [20]byte
	treasury [20]byte
}

// NewEngine constructs an engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetAdmin configures the address allowed to perform privileged operations.
func (e *Engine) SetAdmin(addr [20]byte) { e.admin = addr }

// Admin returns the configured administrator address.
func (e *Engine) Admin() [20]byte { return e.admin }

// SetVault configures the account that holds all undistributed prize pools.
func (e *Engine) SetVault(addr [20]byte) { e.vault = addr }

// SetTreasury configures the account that receives distribution remainders.
func (e *Engine) SetTreasury(addr [20]byte) { e.treasury = addr }

func (e *Engine) emit(evt *types.Event) {
	if e == nil || evt == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(WrapEvent(evt))
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) requireAdmin(caller [20]byte) error {
	if caller != e.admin || isZeroAddress(caller) {
		return ErrUnauthorized
	}
	return nil
}

func ensureAccount(acc *types.Account) *types.Account {
	if acc == nil {
		return &types.Account{Balance: big.NewInt(0)}
	}
	if acc.Balance == nil {
		acc.Balance = big.NewInt(0)
	}
	return acc
}

// transfer moves amount between two accounts, failing when the source balance
// cannot cover it. Both accounts are persisted before returning.
func (e *Engine) transfer(from [20]byte, to [20]byte, amount *big.Int, underfunded error) error {
	fromAcc, err := e.state.GetAccount(from[:])
	if err != nil {
		return err
	}
	fromAcc = ensureAccount(fromAcc)
	if fromAcc.Balance.Cmp(amount) < 0 {
		return underfunded
	}
	fromAcc.Balance = new(big.Int).Sub(fromAcc.Balance, amount)
	if err := e.state.PutAccount(from[:], fromAcc); err != nil {
		return err
	}
	toAcc, err := e.state.GetAccount(to[:])
	if err != nil {
		return err
	}
	toAcc = ensureAccount(toAcc)
	toAcc.Balance = new(big.Int).Add(toAcc.Balance, amount)
	return e.state.PutAccount(to[:], toAcc)
}

func hexAddr(addr [20]byte) string {
	return "0x" + hex.EncodeToString(addr[:])
}

func newBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}
