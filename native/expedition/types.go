package expedition

import (
	"fmt"
	"math/big"
	"strings"
)

// Campaign is a time-boxed reward pool. Sponsorship deposits accumulate in
// PrizePool until the window closes and the pool is split among the verified
// climbers. Distributed flips false to true exactly once.
type Campaign struct {
	ID               uint64   `json:"id"`
	Name             string   `json:"name"`
	StartTime        uint64   `json:"startTime"`
	EndTime          uint64   `json:"endTime"`
	PrizePool        *big.Int `json:"prizePool"`
	ParticipantCount uint64   `json:"participantCount"`
	Active           bool     `json:"active"`
	Distributed      bool     `json:"distributed"`
	CreatedAt        uint64   `json:"createdAt"`
}

// Clone returns a deep copy of the campaign so callers can safely mutate the
// copy without affecting the stored instance.
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	clone := *c
	if c.PrizePool != nil {
		clone.PrizePool = new(big.Int).Set(c.PrizePool)
	} else {
		clone.PrizePool = big.NewInt(0)
	}
	return &clone
}

// Mountain is a climbable objective registered under a campaign. Everything
// except the Active toggle is immutable after creation.
type Mountain struct {
	ID         uint64 `json:"id"`
	CampaignID uint64 `json:"campaignId"`
	Name       string `json:"name"`
	Altitude   uint64 `json:"altitude"`
	Location   string `json:"location"`
	Active     bool   `json:"active"`
}

// Clone returns a copy of the mountain record.
func (m *Mountain) Clone() *Mountain {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// ClimbNFT is the proof-of-climb token minted for one climb claim. Climber is
// recorded at mint time and never changes; Owner follows standard token
// transfers. Prize eligibility keys off Climber, not Owner, so trading the
// token after verification cannot redirect the payout.
type ClimbNFT struct {
	TokenID    uint64   `json:"tokenId"`
	MountainID uint64   `json:"mountainId"`
	Climber    [20]byte `json:"climber"`
	Owner      [20]byte `json:"owner"`
	ClimbedAt  uint64   `json:"climbedAt"`
	ProofURI   string   `json:"proofUri"`
	Verified   bool     `json:"verified"`
}

// Clone returns a copy of the token record.
func (n *ClimbNFT) Clone() *ClimbNFT {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

// NFTInfo is the read model returned for a token, with the mountain attributes
// resolved through MountainID.
type NFTInfo struct {
	TokenID      uint64   `json:"tokenId"`
	MountainID   uint64   `json:"mountainId"`
	MountainName string   `json:"mountainName"`
	Altitude     uint64   `json:"altitude"`
	ClimbedAt    uint64   `json:"climbedAt"`
	Climber      [20]byte `json:"climber"`
	Owner        [20]byte `json:"owner"`
	ProofURI     string   `json:"proofUri"`
	Verified     bool     `json:"verified"`
}

// Sponsorship records one prize-pool deposit. There is no refund path; the
// list per campaign is append-only.
type Sponsorship struct {
	CampaignID  uint64   `json:"campaignId"`
	Sponsor     [20]byte `json:"sponsor"`
	Name        string   `json:"name"`
	LogoURI     string   `json:"logoUri"`
	Amount      *big.Int `json:"amount"`
	SponsoredAt uint64   `json:"sponsoredAt"`
}

// Clone returns a deep copy of the sponsorship record.
func (s *Sponsorship) Clone() *Sponsorship {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Amount != nil {
		clone.Amount = new(big.Int).Set(s.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// PrizeClaim is the pull-based payout record written at distribution time for
// each unique verified climber. Claimed flips once; a second claim attempt is
// rejected rather than paid twice.
type PrizeClaim struct {
	CampaignID uint64   `json:"campaignId"`
	Climber    [20]byte `json:"climber"`
	Amount     *big.Int `json:"amount"`
	Claimed    bool     `json:"claimed"`
	ClaimedAt  uint64   `json:"claimedAt"`
}

// Clone returns a deep copy of the claim record.
func (p *PrizeClaim) Clone() *PrizeClaim {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Amount != nil {
		clone.Amount = new(big.Int).Set(p.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

func sanitizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	return trimmed, nil
}
