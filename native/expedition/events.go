package expedition

import (
	"math/big"
	"strconv"

	"hikechain/core/events"
	"hikechain/core/types"
)

const (
	// EventTypeCampaignCreated is emitted when the admin opens a campaign.
	EventTypeCampaignCreated = "expedition.campaign.created"
	// EventTypeCampaignSponsored is emitted when a deposit grows a prize pool.
	EventTypeCampaignSponsored = "expedition.campaign.sponsored"
	// EventTypeMountainAdded is emitted when a mountain joins a campaign.
	EventTypeMountainAdded = "expedition.mountain.added"
	// EventTypeNFTMinted is emitted when a climb claim token is issued.
	EventTypeNFTMinted = "expedition.nft.minted"
	// EventTypeNFTVerified is emitted when the admin verifies a claim.
	EventTypeNFTVerified = "expedition.nft.verified"
	// EventTypeNFTTransferred is emitted when token ownership changes hands.
	EventTypeNFTTransferred = "expedition.nft.transferred"
	// EventTypeCampaignDistributed is emitted when a campaign settles.
	EventTypeCampaignDistributed = "expedition.campaign.distributed"
	// EventTypePrizeClaimed is emitted when a climber pulls their share.
	EventTypePrizeClaimed = "expedition.prize.claimed"
)

type eventEnvelope struct {
	evt *types.Event
}

func (e eventEnvelope) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e eventEnvelope) Event() *types.Event { return e.evt }

// WrapEvent converts a raw event payload into the emitter-friendly envelope.
func WrapEvent(evt *types.Event) events.Event { return eventEnvelope{evt: evt} }

func formatUint(v uint64) string { return strconv.FormatUint(v, 10) }

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// CampaignCreatedEvent returns the structured payload announcing a campaign.
func CampaignCreatedEvent(c *Campaign) *types.Event {
	return &types.Event{
		Type: EventTypeCampaignCreated,
		Attributes: map[string]string{
			"campaignId": formatUint(c.ID),
			"name":       c.Name,
			"startTime":  formatUint(c.StartTime),
			"endTime":    formatUint(c.EndTime),
		},
	}
}

// CampaignSponsoredEvent returns the structured payload for a pool deposit.
func CampaignSponsoredEvent(s *Sponsorship, pool *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeCampaignSponsored,
		Attributes: map[string]string{
			"campaignId": formatUint(s.CampaignID),
			"sponsor":    hexAddr(s.Sponsor),
			"name":       s.Name,
			"amount":     formatAmount(s.Amount),
			"prizePool":  formatAmount(pool),
		},
	}
}

// MountainAddedEvent returns the structured payload for a new mountain.
func MountainAddedEvent(m *Mountain) *types.Event {
	return &types.Event{
		Type: EventTypeMountainAdded,
		Attributes: map[string]string{
			"mountainId": formatUint(m.ID),
			"campaignId": formatUint(m.CampaignID),
			"name":       m.Name,
			"altitude":   formatUint(m.Altitude),
		},
	}
}

// NFTMintedEvent returns the structured payload for a freshly minted token.
func NFTMintedEvent(n *ClimbNFT) *types.Event {
	return &types.Event{
		Type: EventTypeNFTMinted,
		Attributes: map[string]string{
			"tokenId":    formatUint(n.TokenID),
			"mountainId": formatUint(n.MountainID),
			"climber":    hexAddr(n.Climber),
			"proofUri":   n.ProofURI,
		},
	}
}

// NFTVerifiedEvent returns the structured payload for a verified claim.
func NFTVerifiedEvent(n *ClimbNFT, campaignID uint64, participants uint64) *types.Event {
	return &types.Event{
		Type: EventTypeNFTVerified,
		Attributes: map[string]string{
			"tokenId":          formatUint(n.TokenID),
			"campaignId":       formatUint(campaignID),
			"climber":          hexAddr(n.Climber),
			"participantCount": formatUint(participants),
		},
	}
}

// NFTTransferredEvent returns the structured payload for an ownership change.
func NFTTransferredEvent(n *ClimbNFT, from [20]byte) *types.Event {
	return &types.Event{
		Type: EventTypeNFTTransferred,
		Attributes: map[string]string{
			"tokenId": formatUint(n.TokenID),
			"from":    hexAddr(from),
			"to":      hexAddr(n.Owner),
		},
	}
}

// CampaignDistributedEvent returns the structured payload for a settlement.
func CampaignDistributedEvent(c *Campaign, share *big.Int, remainder *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeCampaignDistributed,
		Attributes: map[string]string{
			"campaignId":       formatUint(c.ID),
			"participantCount": formatUint(c.ParticipantCount),
			"share":            formatAmount(share),
			"remainder":        formatAmount(remainder),
		},
	}
}

// PrizeClaimedEvent returns the structured payload for a pulled payout.
func PrizeClaimedEvent(p *PrizeClaim) *types.Event {
	return &types.Event{
		Type: EventTypePrizeClaimed,
		Attributes: map[string]string{
			"campaignId": formatUint(p.CampaignID),
			"climber":    hexAddr(p.Climber),
			"amount":     formatAmount(p.Amount),
		},
	}
}
