package expedition

import "math/big"

// DistributePrizes settles a campaign once its window has closed. The pool is
// split by integer division across the unique verified climbers and a
// PrizeClaim record is written for each; climbers pull their share through
// ClaimPrize. The division remainder moves to the treasury immediately so no
// dust is stranded in the vault.
//
// The campaign record is marked distributed and its pool zeroed before any
// value leaves the vault, so a re-entrant call observes the settled state and
// fails with ErrAlreadyDistributed.
func (e *Engine) DistributePrizes(campaignID uint64) (*Campaign, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if isZeroAddress(e.vault) {
		return nil, errVaultNotSet
	}
	if isZeroAddress(e.treasury) {
		return nil, errTreasuryNotSet
	}
	campaign, ok, err := e.state.CampaignGet(campaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Distributed {
		return nil, ErrAlreadyDistributed
	}
	if uint64(e.now()) <= campaign.EndTime {
		return nil, ErrCampaignStillActive
	}
	if campaign.ParticipantCount == 0 {
		return nil, ErrNoParticipants
	}
	climbers, err := e.state.CampaignClimbers(campaignID)
	if err != nil {
		return nil, err
	}
	if uint64(len(climbers)) != campaign.ParticipantCount {
		// Participant count and climber set are written together; a mismatch
		// means corrupted state and settling on it would misprice every share.
		return nil, ErrNoParticipants
	}

	pool := newBigInt(campaign.PrizePool)
	participants := new(big.Int).SetUint64(campaign.ParticipantCount)
	share := new(big.Int).Quo(pool, participants)
	remainder := new(big.Int).Rem(pool, participants)

	campaign.Distributed = true
	campaign.Active = false
	campaign.PrizePool = big.NewInt(0)
	if err := e.state.CampaignPut(campaign); err != nil {
		return nil, err
	}
	for _, climber := range climbers {
		claim := &PrizeClaim{
			CampaignID: campaignID,
			Climber:    climber,
			Amount:     newBigInt(share),
			Claimed:    false,
		}
		if err := e.state.PrizeClaimPut(claim); err != nil {
			return nil, err
		}
	}
	if remainder.Sign() > 0 {
		if err := e.transfer(e.vault, e.treasury, remainder, errVaultUnderfunded); err != nil {
			return nil, err
		}
	}
	e.emit(CampaignDistributedEvent(campaign, share, remainder))
	return campaign.Clone(), nil
}

// ClaimPrize pays out the caller's share of a settled campaign. Claims are
// idempotent in the failure direction: the record is marked claimed before the
// vault transfer, and a second call is rejected with ErrAlreadyClaimed rather
// than paid twice. Eligibility keys off the climber address snapshotted at
// mint time.
func (e *Engine) ClaimPrize(caller [20]byte, campaignID uint64) (*PrizeClaim, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if isZeroAddress(e.vault) {
		return nil, errVaultNotSet
	}
	campaign, ok, err := e.state.CampaignGet(campaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if !campaign.Distributed {
		return nil, ErrCampaignStillActive
	}
	claim, ok, err := e.state.PrizeClaimGet(campaignID, caller)
	if err != nil {
		return nil, err
	}
	if !ok || claim == nil {
		return nil, ErrNotEligible
	}
	if claim.Claimed {
		return nil, ErrAlreadyClaimed
	}
	claim.Claimed = true
	claim.ClaimedAt = uint64(e.now())
	if err := e.state.PrizeClaimPut(claim); err != nil {
		return nil, err
	}
	if claim.Amount.Sign() > 0 {
		if err := e.transfer(e.vault, caller, claim.Amount, errVaultUnderfunded); err != nil {
			return nil, err
		}
	}
	e.emit(PrizeClaimedEvent(claim))
	return claim.Clone(), nil
}

// PrizeClaimInfo returns the claim record for an address without mutating
// state.
func (e *Engine) PrizeClaimInfo(campaignID uint64, addr [20]byte) (*PrizeClaim, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	claim, ok, err := e.state.PrizeClaimGet(campaignID, addr)
	if err != nil {
		return nil, err
	}
	if !ok || claim == nil {
		return nil, ErrNotEligible
	}
	return claim.Clone(), nil
}
