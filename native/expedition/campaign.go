package expedition

import (
	"math/big"
	"strings"
)

// CreateCampaign registers a new time-boxed campaign with an empty prize pool.
// Only the admin may create campaigns; the start must precede the end. The
// window itself is not required to be in the future, so a campaign can open
// immediately.
func (e *Engine) CreateCampaign(caller [20]byte, name string, startTime, endTime uint64) (*Campaign, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	sanitized, err := sanitizeName(name)
	if err != nil {
		return nil, err
	}
	if startTime >= endTime {
		return nil, ErrInvalidWindow
	}
	count, err := e.state.CampaignCount()
	if err != nil {
		return nil, err
	}
	campaign := &Campaign{
		ID:               count,
		Name:             sanitized,
		StartTime:        startTime,
		EndTime:          endTime,
		PrizePool:        big.NewInt(0),
		ParticipantCount: 0,
		Active:           true,
		Distributed:      false,
		CreatedAt:        uint64(e.now()),
	}
	if err := e.state.CampaignPut(campaign); err != nil {
		return nil, err
	}
	if err := e.state.CampaignSetCount(count + 1); err != nil {
		return nil, err
	}
	e.emit(CampaignCreatedEvent(campaign))
	return campaign.Clone(), nil
}

// SponsorCampaign deposits native currency into a campaign's prize pool. Any
// address may sponsor while the campaign is active and undistributed. The
// deposit moves from the sponsor's account into the prize vault and the pool
// accounting grows by exactly the attached amount.
func (e *Engine) SponsorCampaign(sponsor [20]byte, campaignID uint64, name string, logoURI string, amount *big.Int) (*Sponsorship, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
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
	if !campaign.Active || campaign.Distributed {
		return nil, ErrCampaignInactive
	}
	if err := e.transfer(sponsor, e.vault, amount, ErrInsufficientFunds); err != nil {
		return nil, err
	}
	campaign.PrizePool = new(big.Int).Add(campaign.PrizePool, amount)
	if err := e.state.CampaignPut(campaign); err != nil {
		return nil, err
	}
	record := &Sponsorship{
		CampaignID:  campaignID,
		Sponsor:     sponsor,
		Name:        strings.TrimSpace(name),
		LogoURI:     strings.TrimSpace(logoURI),
		Amount:      newBigInt(amount),
		SponsoredAt: uint64(e.now()),
	}
	if err := e.state.SponsorshipAppend(record); err != nil {
		return nil, err
	}
	e.emit(CampaignSponsoredEvent(record, campaign.PrizePool))
	return record.Clone(), nil
}

// CampaignInfo returns the campaign record without mutating state.
func (e *Engine) CampaignInfo(campaignID uint64) (*Campaign, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	campaign, ok, err := e.state.CampaignGet(campaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign.Clone(), nil
}

// CampaignCount returns the total number of campaigns ever created.
func (e *Engine) CampaignCount() (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.state.CampaignCount()
}

// Sponsorships returns the append-only deposit history for a campaign.
func (e *Engine) Sponsorships(campaignID uint64) ([]*Sponsorship, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if _, ok, err := e.state.CampaignGet(campaignID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrCampaignNotFound
	}
	records, err := e.state.Sponsorships(campaignID)
	if err != nil {
		return nil, err
	}
	out := make([]*Sponsorship, 0, len(records))
	for _, record := range records {
		out = append(out, record.Clone())
	}
	return out, nil
}
