package expedition

import "strings"

// AddMountain registers a climbable objective under an existing campaign.
// Admin only. The record is immutable afterwards except for the Active toggle.
func (e *Engine) AddMountain(caller [20]byte, campaignID uint64, name string, altitude uint64, location string) (*Mountain, error) {
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
	campaign, ok, err := e.state.CampaignGet(campaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if !campaign.Active {
		return nil, ErrCampaignInactive
	}
	count, err := e.state.MountainCount()
	if err != nil {
		return nil, err
	}
	mountain := &Mountain{
		ID:         count,
		CampaignID: campaignID,
		Name:       sanitized,
		Altitude:   altitude,
		Location:   strings.TrimSpace(location),
		Active:     true,
	}
	if err := e.state.MountainPut(mountain); err != nil {
		return nil, err
	}
	if err := e.state.MountainSetCount(count + 1); err != nil {
		return nil, err
	}
	e.emit(MountainAddedEvent(mountain))
	return mountain.Clone(), nil
}

// SetMountainActive toggles whether a mountain accepts new climb claims.
// Admin only.
func (e *Engine) SetMountainActive(caller [20]byte, mountainID uint64, active bool) (*Mountain, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	mountain, ok, err := e.state.MountainGet(mountainID)
	if err != nil {
		return nil, err
	}
	if !ok || mountain == nil {
		return nil, ErrMountainNotFound
	}
	mountain.Active = active
	if err := e.state.MountainPut(mountain); err != nil {
		return nil, err
	}
	return mountain.Clone(), nil
}

// MountainInfo returns the mountain record without mutating state.
func (e *Engine) MountainInfo(mountainID uint64) (*Mountain, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	mountain, ok, err := e.state.MountainGet(mountainID)
	if err != nil {
		return nil, err
	}
	if !ok || mountain == nil {
		return nil, ErrMountainNotFound
	}
	return mountain.Clone(), nil
}

// MountainCount returns the total number of mountains ever registered.
func (e *Engine) MountainCount() (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.state.MountainCount()
}
