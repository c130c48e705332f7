package expedition

import "strings"

// MintClimbNFT issues a proof-of-climb token for the caller against the given
// mountain. The mountain must accept claims and the owning campaign must be
// active, undistributed and inside its time window. Every mint produces a
// fresh token; the same climber may claim the same mountain more than once.
func (e *Engine) MintClimbNFT(climber [20]byte, mountainID uint64, proofURI string) (*ClimbNFT, error) {
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
	if !mountain.Active {
		return nil, ErrMountainInactive
	}
	campaign, ok, err := e.state.CampaignGet(mountain.CampaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Distributed || !campaign.Active {
		return nil, ErrCampaignInactive
	}
	now := uint64(e.now())
	if now < campaign.StartTime {
		return nil, ErrCampaignNotStarted
	}
	if now > campaign.EndTime {
		return nil, ErrCampaignClosed
	}
	count, err := e.state.NFTCount()
	if err != nil {
		return nil, err
	}
	token := &ClimbNFT{
		TokenID:    count,
		MountainID: mountainID,
		Climber:    climber,
		Owner:      climber,
		ClimbedAt:  now,
		ProofURI:   strings.TrimSpace(proofURI),
		Verified:   false,
	}
	if err := e.state.NFTPut(token); err != nil {
		return nil, err
	}
	if err := e.state.NFTSetCount(count + 1); err != nil {
		return nil, err
	}
	if err := e.state.ClimberTokensAppend(climber, token.TokenID); err != nil {
		return nil, err
	}
	e.emit(NFTMintedEvent(token))
	return token.Clone(), nil
}

// VerifyNFT marks a climb claim as verified. Admin only, and a token verifies
// at most once. The owning campaign's participant count grows only on the
// climber's first verified token within that campaign, so a climber holding
// several verified tokens never inflates the prize divisor.
func (e *Engine) VerifyNFT(caller [20]byte, tokenID uint64) (*ClimbNFT, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	token, ok, err := e.state.NFTGet(tokenID)
	if err != nil {
		return nil, err
	}
	if !ok || token == nil {
		return nil, ErrTokenNotFound
	}
	if token.Verified {
		return nil, ErrAlreadyVerified
	}
	mountain, ok, err := e.state.MountainGet(token.MountainID)
	if err != nil {
		return nil, err
	}
	if !ok || mountain == nil {
		return nil, ErrMountainNotFound
	}
	campaign, ok, err := e.state.CampaignGet(mountain.CampaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Distributed {
		return nil, ErrAlreadyDistributed
	}
	token.Verified = true
	if err := e.state.NFTPut(token); err != nil {
		return nil, err
	}
	seen, err := e.state.CampaignClimberSeen(campaign.ID, token.Climber)
	if err != nil {
		return nil, err
	}
	if !seen {
		if err := e.state.CampaignClimberAdd(campaign.ID, token.Climber); err != nil {
			return nil, err
		}
		campaign.ParticipantCount++
		if err := e.state.CampaignPut(campaign); err != nil {
			return nil, err
		}
	}
	e.emit(NFTVerifiedEvent(token, campaign.ID, campaign.ParticipantCount))
	return token.Clone(), nil
}

// TransferNFT moves token ownership to another address. The climber recorded
// at mint time stays on the record, so verification state and prize
// eligibility do not travel with the new holder.
func (e *Engine) TransferNFT(caller [20]byte, to [20]byte, tokenID uint64) (*ClimbNFT, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	token, ok, err := e.state.NFTGet(tokenID)
	if err != nil {
		return nil, err
	}
	if !ok || token == nil {
		return nil, ErrTokenNotFound
	}
	if token.Owner != caller {
		return nil, ErrNotTokenOwner
	}
	token.Owner = to
	if err := e.state.NFTPut(token); err != nil {
		return nil, err
	}
	e.emit(NFTTransferredEvent(token, caller))
	return token.Clone(), nil
}

// TokenInfo resolves a token together with the mountain it was claimed on.
func (e *Engine) TokenInfo(tokenID uint64) (*NFTInfo, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	token, ok, err := e.state.NFTGet(tokenID)
	if err != nil {
		return nil, err
	}
	if !ok || token == nil {
		return nil, ErrTokenNotFound
	}
	mountain, ok, err := e.state.MountainGet(token.MountainID)
	if err != nil {
		return nil, err
	}
	if !ok || mountain == nil {
		return nil, ErrMountainNotFound
	}
	return &NFTInfo{
		TokenID:      token.TokenID,
		MountainID:   token.MountainID,
		MountainName: mountain.Name,
		Altitude:     mountain.Altitude,
		ClimbedAt:    token.ClimbedAt,
		Climber:      token.Climber,
		Owner:        token.Owner,
		ProofURI:     token.ProofURI,
		Verified:     token.Verified,
	}, nil
}

// ParticipantTokens returns the ids of every token minted by the supplied
// address. Authorship, not current ownership: transfers do not move tokens in
// or out of this list.
func (e *Engine) ParticipantTokens(addr [20]byte) ([]uint64, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	tokens, err := e.state.ClimberTokens(addr)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(tokens))
	copy(out, tokens)
	return out, nil
}

// TokenCount returns the total number of tokens ever minted.
func (e *Engine) TokenCount() (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.state.NFTCount()
}
