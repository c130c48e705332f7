package expedition

import (
	"errors"
	"testing"
)

// seedCampaign creates a campaign with one mountain and returns both.
func seedCampaign(t *testing.T, engine *Engine, start, end uint64) (*Campaign, *Mountain) {
	t.Helper()
	campaign, err := engine.CreateCampaign(testAdmin, "winter ascent", start, end)
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	mountain, err := engine.AddMountain(testAdmin, campaign.ID, "aconcagua", 6961, "mendoza, argentina")
	if err != nil {
		t.Fatalf("add mountain failed: %v", err)
	}
	return campaign, mountain
}

func TestAddMountainRequiresAdminAndCampaign(t *testing.T) {
	engine, _ := newTestEngine(t, 100)
	if _, err := engine.AddMountain(addr(0x01), 0, "aconcagua", 6961, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := engine.AddMountain(testAdmin, 0, "aconcagua", 6961, ""); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestAddMountainSequentialIDs(t *testing.T) {
	engine, _ := newTestEngine(t, 100)
	campaign, _ := seedCampaign(t, engine, 200, 300)
	second, err := engine.AddMountain(testAdmin, campaign.ID, "ojos del salado", 6893, "atacama")
	if err != nil {
		t.Fatalf("add mountain failed: %v", err)
	}
	if second.ID != 1 {
		t.Fatalf("expected id 1, got %d", second.ID)
	}
	count, err := engine.MountainCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 mountains, got %d", count)
	}
	if second.CampaignID != campaign.ID || !second.Active {
		t.Fatalf("mountain not linked to campaign or inactive: %+v", second)
	}
}

func TestMintClimbNFTGates(t *testing.T) {
	engine, _ := newTestEngine(t, 250)
	_, mountain := seedCampaign(t, engine, 200, 300)
	climber := addr(0x01)

	if _, err := engine.MintClimbNFT(climber, 99, "ipfs://proof"); !errors.Is(err, ErrMountainNotFound) {
		t.Fatalf("expected ErrMountainNotFound, got %v", err)
	}

	if _, err := engine.SetMountainActive(testAdmin, mountain.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof"); !errors.Is(err, ErrMountainInactive) {
		t.Fatalf("expected ErrMountainInactive, got %v", err)
	}
	if _, err := engine.SetMountainActive(testAdmin, mountain.ID, true); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}

	engine.SetNowFunc(func() int64 { return 150 })
	if _, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof"); !errors.Is(err, ErrCampaignNotStarted) {
		t.Fatalf("expected ErrCampaignNotStarted, got %v", err)
	}
	engine.SetNowFunc(func() int64 { return 350 })
	if _, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof"); !errors.Is(err, ErrCampaignClosed) {
		t.Fatalf("expected ErrCampaignClosed, got %v", err)
	}

	engine.SetNowFunc(func() int64 { return 250 })
	token, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if token.TokenID != 0 || token.Climber != climber || token.Owner != climber {
		t.Fatalf("unexpected token: %+v", token)
	}
	if token.Verified {
		t.Fatalf("token must start unverified")
	}
	if token.ClimbedAt != 250 {
		t.Fatalf("climb date not recorded at mint, got %d", token.ClimbedAt)
	}
}

func TestMintClimbNFTRejectsSettledCampaign(t *testing.T) {
	engine, state := newTestEngine(t, 250)
	campaign, mountain := seedCampaign(t, engine, 200, 300)
	stored := state.campaigns[campaign.ID]
	stored.Distributed = true
	stored.Active = false
	if _, err := engine.MintClimbNFT(addr(0x01), mountain.ID, "ipfs://proof"); !errors.Is(err, ErrCampaignInactive) {
		t.Fatalf("expected ErrCampaignInactive, got %v", err)
	}
}

func TestMintAllowsRepeatClaims(t *testing.T) {
	engine, _ := newTestEngine(t, 250)
	_, mountain := seedCampaign(t, engine, 200, 300)
	climber := addr(0x01)
	first, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof-1")
	if err != nil {
		t.Fatalf("first mint failed: %v", err)
	}
	second, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof-2")
	if err != nil {
		t.Fatalf("second mint failed: %v", err)
	}
	if first.TokenID == second.TokenID {
		t.Fatalf("token ids must be unique, both %d", first.TokenID)
	}
	tokens, err := engine.ParticipantTokens(climber)
	if err != nil {
		t.Fatalf("participant tokens failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens for climber, got %d", len(tokens))
	}
}

func TestVerifyNFTCountsUniqueClimbersOnce(t *testing.T) {
	engine, _ := newTestEngine(t, 250)
	campaign, mountain := seedCampaign(t, engine, 200, 300)
	climber := addr(0x01)
	other := addr(0x02)

	first, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://a")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	second, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://b")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	third, err := engine.MintClimbNFT(other, mountain.ID, "ipfs://c")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := engine.VerifyNFT(addr(0x09), first.TokenID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := engine.VerifyNFT(testAdmin, 99); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}

	if _, err := engine.VerifyNFT(testAdmin, first.TokenID); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	info, err := engine.CampaignInfo(campaign.ID)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.ParticipantCount != 1 {
		t.Fatalf("expected 1 participant, got %d", info.ParticipantCount)
	}

	// Second verified token for the same climber must not inflate the divisor.
	if _, err := engine.VerifyNFT(testAdmin, second.TokenID); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	info, _ = engine.CampaignInfo(campaign.ID)
	if info.ParticipantCount != 1 {
		t.Fatalf("same climber counted twice: %d", info.ParticipantCount)
	}

	if _, err := engine.VerifyNFT(testAdmin, third.TokenID); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	info, _ = engine.CampaignInfo(campaign.ID)
	if info.ParticipantCount != 2 {
		t.Fatalf("expected 2 participants, got %d", info.ParticipantCount)
	}

	if _, err := engine.VerifyNFT(testAdmin, first.TokenID); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestTransferNFTKeepsClimberSnapshot(t *testing.T) {
	engine, _ := newTestEngine(t, 250)
	_, mountain := seedCampaign(t, engine, 200, 300)
	climber := addr(0x01)
	buyer := addr(0x02)

	token, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := engine.TransferNFT(buyer, climber, token.TokenID); !errors.Is(err, ErrNotTokenOwner) {
		t.Fatalf("expected ErrNotTokenOwner, got %v", err)
	}
	moved, err := engine.TransferNFT(climber, buyer, token.TokenID)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if moved.Owner != buyer {
		t.Fatalf("owner not updated")
	}
	if moved.Climber != climber {
		t.Fatalf("climber snapshot must survive transfers")
	}

	// Authorship listing is unaffected by the transfer.
	tokens, err := engine.ParticipantTokens(climber)
	if err != nil {
		t.Fatalf("participant tokens failed: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected minted token to stay on climber's list, got %d entries", len(tokens))
	}
	bought, err := engine.ParticipantTokens(buyer)
	if err != nil {
		t.Fatalf("participant tokens failed: %v", err)
	}
	if len(bought) != 0 {
		t.Fatalf("buyer must not gain authorship via transfer, got %d entries", len(bought))
	}
}

func TestTokenInfoJoinsMountain(t *testing.T) {
	engine, _ := newTestEngine(t, 250)
	_, mountain := seedCampaign(t, engine, 200, 300)
	climber := addr(0x01)
	token, err := engine.MintClimbNFT(climber, mountain.ID, "ipfs://proof")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	info, err := engine.TokenInfo(token.TokenID)
	if err != nil {
		t.Fatalf("token info failed: %v", err)
	}
	if info.MountainName != "aconcagua" || info.Altitude != 6961 {
		t.Fatalf("mountain join mismatch: %+v", info)
	}
	if info.Climber != climber || info.Verified {
		t.Fatalf("unexpected token info: %+v", info)
	}
	if _, err := engine.TokenInfo(42); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
