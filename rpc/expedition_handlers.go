package rpc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"hikechain/crypto"
	"hikechain/native/expedition"
)

type campaignCreateParams struct {
	Caller    string `json:"caller"`
	Name      string `json:"name"`
	StartTime uint64 `json:"startTime"`
	EndTime   uint64 `json:"endTime"`
}

type campaignSponsorParams struct {
	Caller     string `json:"caller"`
	CampaignID uint64 `json:"campaignId"`
	Name       string `json:"name"`
	LogoURI    string `json:"logoUri,omitempty"`
	Amount     string `json:"amount"`
}

type campaignIDParams struct {
	CampaignID uint64 `json:"campaignId"`
}

type mountainAddParams struct {
	Caller     string `json:"caller"`
	CampaignID uint64 `json:"campaignId"`
	Name       string `json:"name"`
	Altitude   uint64 `json:"altitude"`
	Location   string `json:"location,omitempty"`
}

type mountainSetActiveParams struct {
	Caller     string `json:"caller"`
	MountainID uint64 `json:"mountainId"`
	Active     bool   `json:"active"`
}

type mountainIDParams struct {
	MountainID uint64 `json:"mountainId"`
}

type nftMintParams struct {
	Caller     string `json:"caller"`
	MountainID uint64 `json:"mountainId"`
	ProofURI   string `json:"proofUri,omitempty"`
}

type nftVerifyParams struct {
	Caller  string `json:"caller"`
	TokenID uint64 `json:"tokenId"`
}

type nftTransferParams struct {
	Caller  string `json:"caller"`
	To      string `json:"to"`
	TokenID uint64 `json:"tokenId"`
}

type nftIDParams struct {
	TokenID uint64 `json:"tokenId"`
}

type addressParams struct {
	Address string `json:"address"`
}

type prizeClaimParams struct {
	Caller     string `json:"caller"`
	CampaignID uint64 `json:"campaignId"`
}

type prizeClaimQueryParams struct {
	CampaignID uint64 `json:"campaignId"`
	Address    string `json:"address"`
}

type mintFundsParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type campaignResult struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	StartTime        uint64 `json:"startTime"`
	EndTime          uint64 `json:"endTime"`
	PrizePool        string `json:"prizePool"`
	ParticipantCount uint64 `json:"participantCount"`
	Active           bool   `json:"active"`
	Distributed      bool   `json:"distributed"`
	CreatedAt        uint64 `json:"createdAt"`
}

type mountainResult struct {
	ID         uint64 `json:"id"`
	CampaignID uint64 `json:"campaignId"`
	Name       string `json:"name"`
	Altitude   uint64 `json:"altitude"`
	Location   string `json:"location"`
	Active     bool   `json:"active"`
}

type nftResult struct {
	TokenID      uint64 `json:"tokenId"`
	MountainID   uint64 `json:"mountainId"`
	MountainName string `json:"mountainName,omitempty"`
	Altitude     uint64 `json:"altitude,omitempty"`
	Climber      string `json:"climber"`
	Owner        string `json:"owner"`
	ClimbedAt    uint64 `json:"climbedAt"`
	ProofURI     string `json:"proofUri,omitempty"`
	Verified     bool   `json:"verified"`
}

type sponsorshipResult struct {
	CampaignID  uint64 `json:"campaignId"`
	Sponsor     string `json:"sponsor"`
	Name        string `json:"name"`
	LogoURI     string `json:"logoUri,omitempty"`
	Amount      string `json:"amount"`
	SponsoredAt uint64 `json:"sponsoredAt"`
}

type prizeClaimResult struct {
	CampaignID uint64 `json:"campaignId"`
	Climber    string `json:"climber"`
	Amount     string `json:"amount"`
	Claimed    bool   `json:"claimed"`
	ClaimedAt  uint64 `json:"claimedAt,omitempty"`
}

type balanceResult struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func formatAddress(addr [20]byte) string {
	return crypto.MustNewAddress(crypto.HikePrefix, addr[:]).String()
}

func decodeBech32(addr string) ([20]byte, error) {
	var out [20]byte
	decoded, err := crypto.DecodeAddress(strings.TrimSpace(addr))
	if err != nil {
		return out, err
	}
	copy(out[:], decoded.Bytes())
	return out, nil
}

func parseAmount(amount string) (*big.Int, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return nil, fmt.Errorf("amount is required")
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount")
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return value, nil
}

func formatCampaign(c *expedition.Campaign) campaignResult {
	return campaignResult{
		ID:               c.ID,
		Name:             c.Name,
		StartTime:        c.StartTime,
		EndTime:          c.EndTime,
		PrizePool:        bigString(c.PrizePool),
		ParticipantCount: c.ParticipantCount,
		Active:           c.Active,
		Distributed:      c.Distributed,
		CreatedAt:        c.CreatedAt,
	}
}

func formatMountain(m *expedition.Mountain) mountainResult {
	return mountainResult{
		ID:         m.ID,
		CampaignID: m.CampaignID,
		Name:       m.Name,
		Altitude:   m.Altitude,
		Location:   m.Location,
		Active:     m.Active,
	}
}

func formatToken(n *expedition.ClimbNFT) nftResult {
	return nftResult{
		TokenID:    n.TokenID,
		MountainID: n.MountainID,
		Climber:    formatAddress(n.Climber),
		Owner:      formatAddress(n.Owner),
		ClimbedAt:  n.ClimbedAt,
		ProofURI:   n.ProofURI,
		Verified:   n.Verified,
	}
}

func formatTokenInfo(info *expedition.NFTInfo) nftResult {
	return nftResult{
		TokenID:      info.TokenID,
		MountainID:   info.MountainID,
		MountainName: info.MountainName,
		Altitude:     info.Altitude,
		Climber:      formatAddress(info.Climber),
		Owner:        formatAddress(info.Owner),
		ClimbedAt:    info.ClimbedAt,
		ProofURI:     info.ProofURI,
		Verified:     info.Verified,
	}
}

func formatPrizeClaim(claim *expedition.PrizeClaim) prizeClaimResult {
	return prizeClaimResult{
		CampaignID: claim.CampaignID,
		Climber:    formatAddress(claim.Climber),
		Amount:     bigString(claim.Amount),
		Claimed:    claim.Claimed,
		ClaimedAt:  claim.ClaimedAt,
	}
}

func decodeParams(req *RPCRequest, out interface{}) *RPCError {
	if len(req.Params) != 1 {
		return &RPCError{Code: codeInvalidParams, Message: "exactly one parameter object expected"}
	}
	if err := json.Unmarshal(req.Params[0], out); err != nil {
		return &RPCError{Code: codeInvalidParams, Message: "invalid parameter object", Data: err.Error()}
	}
	return nil
}

func (s *Server) handleCampaignCreate(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params campaignCreateParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	campaign, err := s.node.CampaignCreate(caller, params.Name, params.StartTime, params.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to create campaign", err.Error())
		return
	}
	writeResult(w, req.ID, formatCampaign(campaign))
}

func (s *Server) handleCampaignSponsor(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params campaignSponsorParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, err.Error(), nil)
		return
	}
	sponsorship, err := s.node.CampaignSponsor(caller, params.CampaignID, params.Name, params.LogoURI, amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to sponsor campaign", err.Error())
		return
	}
	writeResult(w, req.ID, sponsorshipResult{
		CampaignID:  sponsorship.CampaignID,
		Sponsor:     params.Caller,
		Name:        sponsorship.Name,
		LogoURI:     sponsorship.LogoURI,
		Amount:      bigString(sponsorship.Amount),
		SponsoredAt: sponsorship.SponsoredAt,
	})
}

func (s *Server) handleCampaignGet(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params campaignIDParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	campaign, err := s.node.CampaignInfo(params.CampaignID)
	if err != nil {
		writeError(w, http.StatusNotFound, req.ID, codeInvalidParams, "campaign not found", err.Error())
		return
	}
	writeResult(w, req.ID, formatCampaign(campaign))
}

func (s *Server) handleCampaignCount(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	count, err := s.node.CampaignCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, req.ID, codeServerError, "failed to read campaign count", err.Error())
		return
	}
	writeResult(w, req.ID, map[string]uint64{"count": count})
}

func (s *Server) handleSponsorships(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params campaignIDParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	records, err := s.node.Sponsorships(params.CampaignID)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to list sponsorships", err.Error())
		return
	}
	results := make([]sponsorshipResult, 0, len(records))
	for _, record := range records {
		results = append(results, sponsorshipResult{
			CampaignID:  record.CampaignID,
			Sponsor:     formatAddress(record.Sponsor),
			Name:        record.Name,
			LogoURI:     record.LogoURI,
			Amount:      bigString(record.Amount),
			SponsoredAt: record.SponsoredAt,
		})
	}
	writeResult(w, req.ID, results)
}

func (s *Server) handleMountainAdd(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params mountainAddParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	mountain, err := s.node.MountainAdd(caller, params.CampaignID, params.Name, params.Altitude, params.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to add mountain", err.Error())
		return
	}
	writeResult(w, req.ID, formatMountain(mountain))
}

func (s *Server) handleMountainSetActive(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params mountainSetActiveParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	mountain, err := s.node.MountainSetActive(caller, params.MountainID, params.Active)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to update mountain", err.Error())
		return
	}
	writeResult(w, req.ID, formatMountain(mountain))
}

func (s *Server) handleMountainGet(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params mountainIDParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	mountain, err := s.node.MountainInfo(params.MountainID)
	if err != nil {
		writeError(w, http.StatusNotFound, req.ID, codeInvalidParams, "mountain not found", err.Error())
		return
	}
	writeResult(w, req.ID, formatMountain(mountain))
}

func (s *Server) handleMountainCount(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	count, err := s.node.MountainCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, req.ID, codeServerError, "failed to read mountain count", err.Error())
		return
	}
	writeResult(w, req.ID, map[string]uint64{"count": count})
}

func (s *Server) handleNFTMint(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params nftMintParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	token, err := s.node.NFTMint(caller, params.MountainID, params.ProofURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to mint climb token", err.Error())
		return
	}
	writeResult(w, req.ID, formatToken(token))
}

func (s *Server) handleNFTVerify(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params nftVerifyParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	token, err := s.node.NFTVerify(caller, params.TokenID)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to verify climb token", err.Error())
		return
	}
	writeResult(w, req.ID, formatToken(token))
}

func (s *Server) handleNFTTransfer(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params nftTransferParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	to, err := decodeBech32(params.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid recipient address", err.Error())
		return
	}
	token, err := s.node.NFTTransfer(caller, to, params.TokenID)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to transfer climb token", err.Error())
		return
	}
	writeResult(w, req.ID, formatToken(token))
}

func (s *Server) handleNFTGet(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params nftIDParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	info, err := s.node.NFTInfo(params.TokenID)
	if err != nil {
		writeError(w, http.StatusNotFound, req.ID, codeInvalidParams, "token not found", err.Error())
		return
	}
	writeResult(w, req.ID, formatTokenInfo(info))
}

func (s *Server) handleParticipantNFTs(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params addressParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	addr, err := decodeBech32(params.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid address", err.Error())
		return
	}
	tokens, err := s.node.ParticipantTokens(addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, req.ID, codeServerError, "failed to list tokens", err.Error())
		return
	}
	if tokens == nil {
		tokens = []uint64{}
	}
	writeResult(w, req.ID, map[string]interface{}{
		"address": params.Address,
		"tokens":  tokens,
	})
}

func (s *Server) handleDistributePrizes(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params campaignIDParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	campaign, err := s.node.DistributePrizes(params.CampaignID)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to distribute prizes", err.Error())
		return
	}
	writeResult(w, req.ID, formatCampaign(campaign))
}

func (s *Server) handleClaimPrize(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params prizeClaimParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	claim, err := s.node.ClaimPrize(caller, params.CampaignID)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to claim prize", err.Error())
		return
	}
	writeResult(w, req.ID, formatPrizeClaim(claim))
}

func (s *Server) handlePrizeClaimGet(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params prizeClaimQueryParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	addr, err := decodeBech32(params.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid address", err.Error())
		return
	}
	claim, err := s.node.PrizeClaimInfo(params.CampaignID, addr)
	if err != nil {
		writeError(w, http.StatusNotFound, req.ID, codeInvalidParams, "prize claim not found", err.Error())
		return
	}
	writeResult(w, req.ID, formatPrizeClaim(claim))
}

func (s *Server) handleOwner(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, map[string]string{"owner": formatAddress(s.node.Admin())})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params addressParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	addr, err := decodeBech32(params.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid address", err.Error())
		return
	}
	account, err := s.node.Balance(addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, req.ID, codeServerError, "failed to read account", err.Error())
		return
	}
	writeResult(w, req.ID, balanceResult{
		Address: params.Address,
		Balance: bigString(account.Balance),
		Nonce:   account.Nonce,
	})
}

func (s *Server) handleMintFunds(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params mintFundsParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	to, err := decodeBech32(params.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid recipient address", err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, err.Error(), nil)
		return
	}
	account, err := s.node.MintFunds(caller, to, amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "failed to mint funds", err.Error())
		return
	}
	writeResult(w, req.ID, balanceResult{
		Address: params.To,
		Balance: bigString(account.Balance),
		Nonce:   account.Nonce,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	events := s.node.Events()
	writeResult(w, req.ID, events)
}
