package expedition

import "errors"

var (
	ErrUnauthorized        = errors.New("expedition: unauthorized")
	ErrInvalidInput        = errors.New("expedition: invalid input")
	ErrInvalidWindow       = errors.New("expedition: start must precede end")
	ErrInvalidAmount       = errors.New("expedition: amount must be positive")
	ErrInsufficientFunds   = errors.New("expedition: insufficient balance")
	ErrCampaignNotFound    = errors.New("expedition: campaign not found")
	ErrCampaignInactive    = errors.New("expedition: campaign inactive")
	ErrCampaignClosed      = errors.New("expedition: campaign window closed")
	ErrCampaignNotStarted  = errors.New("expedition: campaign not started")
	ErrCampaignStillActive = errors.New("expedition: campaign still active")
	ErrAlreadyDistributed  = errors.New("expedition: prizes already distributed")
	ErrNoParticipants      = errors.New("expedition: no verified participants")
	ErrMountainNotFound    = errors.New("expedition: mountain not found")
	ErrMountainInactive    = errors.New("expedition: mountain inactive")
	ErrTokenNotFound       = errors.New("expedition: token not found")
	ErrAlreadyVerified     = errors.New("expedition: token already verified")
	ErrNotTokenOwner       = errors.New("expedition: caller does not own token")
	ErrNotEligible         = errors.New("expedition: no claim for address")
	ErrAlreadyClaimed      = errors.New("expedition: prize already claimed")
)
