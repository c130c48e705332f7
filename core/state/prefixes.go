package state

var (
	accountPrefix          = []byte("account/")
	campaignPrefix         = []byte("expedition/campaign/")
	campaignCountKeyBytes  = []byte("expedition/campaign-count")
	mountainPrefix         = []byte("expedition/mountain/")
	mountainCountKeyBytes  = []byte("expedition/mountain-count")
	nftPrefix              = []byte("expedition/nft/")
	nftCountKeyBytes       = []byte("expedition/nft-count")
	climberTokensPrefix    = []byte("expedition/climber-tokens/")
	campaignClimberPrefix  = []byte("expedition/campaign-climber/")
	campaignClimbersPrefix = []byte("expedition/campaign-climbers/")
	sponsorshipsPrefix     = []byte("expedition/sponsorships/")
	prizeClaimPrefix       = []byte("expedition/claim/")
)
