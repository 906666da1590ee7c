package auction_house

const (
	auctionHouseSeed  = "auction_house"
	programSignerSeed = "signer"
	metadataSeed      = "metadata"

	// Listings always trade whole NFTs, never fractions.
	wholeTokenSize uint64 = 1

	nativeDecimals int32 = 9
)
