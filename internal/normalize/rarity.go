package normalize

// Star tiers for the rarity classification, rarest first.
const (
	RarityFiveStars      = "★★★★★"
	RarityFourHalfStars  = "★★★★½"
	RarityThreeHalfStars = "★★★½☆"
	RarityThreeStars     = "★★★☆☆"
	RarityTwoStars       = "★★☆☆☆"
	RarityOneStar        = "★☆☆☆☆"
)

// Production-count ceilings for each tier.
var rarityThresholds = []struct {
	max  int64
	tier string
}{
	{50, RarityFiveStars},
	{500, RarityFourHalfStars},
	{2000, RarityThreeHalfStars},
	{10000, RarityThreeStars},
	{100000, RarityTwoStars},
}

// CalculateRarity maps a production-count string to a star tier. Input
// without a number classifies as the most common tier; this never fails.
func CalculateRarity(numberProduced string) string {
	num, ok := FirstNumber(numberProduced)
	if !ok {
		return RarityOneStar
	}

	for _, t := range rarityThresholds {
		if num <= t.max {
			return t.tier
		}
	}
	return RarityOneStar
}
