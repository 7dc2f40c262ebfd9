package redemption

// MinSharesForSubstantiallyDisproportionate solves the substantially
// disproportionate boundary for the minimum whole number of shares the
// corporation must redeem from the shareholder to pass the test.
//
// When 0.8 × the before-percentage would exceed 50%, the independent
// under-50% condition dominates and the effective target drops to 50%.
//
// Pass sharesReduced > 0 when the corporation has fixed in advance how
// many shares the redemption will retire in total; pass 0 to solve for
// the redemption size itself.
func MinSharesForSubstantiallyDisproportionate(beforeShares, totalShares, sharesReduced float64) int {
	beforePercentage := beforeShares / totalShares

	limitPercent := 0.8 * beforePercentage
	if limitPercent > 0.5 {
		limitPercent = 0.5
	}

	if sharesReduced <= 0 {
		// Solve (beforeShares - x) / (totalShares - x) < limitPercent
		// for x:
		// x > (limitPercent*totalShares - beforeShares) / (limitPercent - 1)
		numShares := (limitPercent*totalShares - beforeShares) / (limitPercent - 1)
		return int(numShares) + 1
	}

	numShares := -limitPercent*(totalShares-sharesReduced) + beforeShares
	return int(numShares) + 1
}
