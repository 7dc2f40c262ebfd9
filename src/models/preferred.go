package models

// PreferredTerms captures the redemption and dividend features of a
// preferred issue that determine whether it is treated as nonqualified
// preferred stock (and so as boot rather than stock).
type PreferredTerms struct {
	HolderMayRequireRedemption bool
	IssuerRequiredToRedeem     bool
	IssuerMayRedeem            bool
	// Likelihood that the issuer exercises its redemption right, judged
	// on the issue date.
	IssuerRedemptionLikelihood float64
	DividendRateVaries         bool
}

// NonqualifiedPreferred reports whether preferred stock with these terms
// is nonqualified. An issuer-side redemption right only taints the stock
// when exercise is more likely than not.
func NonqualifiedPreferred(terms PreferredTerms) bool {
	if terms.HolderMayRequireRedemption {
		return true
	}
	if terms.IssuerRequiredToRedeem {
		return true
	}
	if terms.IssuerMayRedeem && terms.IssuerRedemptionLikelihood > 0.5 {
		return true
	}
	if terms.DividendRateVaries {
		return true
	}
	return false
}
