package valueobject

// ScoreBand is the advisory decision band derived from the normalized engine
// score. Bands guide the decision surface; they are not enforced by the
// aggregator itself.
type ScoreBand string

// Band thresholds on the normalized 0-100 score: auto-approve at 80 and
// above, risk pricing 70-79, manual review 50-69, decline below 50.
const (
	BandAutoApprove  ScoreBand = "AUTO_APPROVE"
	BandRiskPricing  ScoreBand = "APPROVE_RISK_PRICING"
	BandManualReview ScoreBand = "MANUAL_REVIEW"
	BandDecline      ScoreBand = "DECLINE"
)

// BandForScore maps a normalized 0-100 engine score to its advisory band.
func BandForScore(normalized float64) ScoreBand {
	switch {
	case normalized >= 80:
		return BandAutoApprove
	case normalized >= 70:
		return BandRiskPricing
	case normalized >= 50:
		return BandManualReview
	default:
		return BandDecline
	}
}

func (b ScoreBand) String() string { return string(b) }
