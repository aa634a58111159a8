package transcoder

// Quality tiers understood by the VP9 path.
const (
	QualityBest = "best"
	QualityGood = "good"
	QualityFast = "fast"
)

// QualityFlags maps a quality tier to constant-quality encoder flags. "-b:v 0"
// lifts the bitrate cap so CRF alone controls quality. Unknown tiers get the
// "good" flags rather than an error.
func QualityFlags(tier string) []string {
	switch tier {
	case QualityBest:
		return []string{"-crf", "15", "-b:v", "0"}
	case QualityGood:
		return []string{"-crf", "30", "-b:v", "0"}
	case QualityFast:
		return []string{"-crf", "40", "-b:v", "0"}
	default:
		return QualityFlags(QualityGood)
	}
}

// av1Flags is the fixed AV1 preset. It does not consult the quality tier.
// TODO: route AV1 through a tier table once CRF/cpu-used pairs are agreed on.
func av1Flags() []string {
	return []string{"-crf", "30", "-b:v", "0", "-cpu-used", "4"}
}
