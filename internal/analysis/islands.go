package analysis

// TargetZone is one cluster found by FindTargetZones: an inclusive index
// range with its summed mass, peak score and score-weighted center.
type TargetZone struct {
	StartIdx     int
	EndIdx       int
	StrengthMass float64
	PeakScore    float64
	CenterOfMass float64
}

// FindTargetZones thresholds scores into "land" indices (score >= threshold)
// and merges them into clusters, bridging runs of sub-threshold indices no
// longer than maxGap. Mass and peak are re-summed over the full inclusive
// range, so bridged gaps still contribute their true scores.
func FindTargetZones(scores []float64, threshold float64, maxGap int) []TargetZone {
	var land []int
	for i, s := range scores {
		if s >= threshold {
			land = append(land, i)
		}
	}
	if len(land) == 0 {
		return nil
	}

	var zones []TargetZone
	start := land[0]
	prev := land[0]
	for _, idx := range land[1:] {
		if idx-prev <= maxGap+1 {
			prev = idx
			continue
		}
		zones = append(zones, buildTargetZone(scores, start, prev))
		start, prev = idx, idx
	}
	return append(zones, buildTargetZone(scores, start, prev))
}

func buildTargetZone(scores []float64, start, end int) TargetZone {
	z := TargetZone{StartIdx: start, EndIdx: end}
	var weighted float64
	for i := start; i <= end; i++ {
		z.StrengthMass += scores[i]
		weighted += float64(i) * scores[i]
		if scores[i] > z.PeakScore {
			z.PeakScore = scores[i]
		}
	}
	if z.StrengthMass == 0 {
		z.CenterOfMass = float64(start+end) / 2
	} else {
		z.CenterOfMass = weighted / z.StrengthMass
	}
	return z
}
