package models

import (
	"math"
	"testing"
)

func newTestCVA(t *testing.T) *CVACore {
	t.Helper()
	p, err := NewPriceRangePartition(100, 200, 10)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	return NewCVACore("BTCUSDT", p, 1.0)
}

func TestSpreadScoreDensity(t *testing.T) {
	cva := newTestCVA(t)
	// [110, 130] touches buckets 1, 2, 3
	cva.SpreadScore(ScoreBodyVolume, 110, 130, 9)

	scores := cva.Scores(ScoreBodyVolume)
	for _, idx := range []int{1, 2, 3} {
		if math.Abs(scores[idx]-3) > 1e-12 {
			t.Fatalf("bucket %d: got %v, want 3", idx, scores[idx])
		}
	}
	if scores[0] != 0 || scores[4] != 0 {
		t.Fatalf("score leaked outside the span")
	}
}

func TestSpreadScoreZeroWidthIsPoint(t *testing.T) {
	cva := newTestCVA(t)
	cva.SpreadScore(ScoreLowWick, 155, 155, 2)

	scores := cva.Scores(ScoreLowWick)
	if scores[5] != 2 {
		t.Fatalf("point assignment: got %v, want 2", scores[5])
	}
}

func TestSpreadScoreOutsideRangeIsNoop(t *testing.T) {
	cva := newTestCVA(t)
	cva.SpreadScore(ScoreHighWick, 10, 50, 7)

	for _, s := range cva.Scores(ScoreHighWick) {
		if s != 0 {
			t.Fatalf("outside span must not score, got %v", s)
		}
	}
}

func TestSpreadScoreNormalizesOrder(t *testing.T) {
	a := newTestCVA(t)
	b := newTestCVA(t)
	a.SpreadScore(ScoreBodyVolume, 110, 130, 6)
	b.SpreadScore(ScoreBodyVolume, 130, 110, 6)

	as, bs := a.Scores(ScoreBodyVolume), b.Scores(ScoreBodyVolume)
	for i := range as {
		if as[i] != bs[i] {
			t.Fatalf("bucket %d differs by argument order: %v vs %v", i, as[i], bs[i])
		}
	}
}

func TestAddScoreAccumulates(t *testing.T) {
	cva := newTestCVA(t)
	cva.AddScore(ScoreQuoteVolume, 125, 1.5)
	cva.AddScore(ScoreQuoteVolume, 125, 2.5)

	if got := cva.Scores(ScoreQuoteVolume)[2]; got != 4 {
		t.Fatalf("accumulation: got %v, want 4", got)
	}
}
