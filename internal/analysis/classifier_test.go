package analysis

import (
	"testing"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

func TestNormalizeMax(t *testing.T) {
	out := NormalizeMax([]float64{0, 2, 4})
	if out[0] != 0 || out[1] != 0.5 || out[2] != 1 {
		t.Fatalf("normalize: got %v", out)
	}
	zeros := NormalizeMax([]float64{0, 0})
	if zeros[0] != 0 || zeros[1] != 0 {
		t.Fatalf("all-zero input must stay zero, got %v", zeros)
	}
}

func TestSmoothDataTruncatesAtEdges(t *testing.T) {
	out := SmoothData([]float64{3, 0, 0}, 3)
	// edge window is [3, 0], middle is [3, 0, 0]
	if out[0] != 1.5 || out[1] != 1 || out[2] != 0 {
		t.Fatalf("smoothed: got %v", out)
	}
}

func TestSmoothDataWidthOneIsCopy(t *testing.T) {
	in := []float64{1, 2, 3}
	out := SmoothData(in, 1)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("width 1 must copy, got %v", out)
		}
	}
}

func TestHighActivityZonesPercentileCut(t *testing.T) {
	got := HighActivityZones([]float64{0, 1, 2, 3}, 0.75)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("top quartile: got %v, want [3]", got)
	}
}

func TestLowActivityZonesRejectsSteepNeighbours(t *testing.T) {
	// buckets next to the spike are quiet but sit on a cliff
	got := LowActivityZones([]float64{0, 0, 10, 0, 0}, 0.25, 0.25)
	if len(got) != 2 || got[0] != 0 || got[1] != 4 {
		t.Fatalf("quiet buckets: got %v, want [0 4]", got)
	}
}

func TestClassifyZonesEndToEnd(t *testing.T) {
	partition, err := models.NewPriceRangePartition(0, 100, 10)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	cva := models.NewCVACore("BTCUSDT", partition, 1.0)
	// one contiguous high-volume band in buckets 2..4
	cva.AddScore(models.ScoreBodyVolume, 25, 10)
	cva.AddScore(models.ScoreBodyVolume, 35, 10)
	cva.AddScore(models.ScoreBodyVolume, 45, 10)
	// ascending wick activity so the percentile cut keeps the top buckets
	for i := 0; i < 10; i++ {
		cva.AddScore(models.ScoreHighWick, float64(i)*10+5, float64(i))
	}

	zones := ClassifyZones(cva)

	if len(zones.StickySuper) != 1 {
		t.Fatalf("sticky super zones: got %d, want 1", len(zones.StickySuper))
	}
	sz := zones.StickySuper[0]
	if sz.FirstIndex != 2 || sz.LastIndex != 4 {
		t.Fatalf("sticky span: got [%d, %d], want [2, 4]", sz.FirstIndex, sz.LastIndex)
	}

	wickIdx := map[int]bool{}
	for _, z := range zones.HighWicks {
		wickIdx[z.Index] = true
	}
	for _, want := range []int{7, 8, 9} {
		if !wickIdx[want] {
			t.Fatalf("high wick bucket %d missing, got %v", want, zones.HighWicks)
		}
	}
}
