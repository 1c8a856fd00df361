package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	"github.com/leemthai/zone-sniper-sub000/internal/service/ratelimit"
	xhttp "github.com/leemthai/zone-sniper-sub000/pkg/http"
)

const (
	klinesPageLimit = 1000

	// Binance allows 6000 request weight per minute; klines with
	// limit=1000 cost 2. Stay well under it.
	klinesBurst        = 20
	klinesPerSec       = 10
	klinesRateLimitKey = "klines"
)

// RestClient fetches historical klines from the Binance REST API.
type RestClient struct {
	baseURL string
	httpc   *xhttp.Client
	limiter *ratelimit.Limiter
}

func NewRestClient(baseURL string, httpc *xhttp.Client) *RestClient {
	return &RestClient{baseURL: baseURL, httpc: httpc, limiter: ratelimit.New()}
}

// intervalLabel converts an interval width in milliseconds to the API's
// interval token.
func intervalLabel(intervalMs int64) (string, error) {
	switch intervalMs {
	case 60_000:
		return "1m", nil
	case 300_000:
		return "5m", nil
	case 900_000:
		return "15m", nil
	case 1_800_000:
		return "30m", nil
	case 3_600_000:
		return "1h", nil
	case 14_400_000:
		return "4h", nil
	case 86_400_000:
		return "1d", nil
	}
	return "", fmt.Errorf("unsupported kline interval %dms", intervalMs)
}

// FetchSeries backfills one pair's candles from startMs to now into a dense
// series. Missing intervals are filled with flat zero-volume candles at the
// previous close so indices stay implicit timeline positions.
func (c *RestClient) FetchSeries(ctx context.Context, symbol string, intervalMs int64, startMs int64) (*models.OhlcvTimeSeries, error) {
	interval, err := intervalLabel(intervalMs)
	if err != nil {
		return nil, err
	}

	pair := models.NewPairInterval(symbol, intervalMs)
	series := models.NewOhlcvTimeSeries(pair, 0, 4096)

	cursor := startMs
	now := time.Now().UnixMilli()
	for cursor < now {
		page, err := c.fetchPage(ctx, symbol, interval, cursor)
		if err != nil {
			return nil, fmt.Errorf("backfill %s: %w", symbol, err)
		}
		if len(page) == 0 {
			break
		}
		for _, k := range page {
			appendDense(series, k, intervalMs)
		}
		last := page[len(page)-1].OpenTimeMs
		if last+intervalMs <= cursor {
			break
		}
		cursor = last + intervalMs
		if len(page) < klinesPageLimit {
			break
		}
	}
	return series, nil
}

type kline struct {
	OpenTimeMs  int64
	Open        float64
	High        float64
	Low         float64
	Close       float64
	BaseVolume  float64
	QuoteVolume float64
}

// fetchPage requests one page of klines. The API answers with positional
// arrays of mixed numbers and numeric strings.
func (c *RestClient) fetchPage(ctx context.Context, symbol, interval string, startMs int64) ([]kline, error) {
	if err := c.limiter.Wait(ctx, klinesRateLimitKey, klinesBurst, klinesPerSec); err != nil {
		return nil, err
	}

	var raw [][]interface{}
	err := c.httpc.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/v3/klines",
		QueryParams: map[string][]string{
			"symbol":    {symbol},
			"interval":  {interval},
			"startTime": {strconv.FormatInt(startMs, 10)},
			"limit":     {strconv.Itoa(klinesPageLimit)},
		},
	}, &raw)
	if err != nil {
		return nil, err
	}

	out := make([]kline, 0, len(raw))
	for _, row := range raw {
		if len(row) < 8 {
			continue
		}
		k, err := parseKlineRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func parseKlineRow(row []interface{}) (kline, error) {
	openTime, ok := row[0].(float64)
	if !ok {
		return kline{}, fmt.Errorf("kline open time is not numeric")
	}
	fields := make([]float64, 0, 6)
	for _, idx := range []int{1, 2, 3, 4, 5, 7} {
		s, ok := row[idx].(string)
		if !ok {
			return kline{}, fmt.Errorf("kline field %d is not a string", idx)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return kline{}, fmt.Errorf("kline field %d: %w", idx, err)
		}
		fields = append(fields, v)
	}
	return kline{
		OpenTimeMs:  int64(openTime),
		Open:        fields[0],
		High:        fields[1],
		Low:         fields[2],
		Close:       fields[3],
		BaseVolume:  fields[4],
		QuoteVolume: fields[5],
	}, nil
}

// appendDense appends one kline, first padding any gap since the previous
// candle with flat placeholders.
func appendDense(series *models.OhlcvTimeSeries, k kline, intervalMs int64) {
	if series.Len() == 0 {
		series.FirstTimestampMs = k.OpenTimeMs
	} else {
		expected := series.TimestampAt(series.Len())
		prevClose := series.Close[series.Len()-1]
		for ts := expected; ts < k.OpenTimeMs; ts += intervalMs {
			series.Append(models.Candle{
				Open: prevClose, High: prevClose, Low: prevClose, Close: prevClose,
			})
		}
	}
	series.Append(models.Candle{
		Open:        k.Open,
		High:        k.High,
		Low:         k.Low,
		Close:       k.Close,
		BaseVolume:  k.BaseVolume,
		QuoteVolume: k.QuoteVolume,
	})
}
