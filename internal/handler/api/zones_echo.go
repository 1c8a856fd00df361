package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	"github.com/leemthai/zone-sniper-sub000/internal/engine"
	"github.com/leemthai/zone-sniper-sub000/internal/repository"
	xhttp "github.com/leemthai/zone-sniper-sub000/pkg/http"
	xlogger "github.com/leemthai/zone-sniper-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ZonesEchoHandler exposes the engine's read-only surface plus the manual
// recalc trigger over Echo.
type ZonesEchoHandler struct {
	logger  *xlogger.Logger
	engine  *engine.Engine
	monitor *engine.Monitor
	history *repository.SignalStorage
}

func NewZonesEchoHandler(log *xlogger.Logger, eng *engine.Engine, mon *engine.Monitor, history *repository.SignalStorage) *ZonesEchoHandler {
	return &ZonesEchoHandler{logger: log, engine: eng, monitor: mon, history: history}
}

func (h *ZonesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/pairs", h.Pairs)
	g.GET("/zones/:pair", h.Zones)
	g.GET("/signals", h.Signals)
	g.GET("/history/:pair", h.History)
	g.POST("/recalc", h.Recalc)
}

// Pairs lists every tracked pair with its engine status.
func (h *ZonesEchoHandler) Pairs(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.engine.Statuses())
}

// SuperZoneView is the wire shape of one aggregated zone.
type SuperZoneView struct {
	ID          int     `json:"id"`
	FirstIndex  int     `json:"first_index"`
	LastIndex   int     `json:"last_index"`
	PriceBottom float64 `json:"price_bottom"`
	PriceTop    float64 `json:"price_top"`
	PriceCenter float64 `json:"price_center"`
	ZoneCount   int     `json:"zone_count"`
}

// ZonesView is the published model snapshot for one pair.
type ZonesView struct {
	Pair             string          `json:"pair"`
	CurrentPrice     float64         `json:"current_price"`
	TotalCandles     int             `json:"total_candles"`
	StartTimestampMs int64           `json:"start_timestamp_ms"`
	EndTimestampMs   int64           `json:"end_timestamp_ms"`
	PriceMin         float64         `json:"price_min"`
	PriceMax         float64         `json:"price_max"`
	Sticky           []SuperZoneView `json:"sticky"`
	Slippy           []SuperZoneView `json:"slippy"`
	LowWicks         []SuperZoneView `json:"low_wicks"`
	HighWicks        []SuperZoneView `json:"high_wicks"`
	Support          *SuperZoneView  `json:"support,omitempty"`
	Resistance       *SuperZoneView  `json:"resistance,omitempty"`
}

// Zones returns the current front-buffer snapshot for one pair.
func (h *ZonesEchoHandler) Zones(c echo.Context) error {
	pair := c.Param("pair")
	model, err := h.engine.Model(pair)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownPair) {
			return xhttp.NotFoundResponse(c, "unknown pair")
		}
		return xhttp.AppErrorResponse(c, err)
	}
	if model == nil {
		status, _ := h.engine.Status(pair)
		return xhttp.SuccessResponse(c, status)
	}

	view := ZonesView{
		Pair:             model.PairName,
		CurrentPrice:     model.CurrentPrice,
		TotalCandles:     model.CVA.TotalCandles,
		StartTimestampMs: model.CVA.StartTimestampMs,
		EndTimestampMs:   model.CVA.EndTimestampMs,
		PriceMin:         model.CVA.PriceRange.Start,
		PriceMax:         model.CVA.PriceRange.End,
		Sticky:           superZoneViews(model.Zones.StickySuper),
		Slippy:           superZoneViews(model.Zones.SlippySuper),
		LowWicks:         superZoneViews(model.Zones.LowWicksSuper),
		HighWicks:        superZoneViews(model.Zones.HighWicksSuper),
	}
	if sz, ok := model.NearestSupport(model.CurrentPrice); ok {
		v := superZoneView(sz)
		view.Support = &v
	}
	if sz, ok := model.NearestResistance(model.CurrentPrice); ok {
		v := superZoneView(sz)
		view.Resistance = &v
	}
	return xhttp.SuccessResponse(c, view)
}

// Signals returns the current state signals across all monitored pairs.
func (h *ZonesEchoHandler) Signals(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.monitor.Signals())
}

// HistoryRequest narrows the signal history query.
type HistoryRequest struct {
	Hours int `query:"hours" default:"24" validate:"gte=1,lte=2160"`
	Limit int `query:"limit" default:"200" validate:"gte=1,lte=5000"`
}

// History returns persisted signals for one pair, most recent first.
func (h *ZonesEchoHandler) History(c echo.Context) error {
	if h.history == nil {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError(
			"ERR_HISTORY_DISABLED", "", "signal history storage is not configured", http.StatusServiceUnavailable))
	}
	pair := c.Param("pair")
	req := &HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now()
	from := to.Add(-time.Duration(req.Hours) * time.Hour)
	signals, err := h.history.Query(c.Request().Context(), pair, from, to, req.Limit)
	if err != nil {
		h.logger.Error("history query failed", xlogger.String("pair", pair), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, signals)
}

// RecalcRequest asks for a recomputation. Global rebuilds the whole queue
// with the named pair first.
type RecalcRequest struct {
	Pair   string `json:"pair" validate:"required"`
	Global bool   `json:"global"`
}

// Recalc queues a pair at the front of the recalc queue.
func (h *ZonesEchoHandler) Recalc(c echo.Context) error {
	req := &RecalcRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Global {
		h.engine.TriggerGlobalRecalc(req.Pair)
		return xhttp.SuccessResponse(c, "global recalc queued")
	}
	if err := h.engine.ForceRecalc(req.Pair); err != nil {
		if errors.Is(err, engine.ErrUnknownPair) {
			return xhttp.NotFoundResponse(c, "unknown pair")
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, "recalc queued")
}

func superZoneView(sz models.SuperZone) SuperZoneView {
	return SuperZoneView{
		ID:          sz.ID,
		FirstIndex:  sz.FirstIndex,
		LastIndex:   sz.LastIndex,
		PriceBottom: sz.PriceBottom,
		PriceTop:    sz.PriceTop,
		PriceCenter: sz.PriceCenter,
		ZoneCount:   len(sz.Zones),
	}
}

func superZoneViews(zones []models.SuperZone) []SuperZoneView {
	out := make([]SuperZoneView, 0, len(zones))
	for _, sz := range zones {
		out = append(out, superZoneView(sz))
	}
	return out
}
