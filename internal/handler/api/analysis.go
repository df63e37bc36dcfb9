package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler serves the signal engine: a one-shot single-market
// endpoint and a server-sent-events stream over the top-volume batch.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analysis *usecase.AnalysisUseCase
}

func NewAnalysisHandler(logger *xlogger.Logger, analysis *usecase.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/analysis")
	g.GET("/stream", h.Stream)
	g.GET("/:id", h.Market)
}

func (h *AnalysisHandler) Market(c echo.Context) error {
	res, err := h.analysis.AnalyzeMarket(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("analyze market", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Stream pushes each market's analysis as its own SSE event the moment it is
// ready. Flushing happens per event, so the client renders result i while
// market i+1 is still being analyzed.
func (h *AnalysisHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	first, rest, err := h.analysis.StreamAnalysis(ctx)
	if err != nil {
		h.logger.Error("analysis stream start", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	writeEvent := func(event string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, b); err != nil {
			return err
		}
		res.Flush()
		return nil
	}

	sent := 0
	for _, a := range first {
		if err := writeEvent("analysis", a); err != nil {
			return nil
		}
		sent++
	}
	for a := range rest {
		if err := writeEvent("analysis", a); err != nil {
			// Client went away; draining stops via request context.
			return nil
		}
		sent++
	}

	_ = writeEvent("done", map[string]int{"count": sent})
	return nil
}
