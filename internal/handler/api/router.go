package api

import (
	xhttp "OddsLens/pkg/http"

	"github.com/labstack/echo/v4"
)

// Router aggregates every API handler behind one route registrar. Nil
// handlers are skipped, so optional surfaces (trading, the ws feed) drop out
// cleanly when their backend is not configured.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(markets *MarketsHandler, analysis *AnalysisHandler, watchlist *WatchlistHandler, portfolio *PortfolioHandler, orders *OrdersHandler, tickerH *TickerHandler) *Router {
	r := &Router{}
	if markets != nil {
		r.handlers = append(r.handlers, markets)
	}
	if analysis != nil {
		r.handlers = append(r.handlers, analysis)
	}
	if watchlist != nil {
		r.handlers = append(r.handlers, watchlist)
	}
	if portfolio != nil {
		r.handlers = append(r.handlers, portfolio)
	}
	if orders != nil {
		r.handlers = append(r.handlers, orders)
	}
	if tickerH != nil {
		r.handlers = append(r.handlers, tickerH)
	}
	return r
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}

var _ xhttp.Handler = (*Router)(nil)
