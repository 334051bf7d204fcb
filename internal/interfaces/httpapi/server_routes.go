package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/stats", handler.GetStats)
}

// Generation segments accept 4, 5, gen4 or gen5.
func registerTradeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gts/{gen}/search", handler.SearchTrades)
	mux.HandleFunc("POST /v1/gts/{gen}/deposit", handler.DepositTrade)
	mux.HandleFunc("POST /v1/gts/{gen}/exchange", handler.ExchangeTrade)
	mux.HandleFunc("GET /v1/gts/{gen}/{pid}", handler.GetTrade)
	mux.HandleFunc("POST /v1/gts/{gen}/{pid}/withdraw", handler.WithdrawTrade)
	mux.HandleFunc("GET /v1/gts/{gen}/{pid}/history", handler.ListTradeHistory)
}

func registerFacilityRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/facility/{gen}/competitors", handler.UpsertCompetitor)
	mux.HandleFunc("GET /v1/facility/{gen}/competitors", handler.ListCompetitors)
	mux.HandleFunc("POST /v1/facility/{gen}/leaders", handler.UpsertLeader)
	mux.HandleFunc("GET /v1/facility/{gen}/leaders", handler.ListLeaders)
}

func registerTerminalRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/terminal/{kind}", handler.SearchContent)
	mux.HandleFunc("POST /v1/terminal/{kind}", handler.UploadContent)
	mux.HandleFunc("GET /v1/terminal/{kind}/count", handler.CountContent)
	mux.HandleFunc("GET /v1/terminal/{kind}/{serial}", handler.GetContent)
	mux.HandleFunc("POST /v1/terminal/{kind}/{serial}/saved", handler.FlagContentSaved)
}

func registerProfileRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("PUT /v1/profiles/{gen}", handler.SetProfile)
	mux.HandleFunc("GET /v1/profiles/{gen}/{pid}", handler.GetProfile)
}

func registerPokedexRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pokedex/species", handler.ListSpecies)
	mux.HandleFunc("GET /v1/pokedex/moves", handler.ListMoves)
	mux.HandleFunc("GET /v1/pokedex/items", handler.ListItems)
	mux.HandleFunc("GET /v1/pokedex/evolutions", handler.ListEvolutions)
}
