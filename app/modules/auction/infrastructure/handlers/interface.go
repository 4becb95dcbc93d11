package auctionhandlers

import "net/http"

// Handlers defines the HTTP surface of the auction module.
type Handlers interface {
	HandleListItems(w http.ResponseWriter, r *http.Request)
	HandleGetItem(w http.ResponseWriter, r *http.Request)
	HandleListBids(w http.ResponseWriter, r *http.Request)
	HandlePlaceBid(w http.ResponseWriter, r *http.Request)
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleBidChart(w http.ResponseWriter, r *http.Request)

	HandleCreateItem(w http.ResponseWriter, r *http.Request)
	HandleUpdateItem(w http.ResponseWriter, r *http.Request)
	HandleDeleteItem(w http.ResponseWriter, r *http.Request)
	HandleSetActive(w http.ResponseWriter, r *http.Request)
	HandleAdminPlaceBid(w http.ResponseWriter, r *http.Request)
	HandleListAllBids(w http.ResponseWriter, r *http.Request)
}
