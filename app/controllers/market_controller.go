package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agricare/app/middleware"
	"agricare/app/services"

	"github.com/gorilla/mux"
)

// MarketController handles HTTP requests for the crop marketplace
type MarketController struct {
	service *services.MarketService
}

// NewMarketController creates a new MarketController
func NewMarketController(service *services.MarketService) *MarketController {
	return &MarketController{service: service}
}

// CreateListing handles a farmer posting a new crop listing
func (mc *MarketController) CreateListing(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	var in services.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := mc.service.CreateListing(r.Context(), auth.User, in)
	if err != nil {
		sendError(w, "Failed to create listing: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, listing)
}

// Listings handles browsing all listings with optional search and
// price filters
func (mc *MarketController) Listings(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	maxPrice := 0.0
	if s := r.URL.Query().Get("maxPrice"); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			sendError(w, "Invalid maxPrice", http.StatusBadRequest)
			return
		}
		maxPrice = p
	}

	listings, err := mc.service.Listings(r.Context(), search, maxPrice)
	if err != nil {
		sendError(w, "Failed to fetch listings: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"listings": listings})
}

// MyListings handles a farmer viewing their own listings
func (mc *MarketController) MyListings(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	listings, err := mc.service.ListingsBySeller(r.Context(), auth.User.ID)
	if err != nil {
		sendError(w, "Failed to fetch listings: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"listings": listings})
}

// Buy handles a buyer placing a buy request against a listing
func (mc *MarketController) Buy(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	listingID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	req, err := mc.service.CreateBuyRequest(r.Context(), auth.User, listingID)
	if err != nil {
		sendError(w, "Failed to place buy request: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, req)
}

// MyRequests handles a buyer viewing the requests they have placed
func (mc *MarketController) MyRequests(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	requests, err := mc.service.RequestsForBuyer(r.Context(), auth.User.ID)
	if err != nil {
		sendError(w, "Failed to fetch requests: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// SellerRequests handles a farmer viewing requests against their
// listings
func (mc *MarketController) SellerRequests(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthStateFrom(r.Context())

	requests, err := mc.service.RequestsForSeller(r.Context(), auth.User.ID)
	if err != nil {
		sendError(w, "Failed to fetch requests: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}
