package services

import (
	"context"
	"fmt"
	"strings"

	"agricare/app/models"
	"agricare/app/repositories"
)

// MarketService handles business logic for the crop marketplace:
// listings created by farmers and buy requests placed by buyers.
type MarketService struct {
	listingRepo repositories.ListingRepository
	buyReqRepo  repositories.BuyRequestRepository
	userRepo    repositories.UserRepository
}

// NewMarketService creates a new MarketService
func NewMarketService(listingRepo repositories.ListingRepository, buyReqRepo repositories.BuyRequestRepository, userRepo repositories.UserRepository) *MarketService {
	return &MarketService{
		listingRepo: listingRepo,
		buyReqRepo:  buyReqRepo,
		userRepo:    userRepo,
	}
}

// ListingInput carries the new-listing form fields.
type ListingInput struct {
	CropName string  `json:"cropName"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Place    string  `json:"place"`
}

// CreateListing creates a crop listing owned by the acting farmer.
func (s *MarketService) CreateListing(ctx context.Context, actor *models.User, in ListingInput) (*models.CropListing, error) {
	if actor.Role != models.RoleFarmer {
		return nil, fmt.Errorf("only farmers can create listings")
	}

	listing := &models.CropListing{
		CropName:   strings.TrimSpace(in.CropName),
		Quantity:   in.Quantity,
		Price:      in.Price,
		Place:      strings.TrimSpace(in.Place),
		SellerID:   actor.ID,
		SellerName: actor.Name,
	}
	if err := listing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid listing: %v", err)
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return listing, nil
}

// Listings returns all listings, filtered client-side by an optional
// case-insensitive crop-name search term and an optional maximum
// price. Zero maxPrice means no price cap.
func (s *MarketService) Listings(ctx context.Context, searchTerm string, maxPrice float64) ([]*models.CropListing, error) {
	listings, err := s.listingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	searchTerm = strings.ToLower(strings.TrimSpace(searchTerm))
	filtered := make([]*models.CropListing, 0, len(listings))
	for _, l := range listings {
		if searchTerm != "" && !strings.Contains(strings.ToLower(l.CropName), searchTerm) {
			continue
		}
		if maxPrice > 0 && l.Price > maxPrice {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered, nil
}

// ListingsBySeller returns the listings owned by a farmer.
func (s *MarketService) ListingsBySeller(ctx context.Context, sellerID int) ([]*models.CropListing, error) {
	listings, err := s.listingRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return listings, nil
}

// CreateBuyRequest records a buyer's interest in a listing. The
// farmer's contact details are resolved once here and denormalized
// into the request document.
func (s *MarketService) CreateBuyRequest(ctx context.Context, buyer *models.User, listingID int) (*models.BuyRequest, error) {
	if buyer.Role != models.RoleBuyer {
		return nil, fmt.Errorf("only buyers can place buy requests")
	}

	listings, err := s.listingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	var listing *models.CropListing
	for _, l := range listings {
		if l.ID == listingID {
			listing = l
			break
		}
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %d not found", listingID)
	}

	req := &models.BuyRequest{
		ListingID:       listing.ID,
		ListingCropName: listing.CropName,
		ListingSellerID: listing.SellerID,
		BuyerID:         buyer.ID,
		BuyerName:       buyer.Name,
		BuyerPhone:      buyer.Phone,
		BuyerContact:    buyer.Email,
	}

	// Best effort: an unknown seller still gets a request, with the
	// contact fields left blank.
	if farmer, err := s.userRepo.GetByID(ctx, listing.SellerID); err == nil {
		req.FarmerName = farmer.Name
		req.FarmerPhone = farmer.Phone
	}

	if err := s.buyReqRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return req, nil
}

// RequestsForSeller returns buy requests targeting a farmer's listings.
func (s *MarketService) RequestsForSeller(ctx context.Context, sellerID int) ([]*models.BuyRequest, error) {
	requests, err := s.buyReqRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return requests, nil
}

// RequestsForBuyer returns the buy requests a buyer has placed.
func (s *MarketService) RequestsForBuyer(ctx context.Context, buyerID int) ([]*models.BuyRequest, error) {
	requests, err := s.buyReqRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return requests, nil
}
