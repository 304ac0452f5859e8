package models

import "time"

// CropListing is a crop offered for sale by a farmer.
type CropListing struct {
	ID         int       `json:"id" bson:"id" validate:"gte=0"`
	CropName   string    `json:"cropName" bson:"cropName" validate:"required,max=100"`
	Quantity   float64   `json:"quantity" bson:"quantity" validate:"required,gt=0"`
	Price      float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Place      string    `json:"place" bson:"place" validate:"required,max=200"`
	SellerID   int       `json:"sellerId" bson:"sellerId" validate:"required,gte=1"`
	SellerName string    `json:"sellerName" bson:"sellerName" validate:"required,max=100"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// BuyRequest records a buyer's interest in a listing. Contact details
// for both parties are denormalized into the document at creation time
// so each side sees the other without extra lookups.
type BuyRequest struct {
	ID              int       `json:"id" bson:"id" validate:"gte=0"`
	ListingID       int       `json:"listingId" bson:"listingId" validate:"required,gte=1"`
	ListingCropName string    `json:"listingCropName" bson:"listingCropName" validate:"required,max=100"`
	ListingSellerID int       `json:"listingSellerId" bson:"listingSellerId" validate:"required,gte=1"`
	BuyerID         int       `json:"buyerId" bson:"buyerId" validate:"required,gte=1"`
	BuyerName       string    `json:"buyerName" bson:"buyerName" validate:"required,max=100"`
	BuyerPhone      string    `json:"buyerPhone" bson:"buyerPhone" validate:"max=20"`
	BuyerContact    string    `json:"buyerContact" bson:"buyerContact" validate:"max=200"`
	FarmerName      string    `json:"farmerName" bson:"farmerName" validate:"max=100"`
	FarmerPhone     string    `json:"farmerPhone" bson:"farmerPhone" validate:"max=20"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// Validate checks if the listing meets all validation requirements
func (l *CropListing) Validate() error {
	return validate.Struct(l)
}

// BeforeCreate sets up any necessary fields before creation
func (l *CropListing) BeforeCreate() {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
}

// Validate checks if the buy request meets all validation requirements
func (b *BuyRequest) Validate() error {
	return validate.Struct(b)
}

// BeforeCreate sets up any necessary fields before creation
func (b *BuyRequest) BeforeCreate() {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
}
