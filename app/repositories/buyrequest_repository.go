package repositories

import (
	"context"
	"fmt"
	"sort"

	"agricare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBuyRequestRepository implements BuyRequestRepository using BadgerDB
type BadgerBuyRequestRepository struct {
	db *badger.DB
}

// NewBadgerBuyRequestRepository creates a new BadgerBuyRequestRepository
func NewBadgerBuyRequestRepository(db *badger.DB) *BadgerBuyRequestRepository {
	return &BadgerBuyRequestRepository{db: db}
}

// Create creates a new buy request
func (r *BadgerBuyRequestRepository) Create(ctx context.Context, req *models.BuyRequest) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, BuyReqSeqKey)
		if err != nil {
			return err
		}
		req.ID = id
		req.BeforeCreate()

		data, err := marshalEntity(req)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", BuyReqKeyPrefix, req.ID))
		return txn.Set(key, data)
	})
}

// ListBySeller retrieves buy requests targeting a seller's listings
func (r *BadgerBuyRequestRepository) ListBySeller(ctx context.Context, sellerID int) ([]*models.BuyRequest, error) {
	return r.scan(func(b *models.BuyRequest) bool { return b.ListingSellerID == sellerID })
}

// ListByBuyer retrieves buy requests placed by a buyer
func (r *BadgerBuyRequestRepository) ListByBuyer(ctx context.Context, buyerID int) ([]*models.BuyRequest, error) {
	return r.scan(func(b *models.BuyRequest) bool { return b.BuyerID == buyerID })
}

func (r *BadgerBuyRequestRepository) scan(keep func(*models.BuyRequest) bool) ([]*models.BuyRequest, error) {
	var requests []*models.BuyRequest
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BuyReqKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var req models.BuyRequest
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &req)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal buy request: %v", err)
			}
			if keep(&req) {
				requests = append(requests, &req)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].ID < requests[j].ID
	})
	return requests, nil
}
