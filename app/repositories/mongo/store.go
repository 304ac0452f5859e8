// Package mongo implements the repository interfaces against a hosted
// MongoDB document store. It is interchangeable with the embedded
// Badger backend; STORAGE=mongo selects it at startup.
package mongo

import (
	"context"
	"fmt"

	"agricare/app/models"
	"agricare/app/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Store holds the client and the typed collection handles.
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	counters *mongo.Collection
}

// Open connects to the MongoDB deployment at uri and pings it before
// returning a Store bound to dbName.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %v", err)
	}

	db := client.Database(dbName)
	return &Store{
		client:   client,
		db:       db,
		counters: db.Collection("counters"),
	}, nil
}

func (s *Store) Posts() repositories.PostRepository             { return &postRepo{s} }
func (s *Store) Comments() repositories.CommentRepository       { return &commentRepo{s} }
func (s *Store) Replies() repositories.ReplyRepository          { return &replyRepo{s} }
func (s *Store) Users() repositories.UserRepository             { return &userRepo{s} }
func (s *Store) Listings() repositories.ListingRepository       { return &listingRepo{s} }
func (s *Store) BuyRequests() repositories.BuyRequestRepository { return &buyRequestRepo{s} }

// Close disconnects the underlying client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// nextID atomically increments and returns the sequence counter for an
// entity type, mirroring the Badger backend's sequence keys.
func (s *Store) nextID(ctx context.Context, name string) (int, error) {
	res := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func byIDAsc() options.Lister[options.FindOptions] {
	return options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
}

// === Posts ===

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	id, err := r.s.nextID(ctx, "post")
	if err != nil {
		return err
	}
	post.ID = id
	post.BeforeCreate()
	_, err = r.s.db.Collection("posts").InsertOne(ctx, post)
	return err
}

func (r *postRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.s.db.Collection("posts").FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	cursor, err := r.s.db.Collection("posts").Find(ctx, bson.M{}, byIDAsc())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// === Comments ===

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	id, err := r.s.nextID(ctx, "comment")
	if err != nil {
		return err
	}
	comment.ID = id
	comment.BeforeCreate()
	_, err = r.s.db.Collection("comments").InsertOne(ctx, comment)
	return err
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	cursor, err := r.s.db.Collection("comments").Find(ctx, bson.M{"postId": postID}, byIDAsc())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// === Replies ===

type replyRepo struct{ s *Store }

func (r *replyRepo) Create(ctx context.Context, reply *models.Reply) error {
	id, err := r.s.nextID(ctx, "reply")
	if err != nil {
		return err
	}
	reply.ID = id
	reply.BeforeCreate()
	_, err = r.s.db.Collection("replies").InsertOne(ctx, reply)
	return err
}

func (r *replyRepo) ListByComment(ctx context.Context, postID, commentID int) ([]*models.Reply, error) {
	filter := bson.M{"postId": postID, "commentId": commentID}
	cursor, err := r.s.db.Collection("replies").Find(ctx, filter, byIDAsc())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var replies []*models.Reply
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// === Users ===

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	coll := r.s.db.Collection("users")

	count, err := coll.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("email already registered: %s", user.Email)
	}

	id, err := r.s.nextID(ctx, "user")
	if err != nil {
		return err
	}
	user.ID = id
	user.BeforeCreate()
	_, err = coll.InsertOne(ctx, user)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.s.db.Collection("users").FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.s.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// === Listings ===

type listingRepo struct{ s *Store }

func (r *listingRepo) Create(ctx context.Context, listing *models.CropListing) error {
	id, err := r.s.nextID(ctx, "listing")
	if err != nil {
		return err
	}
	listing.ID = id
	listing.BeforeCreate()
	_, err = r.s.db.Collection("cropListings").InsertOne(ctx, listing)
	return err
}

func (r *listingRepo) List(ctx context.Context) ([]*models.CropListing, error) {
	return r.find(ctx, bson.M{})
}

func (r *listingRepo) ListBySeller(ctx context.Context, sellerID int) ([]*models.CropListing, error) {
	return r.find(ctx, bson.M{"sellerId": sellerID})
}

func (r *listingRepo) find(ctx context.Context, filter bson.M) ([]*models.CropListing, error) {
	cursor, err := r.s.db.Collection("cropListings").Find(ctx, filter, byIDAsc())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []*models.CropListing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// === Buy requests ===

type buyRequestRepo struct{ s *Store }

func (r *buyRequestRepo) Create(ctx context.Context, req *models.BuyRequest) error {
	id, err := r.s.nextID(ctx, "buyreq")
	if err != nil {
		return err
	}
	req.ID = id
	req.BeforeCreate()
	_, err = r.s.db.Collection("buyRequests").InsertOne(ctx, req)
	return err
}

func (r *buyRequestRepo) ListBySeller(ctx context.Context, sellerID int) ([]*models.BuyRequest, error) {
	return r.find(ctx, bson.M{"listingSellerId": sellerID})
}

func (r *buyRequestRepo) ListByBuyer(ctx context.Context, buyerID int) ([]*models.BuyRequest, error) {
	return r.find(ctx, bson.M{"buyerId": buyerID})
}

func (r *buyRequestRepo) find(ctx context.Context, filter bson.M) ([]*models.BuyRequest, error) {
	cursor, err := r.s.db.Collection("buyRequests").Find(ctx, filter, byIDAsc())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*models.BuyRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
