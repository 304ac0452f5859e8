package routes

import (
	"log"
	"net/http"

	"agricare/app/advisor"
	"agricare/app/controllers"
	"agricare/app/middleware"
	"agricare/app/models"
	"agricare/app/repositories"
	"agricare/app/services"

	"github.com/gorilla/mux"
)

// Deps carries everything the route table needs.
type Deps struct {
	Store     repositories.Store
	JWTSecret []byte
	Advisor   *advisor.Client
	// BasePath anchors template lookup; empty means the working
	// directory, tests point it at a temp dir.
	BasePath string
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	authService := services.NewAuthService(deps.Store.Users(), deps.JWTSecret)
	communityService := services.NewCommunityService(deps.Store.Posts(), deps.Store.Comments(), deps.Store.Replies())
	marketService := services.NewMarketService(deps.Store.Listings(), deps.Store.BuyRequests(), deps.Store.Users())

	authController := controllers.NewAuthController(authService)
	communityController := controllers.NewCommunityController(communityService, deps.BasePath)
	marketController := controllers.NewMarketController(marketService)
	advisorController := controllers.NewAdvisorController(deps.Advisor)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Authenticate(authService, deps.Store.Users()))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Community web surface (farmers only)
	community := router.PathPrefix("/community").Subrouter()
	community.Use(middleware.RequireRole(models.RoleFarmer))
	community.HandleFunc("", communityController.Board).Methods("GET")
	community.HandleFunc("/posts", communityController.SubmitPost).Methods("POST")
	community.HandleFunc("/posts/{postId:[0-9]+}/toggle", communityController.ToggleComments).Methods("POST")
	community.HandleFunc("/posts/{postId:[0-9]+}/comments", communityController.SubmitComment).Methods("POST")
	community.HandleFunc("/posts/{postId:[0-9]+}/comments/{commentId:[0-9]+}/replies", communityController.SubmitReply).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth API endpoints
	api.HandleFunc("/auth/register", authController.Register).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Community API endpoints (farmers only)
	apiCommunity := api.PathPrefix("/community").Subrouter()
	apiCommunity.Use(middleware.RequireRole(models.RoleFarmer))
	apiCommunity.HandleFunc("/posts", communityController.Tree).Methods("GET")
	apiCommunity.HandleFunc("/posts", communityController.CreatePost).Methods("POST")
	apiCommunity.HandleFunc("/posts/{postId:[0-9]+}/comments", communityController.CreateComment).Methods("POST")
	apiCommunity.HandleFunc("/posts/{postId:[0-9]+}/comments/{commentId:[0-9]+}/replies", communityController.CreateReply).Methods("POST")

	// Market API endpoints
	apiMarket := api.PathPrefix("/market").Subrouter()
	apiMarket.Use(middleware.RequireAuth)
	apiMarket.HandleFunc("/listings", marketController.Listings).Methods("GET")
	apiMarket.HandleFunc("/listings/mine", marketController.MyListings).Methods("GET")
	apiMarket.HandleFunc("/listings", marketController.CreateListing).Methods("POST")
	apiMarket.HandleFunc("/listings/{id:[0-9]+}/buy", marketController.Buy).Methods("POST")
	apiMarket.HandleFunc("/requests/placed", marketController.MyRequests).Methods("GET")
	apiMarket.HandleFunc("/requests/received", marketController.SellerRequests).Methods("GET")

	// Advisor proxy endpoints
	apiAdvisor := api.PathPrefix("/advisor").Subrouter()
	apiAdvisor.Use(middleware.RequireAuth)
	apiAdvisor.HandleFunc("/chat", advisorController.Chat).Methods("POST")
	apiAdvisor.HandleFunc("/weather", advisorController.Weather).Methods("GET")
	apiAdvisor.HandleFunc("/crop-rotation", advisorController.CropRotation).Methods("POST")
	apiAdvisor.HandleFunc("/fertilizer", advisorController.Fertilizer).Methods("POST")
	apiAdvisor.HandleFunc("/market-prices", advisorController.MarketPrices).Methods("POST")
	apiAdvisor.HandleFunc("/detect-pest", advisorController.DetectPest).Methods("POST")
	apiAdvisor.HandleFunc("/schemes", advisorController.Schemes).Methods("GET")
	apiAdvisor.HandleFunc("/videos", advisorController.VideoTutorials).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, router)
}
