package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"agricare/app/advisor"
	"agricare/app/models"
	"agricare/app/repositories"

	"github.com/stretchr/testify/assert"
)

type testApp struct {
	server *httptest.Server
	store  *repositories.BadgerStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := repositories.OpenBadger("")
	assert.NoError(t, err)

	advisorStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "stub answer"})
	}))

	router := SetupRoutes(Deps{
		Store:     store,
		JWTSecret: []byte("test-secret"),
		Advisor:   advisor.NewClient(advisorStub.URL),
		BasePath:  "../..",
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		advisorStub.Close()
		store.Close()
	})
	return &testApp{server: server, store: store}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (a *testApp) register(t *testing.T, name, email, role string) string {
	t.Helper()
	resp, body := a.do(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     name,
		"phone":    "9876543210",
		"email":    email,
		"password": "secret123",
		"location": "Nashik",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)

	t.Run("register and login", func(t *testing.T) {
		app.register(t, "Ravi Kumar", "ravi@example.com", models.RoleFarmer)

		resp, body := app.do(t, "POST", "/api/auth/login", "", map[string]string{
			"email":    "ravi@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := app.do(t, "POST", "/api/auth/login", "", map[string]string{
			"email":    "ravi@example.com",
			"password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCommunityAPI(t *testing.T) {
	app := newTestApp(t)
	alice := app.register(t, "Alice Deshmukh", "alice@example.com", models.RoleFarmer)
	bob := app.register(t, "Bob Patil", "bob@example.com", models.RoleFarmer)
	trader := app.register(t, "Asha Traders", "asha@example.com", models.RoleBuyer)

	var postID, commentID float64

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		resp, _ := app.do(t, "GET", "/api/community/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("buyers are forbidden", func(t *testing.T) {
		resp, _ := app.do(t, "GET", "/api/community/posts", trader, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("create post returns the reloaded tree", func(t *testing.T) {
		resp, body := app.do(t, "POST", "/api/community/posts", alice, map[string]string{
			"content": "Yellow spots on my wheat",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		post, _ := body["post"].(map[string]any)
		assert.NotNil(t, post)
		postID = post["id"].(float64)

		posts, _ := body["posts"].([]any)
		assert.Len(t, posts, 1)
	})

	t.Run("empty post is rejected", func(t *testing.T) {
		resp, _ := app.do(t, "POST", "/api/community/posts", alice, map[string]string{
			"content": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("author cannot comment on own post", func(t *testing.T) {
		path := fmt.Sprintf("/api/community/posts/%.0f/comments", postID)
		resp, _ := app.do(t, "POST", path, alice, map[string]string{"content": "Bump"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("another farmer can comment", func(t *testing.T) {
		path := fmt.Sprintf("/api/community/posts/%.0f/comments", postID)
		resp, body := app.do(t, "POST", path, bob, map[string]string{"content": "Looks like rust"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		comment, _ := body["comment"].(map[string]any)
		assert.NotNil(t, comment)
		commentID = comment["id"].(float64)
	})

	t.Run("author can reply", func(t *testing.T) {
		path := fmt.Sprintf("/api/community/posts/%.0f/comments/%.0f/replies", postID, commentID)
		resp, body := app.do(t, "POST", path, alice, map[string]string{"content": "Thanks, will spray"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotNil(t, body["reply"])
	})

	t.Run("tree shows the full thread", func(t *testing.T) {
		resp, body := app.do(t, "GET", "/api/community/posts", bob, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		posts, _ := body["posts"].([]any)
		assert.Len(t, posts, 1)
		post := posts[0].(map[string]any)
		comments := post["comments"].([]any)
		assert.Len(t, comments, 1)
		replies := comments[0].(map[string]any)["replies"].([]any)
		assert.Len(t, replies, 1)
	})
}

func TestMarketAPI(t *testing.T) {
	app := newTestApp(t)
	farmer := app.register(t, "Ravi Kumar", "ravi@example.com", models.RoleFarmer)
	buyer := app.register(t, "Asha Traders", "asha@example.com", models.RoleBuyer)

	var listingID float64

	t.Run("farmer creates a listing", func(t *testing.T) {
		resp, body := app.do(t, "POST", "/api/market/listings", farmer, map[string]any{
			"cropName": "Wheat", "quantity": 500, "price": 2200, "place": "Nashik",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		listingID = body["id"].(float64)
	})

	t.Run("buyer browses with filters", func(t *testing.T) {
		resp, body := app.do(t, "GET", "/api/market/listings?search=wheat&maxPrice=3000", buyer, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		listings, _ := body["listings"].([]any)
		assert.Len(t, listings, 1)
	})

	t.Run("buyer places a request", func(t *testing.T) {
		path := fmt.Sprintf("/api/market/listings/%.0f/buy", listingID)
		resp, body := app.do(t, "POST", path, buyer, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Wheat", body["listingCropName"])
		assert.Equal(t, "Ravi Kumar", body["farmerName"])
	})

	t.Run("farmer sees the received request", func(t *testing.T) {
		resp, body := app.do(t, "GET", "/api/market/requests/received", farmer, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		requests, _ := body["requests"].([]any)
		assert.Len(t, requests, 1)
	})

	t.Run("buyer sees the placed request", func(t *testing.T) {
		resp, body := app.do(t, "GET", "/api/market/requests/placed", buyer, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		requests, _ := body["requests"].([]any)
		assert.Len(t, requests, 1)
	})
}

func TestAdvisorAPI(t *testing.T) {
	app := newTestApp(t)
	farmer := app.register(t, "Ravi Kumar", "ravi@example.com", models.RoleFarmer)

	t.Run("requires authentication", func(t *testing.T) {
		resp, _ := app.do(t, "POST", "/api/advisor/chat", "", map[string]string{"message": "hi"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("proxies chat", func(t *testing.T) {
		resp, body := app.do(t, "POST", "/api/advisor/chat", farmer, map[string]string{
			"message": "When should I sow wheat?",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "stub answer", body["response"])
	})

	t.Run("weather requires coordinates", func(t *testing.T) {
		resp, _ := app.do(t, "GET", "/api/advisor/weather", farmer, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("proxies pest detection", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", "leaf.jpg")
		assert.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
		assert.NoError(t, mw.Close())

		req, err := http.NewRequest("POST", app.server.URL+"/api/advisor/detect-pest", &buf)
		assert.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+farmer)

		resp, err := http.DefaultClient.Do(req)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "stub answer", body["response"])
	})

	t.Run("pest detection requires an image", func(t *testing.T) {
		resp, _ := app.do(t, "POST", "/api/advisor/detect-pest", farmer, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
