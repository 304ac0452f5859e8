package advisor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "When should I sow wheat?", in["message"])
		assert.Equal(t, "19.99", in["lat"])

		json.NewEncoder(w).Encode(map[string]string{"response": "Early November"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	answer, err := client.Chat("When should I sow wheat?", "19.99", "73.78")
	assert.NoError(t, err)
	assert.Equal(t, "Early November", answer)
}

func TestChatOmitsMissingCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_, hasLat := in["lat"]
		assert.False(t, hasLat)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Chat("hello", "", "")
	assert.NoError(t, err)
}

func TestWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "19.99", r.URL.Query().Get("lat"))
		assert.Equal(t, "73.78", r.URL.Query().Get("lon"))
		w.Write([]byte("Clear skies, 31 degrees"))
	}))
	defer server.Close()

	report, err := NewClient(server.URL).Weather("19.99", "73.78")
	assert.NoError(t, err)
	assert.Equal(t, "Clear skies, 31 degrees", report)
}

func TestMarketPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/market_prices", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"prices": []MarketPrice{
				{Location: "Nashik", Crop: "Onion", MinPrice: "1200", ModalPrice: "1500", MaxPrice: "1900"},
			},
		})
	}))
	defer server.Close()

	prices, err := NewClient(server.URL).MarketPrices("Onion")
	assert.NoError(t, err)
	assert.Len(t, prices, 1)
	assert.Equal(t, "Nashik", prices[0].Location)
	assert.Equal(t, "1500", prices[0].ModalPrice)
}

func TestDetectPest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect_pest", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "leaf.jpg", header.Filename)

		data, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		json.NewEncoder(w).Encode(map[string]string{"response": "Leaf rust: 92% confidence"})
	}))
	defer server.Close()

	findings, err := NewClient(server.URL).DetectPest("leaf.jpg", strings.NewReader("fake image bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "Leaf rust: 92% confidence", findings)
}

func TestSchemes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subsidy", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"agricultural_schemes": []Scheme{
				{SchemeName: "PM-KISAN", Description: "Income support for farmers"},
			},
		})
	}))
	defer server.Close()

	schemes, err := NewClient(server.URL).Schemes()
	assert.NoError(t, err)
	assert.Len(t, schemes, 1)
	assert.Equal(t, "PM-KISAN", schemes[0].SchemeName)
}

func TestVideoTutorials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/video_tutorials", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"video_tutorials": []VideoTutorial{
				{Title: "Drip irrigation basics", YoutubeID: "abc123"},
			},
		})
	}))
	defer server.Close()

	videos, err := NewClient(server.URL).VideoTutorials()
	assert.NoError(t, err)
	assert.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].YoutubeID)
}

func TestNon200IsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Chat("hello", "", "")
	assert.Error(t, err)

	_, err = client.Weather("1", "2")
	assert.Error(t, err)

	_, err = client.DetectPest("leaf.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
