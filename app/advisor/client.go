// Package advisor is the HTTP client for the external farm-advisor
// service: chatbot answers, weather lookups, crop guidance, market
// prices, subsidy schemes and video tutorials.
package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the advisor API. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the advisor service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// MarketPrice is one mandi price row for a crop.
type MarketPrice struct {
	Location   string `json:"location"`
	Crop       string `json:"crop"`
	MinPrice   string `json:"min_price"`
	ModalPrice string `json:"modal_price"`
	MaxPrice   string `json:"max_price"`
}

// Scheme is one government agricultural scheme.
type Scheme struct {
	SchemeName  string `json:"scheme_name"`
	Description string `json:"description"`
}

// VideoTutorial is one farming tutorial entry.
type VideoTutorial struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	YoutubeID   string `json:"youtube_id"`
}

type textResponse struct {
	Response string `json:"response"`
}

// Chat sends a free-form question to the chatbot. Latitude and
// longitude are optional and let the service answer weather questions
// for the caller's location.
func (c *Client) Chat(message, lat, lon string) (string, error) {
	payload := map[string]string{"message": message}
	if lat != "" && lon != "" {
		payload["lat"] = lat
		payload["lon"] = lon
	}

	var res textResponse
	if err := c.postJSON("/api/chat", payload, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// Weather fetches a textual weather report for the given coordinates.
func (c *Client) Weather(lat, lon string) (string, error) {
	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)

	body, err := c.get("/weather?" + q.Encode())
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CropRotation asks for crop rotation advice.
func (c *Client) CropRotation(message string) (string, error) {
	var res textResponse
	if err := c.postJSON("/crop_rotation", map[string]string{"message": message}, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// Fertilizer asks for fertilizer recommendations.
func (c *Client) Fertilizer(message string) (string, error) {
	var res textResponse
	if err := c.postJSON("/fertilizer", map[string]string{"message": message}, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// MarketPrices fetches current mandi prices for a crop.
func (c *Client) MarketPrices(crop string) ([]MarketPrice, error) {
	var res struct {
		Prices []MarketPrice `json:"prices"`
	}
	if err := c.postJSON("/market_prices", map[string]string{"crop": crop}, &res); err != nil {
		return nil, err
	}
	return res.Prices, nil
}

// DetectPest uploads a plant photo for pest and disease detection and
// returns the assistant's findings.
func (c *Client) DetectPest(filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to read image: %v", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload: %v", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/detect_pest", mw.FormDataContentType(), &buf)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read advisor response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, string(body))
	}

	var res textResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("failed to decode advisor response: %v", err)
	}
	return res.Response, nil
}

// Schemes fetches the current agricultural subsidy schemes.
func (c *Client) Schemes() ([]Scheme, error) {
	body, err := c.get("/subsidy")
	if err != nil {
		return nil, err
	}

	var res struct {
		AgriculturalSchemes []Scheme `json:"agricultural_schemes"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode schemes response: %v", err)
	}
	return res.AgriculturalSchemes, nil
}

// VideoTutorials fetches the curated farming tutorial list.
func (c *Client) VideoTutorials() ([]VideoTutorial, error) {
	body, err := c.get("/video_tutorials")
	if err != nil {
		return nil, err
	}

	var res struct {
		VideoTutorials []VideoTutorial `json:"video_tutorials"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode tutorials response: %v", err)
	}
	return res.VideoTutorials, nil
}

func (c *Client) postJSON(path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("advisor request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read advisor response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode advisor response: %v", err)
	}
	return nil
}

func (c *Client) get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("advisor request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read advisor response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
