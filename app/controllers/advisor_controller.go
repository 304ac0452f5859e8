package controllers

import (
	"encoding/json"
	"net/http"

	"agricare/app/advisor"
)

// AdvisorController proxies requests to the external farm-advisor
// service so the browser talks to a single origin.
type AdvisorController struct {
	client *advisor.Client
}

// NewAdvisorController creates a new AdvisorController
func NewAdvisorController(client *advisor.Client) *AdvisorController {
	return &AdvisorController{client: client}
}

type advisorMessage struct {
	Message string `json:"message"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

// Chat handles chatbot questions
func (ac *AdvisorController) Chat(w http.ResponseWriter, r *http.Request) {
	var in advisorMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	answer, err := ac.client.Chat(in.Message, in.Lat, in.Lon)
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"response": answer})
}

// Weather handles weather lookups by coordinates
func (ac *AdvisorController) Weather(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		sendError(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	report, err := ac.client.Weather(lat, lon)
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"response": report})
}

// CropRotation handles crop rotation advice requests
func (ac *AdvisorController) CropRotation(w http.ResponseWriter, r *http.Request) {
	ac.forwardText(w, r, ac.client.CropRotation)
}

// Fertilizer handles fertilizer recommendation requests
func (ac *AdvisorController) Fertilizer(w http.ResponseWriter, r *http.Request) {
	ac.forwardText(w, r, ac.client.Fertilizer)
}

// MarketPrices handles mandi price lookups for a crop
func (ac *AdvisorController) MarketPrices(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Crop string `json:"crop"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Crop == "" {
		sendError(w, "crop is required", http.StatusBadRequest)
		return
	}

	prices, err := ac.client.MarketPrices(in.Crop)
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"prices": prices})
}

// DetectPest handles plant photo uploads for pest detection
func (ac *AdvisorController) DetectPest(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		sendError(w, "image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	findings, err := ac.client.DetectPest(header.Filename, file)
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"response": findings})
}

// Schemes handles subsidy scheme lookups
func (ac *AdvisorController) Schemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := ac.client.Schemes()
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"agricultural_schemes": schemes})
}

// VideoTutorials handles tutorial list lookups
func (ac *AdvisorController) VideoTutorials(w http.ResponseWriter, r *http.Request) {
	videos, err := ac.client.VideoTutorials()
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"video_tutorials": videos})
}

func (ac *AdvisorController) forwardText(w http.ResponseWriter, r *http.Request, call func(string) (string, error)) {
	var in advisorMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	answer, err := call(in.Message)
	if err != nil {
		sendError(w, "Advisor unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"response": answer})
}
