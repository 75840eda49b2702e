package subscriptions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restockwatch/restockwatch/internal/catalog"
	"github.com/restockwatch/restockwatch/internal/pkg/httputil"
)

// User-facing messages. The wording is part of the API contract.
const (
	msgRequired        = "Email and productId are required"
	msgInvalidEmail    = "Invalid email format"
	msgInvalidTelegram = "Invalid Telegram username format (5-32 characters, letters, numbers, underscores only)"
	msgSubscribed      = "Successfully subscribed to product notifications"
	msgReactivated     = "Subscription reactivated successfully"
	msgUnsubscribed    = "Successfully unsubscribed"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: catalog.ErrProductNotFound, Status: http.StatusNotFound, Message: "Product not found"},
	{Error: ErrSubscriptionNotFound, Status: http.StatusNotFound, Message: "Subscription not found"},
	{Error: ErrAlreadySubscribed, Status: http.StatusBadRequest, Message: "Already subscribed to this product"},
}

// Handler handles HTTP requests for the subscriptions module.
type Handler struct {
	service *Service
}

// NewHandler creates a new subscriptions handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers subscription routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/subscriptions", h.Subscribe)
	r.Post("/subscriptions/unsubscribe", h.Unsubscribe)
	r.Get("/subscriptions/{email}", h.ListSubscriptions)
}

// SubscribeRequest represents the subscribe request body.
type SubscribeRequest struct {
	Email            string `json:"email"`
	ProductID        string `json:"productId"`
	TelegramUsername string `json:"telegramUsername"`
}

// UnsubscribeRequest represents the unsubscribe request body.
type UnsubscribeRequest struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

// Subscribe handles POST /subscriptions.
//
// Validation short-circuits in a fixed order: required fields, email format,
// telegram username format, then product existence.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Email == "" || req.ProductID == "" {
		httputil.Fail(w, http.StatusBadRequest, msgRequired)
		return
	}

	if !IsValidEmail(req.Email) {
		httputil.Fail(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	if req.TelegramUsername != "" && !IsValidTelegramUsername(req.TelegramUsername) {
		httputil.Fail(w, http.StatusBadRequest, msgInvalidTelegram)
		return
	}

	outcome, err := h.service.Subscribe(r.Context(), SubscribeInput{
		Email:            req.Email,
		ProductID:        req.ProductID,
		TelegramUsername: req.TelegramUsername,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	message := msgSubscribed
	if outcome == OutcomeReactivated {
		message = msgReactivated
	}

	httputil.OK(w, http.StatusOK, message)
}

// Unsubscribe handles POST /subscriptions/unsubscribe.
//
// Input is validated the same way as subscribe so malformed requests fail
// identically across both operations.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Email == "" || req.ProductID == "" {
		httputil.Fail(w, http.StatusBadRequest, msgRequired)
		return
	}

	if !IsValidEmail(req.Email) {
		httputil.Fail(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email, req.ProductID); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.OK(w, http.StatusOK, msgUnsubscribed)
}

// ListSubscriptions handles GET /subscriptions/{email}.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if !IsValidEmail(email) {
		httputil.Fail(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	subs, err := h.service.List(r.Context(), email)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.OKData(w, http.StatusOK, subs)
}
