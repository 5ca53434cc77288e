package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rentfront/gateway/internal/checkout"
	"github.com/rentfront/gateway/internal/domain"
	"github.com/rentfront/gateway/internal/session"
)

type CartHandler struct {
	sessions session.Store
}

func NewCartHandler(sessions session.Store) *CartHandler {
	return &CartHandler{sessions: sessions}
}

type AddItemRequestDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"max_quantity"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	DailyRate   float64 `json:"daily_rate"`
	ImageURL    string  `json:"image_url"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartViewDTO struct {
	SessionID string            `json:"session_id"`
	Stage     string            `json:"stage"`
	Items     []domain.CartItem `json:"items"`
	Summary   checkout.Summary  `json:"summary"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadOrCreate(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadOrCreate(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_start_date", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_end_date", "end_date must be YYYY-MM-DD")
		return
	}
	if req.DailyRate < 0 {
		respondError(w, http.StatusBadRequest, "invalid_daily_rate", "daily_rate must not be negative")
		return
	}

	flow := checkout.NewFlow(sess, nil)
	errAdd := flow.AddItem(domain.CartItem{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		MaxQuantity: req.MaxQuantity,
		StartDate:   start,
		EndDate:     end,
		DailyRate:   req.DailyRate,
		ImageURL:    req.ImageURL,
	})
	if errAdd != nil {
		handleFlowError(w, errAdd)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartView(sess))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadOrCreate(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	flow := checkout.NewFlow(sess, nil)
	if errUpdate := flow.UpdateQuantity(productID, req.Quantity); errUpdate != nil {
		handleFlowError(w, errUpdate)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadOrCreate(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	flow := checkout.NewFlow(sess, nil)
	if errRemove := flow.RemoveItem(productID); errRemove != nil {
		handleFlowError(w, errRemove)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(domain.NewCheckoutSession(sessionID)))
}

func (h *CartHandler) loadOrCreate(r *http.Request) (*domain.CheckoutSession, error) {
	sessionID := getSessionID(r.Context())
	sess, err := h.sessions.Get(r.Context(), sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return domain.NewCheckoutSession(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func cartView(sess *domain.CheckoutSession) CartViewDTO {
	return CartViewDTO{
		SessionID: sess.ID,
		Stage:     sess.Stage.String(),
		Items:     sess.Items,
		Summary:   checkout.Totals(sess.Items),
	}
}

func productIDParam(r *http.Request) (int64, error) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		return 0, errors.New("invalid product_id")
	}
	return productID, nil
}
