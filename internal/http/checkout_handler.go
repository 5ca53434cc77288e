package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rentfront/gateway/internal/checkout"
	"github.com/rentfront/gateway/internal/domain"
	"github.com/rentfront/gateway/internal/events"
	"github.com/rentfront/gateway/internal/session"
)

type CheckoutHandler struct {
	sessions  session.Store
	api       APIFactory
	publisher events.Publisher
}

func NewCheckoutHandler(sessions session.Store, api APIFactory, publisher events.Publisher) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:  sessions,
		api:       api,
		publisher: publisher,
	}
}

type DeliveryRequestDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Method  string `json:"method"`
}

type PaymentRequestDTO struct {
	Method     string `json:"method"`
	CardHolder string `json:"card_holder"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
}

type CheckoutViewDTO struct {
	SessionID string              `json:"session_id"`
	Stage     string              `json:"stage"`
	Items     []domain.CartItem   `json:"items"`
	Delivery  domain.DeliveryInfo `json:"delivery"`
	Summary   checkout.Summary    `json:"summary"`
}

// Get shows the current stage with the same recomputed summary every
// stage view uses.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

// Continue advances the flow one stage forward.
func (h *CheckoutHandler) Continue(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	flow := checkout.NewFlow(sess, nil)
	if errNext := flow.Continue(); errNext != nil {
		handleFlowError(w, errNext)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

// Back steps the flow one stage backward, keeping everything entered.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	flow := checkout.NewFlow(sess, nil)
	if errBack := flow.Back(); errBack != nil {
		handleFlowError(w, errBack)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

func (h *CheckoutHandler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	var req DeliveryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	flow := checkout.NewFlow(sess, nil)
	errSet := flow.SetDelivery(domain.DeliveryInfo{
		Address: req.Address,
		City:    req.City,
		Zip:     req.Zip,
		Method:  req.Method,
	})
	if errSet != nil {
		handleFlowError(w, errSet)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	flow := checkout.NewFlow(sess, nil)
	errSet := flow.SetPayment(domain.PaymentInfo{
		Method:     req.Method,
		CardHolder: req.CardHolder,
		CardNumber: req.CardNumber,
		CardExpiry: req.CardExpiry,
		CardCVV:    req.CardCVV,
	})
	if errSet != nil {
		handleFlowError(w, errSet)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

// Pay runs the Payment -> Complete transition. Order placement goes to
// the rental platform; the event publish afterwards is best effort and
// never fails the checkout.
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(r)
	if err != nil {
		handleFlowError(w, err)
		return
	}

	api := h.api(sess.ID)
	flow := checkout.NewFlow(sess, api.PlaceOrder)
	order := flow.BuildOrder()

	if errPay := flow.PayNow(r.Context()); errPay != nil {
		handleFlowError(w, errPay)
		return
	}

	if err := h.publisher.OrderPlaced(r.Context(), order); err != nil {
		log.Printf("order event publish error: %v", err)
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(sess))
}

func (h *CheckoutHandler) load(r *http.Request) (*domain.CheckoutSession, error) {
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

func checkoutView(sess *domain.CheckoutSession) CheckoutViewDTO {
	return CheckoutViewDTO{
		SessionID: sess.ID,
		Stage:     sess.Stage.String(),
		Items:     sess.Items,
		Delivery:  sess.Delivery,
		Summary:   checkout.Totals(sess.Items),
	}
}
