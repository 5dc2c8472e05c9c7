package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atsops/orderdesk/internal/core/domain"
	"github.com/atsops/orderdesk/internal/core/service"
)

type HTTPHandler struct {
	orders *service.OrderService
	audit  *service.AuditLog
	query  *service.OrderQuery
}

func NewHTTPHandler(orders *service.OrderService, audit *service.AuditLog, query *service.OrderQuery) *HTTPHandler {
	return &HTTPHandler{orders: orders, audit: audit, query: query}
}

// Routes mounts every endpoint behind the session middleware.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("POST /api/orders/{number}/delivery", h.UpdateDelivery)
	mux.HandleFunc("GET /api/orders/{number}/logs", h.OrderLogs)
	mux.HandleFunc("GET /api/logs", h.AllLogs)
	return WithSessionMiddleware(mux)
}

type CreateOrderRequest struct {
	EmployeeID    string  `json:"employee_id"`
	CustomerName  string  `json:"customer_name"`
	ContactNumber string  `json:"contact_number"`
	OrderDate     string  `json:"order_date"`
	DeliveryDate  string  `json:"delivery_date"`
	ProductID     string  `json:"product_id"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	ShopName      string  `json:"shop_name"`
	Location      string  `json:"location"`
	Landmark      string  `json:"landmark"`
	Remarks       string  `json:"remarks"`
}

type CreateOrderResponse struct {
	OrderNumber int64 `json:"order_number"`
}

type UpdateDeliveryRequest struct {
	AmountReceived float64 `json:"amount_received"`
	PaymentStatus  string  `json:"payment_status"`
	DeliveryStatus string  `json:"delivery_status"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OrdersResponse struct {
	Count  int            `json:"count"`
	Orders []domain.Order `json:"orders"`
}

type LogsResponse struct {
	Count   int               `json:"count"`
	Entries []domain.LogEntry `json:"entries"`
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "invalid request body"})
		return
	}

	number, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		EmployeeID:    req.EmployeeID,
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		OrderDate:     req.OrderDate,
		DeliveryDate:  req.DeliveryDate,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Price:         req.Price,
		ShopName:      req.ShopName,
		Location:      req.Location,
		Landmark:      req.Landmark,
		Remarks:       req.Remarks,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateOrderResponse{OrderNumber: number})
}

func (h *HTTPHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(r.PathValue("number"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "order number must be an integer"})
		return
	}

	var req UpdateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "invalid request body"})
		return
	}

	err = h.orders.UpdateDeliveryInfo(r.Context(), number, req.AmountReceived,
		domain.PaymentStatus(req.PaymentStatus), domain.DeliveryStatus(req.DeliveryStatus))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "delivery info updated"})
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []domain.Order
		err    error
	)

	params := r.URL.Query()
	switch {
	case params.Get("contact") != "":
		contact, parseErr := strconv.ParseInt(params.Get("contact"), 10, 64)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "contact must be an integer"})
			return
		}
		orders, err = h.query.FindByContact(r.Context(), contact)

	case params.Get("employee") != "":
		from, to := params.Get("from"), params.Get("to")
		if from == "" || to == "" {
			writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "employee filter requires from and to dates"})
			return
		}
		orders, err = h.query.FindByEmployeeAndDateRange(r.Context(), params.Get("employee"), from, to)

	default:
		orders, err = h.query.LoadAllOrders(r.Context())
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, OrdersResponse{Count: len(orders), Orders: orders})
}

func (h *HTTPHandler) OrderLogs(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(r.PathValue("number"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Message: "order number must be an integer"})
		return
	}

	entries, err := h.audit.ListByOrder(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LogsResponse{Count: len(entries), Entries: entries})
}

func (h *HTTPHandler) AllLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audit.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LogsResponse{Count: len(entries), Entries: entries})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrValidation) {
		status = http.StatusBadRequest
	} else if errors.Is(err, service.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, StatusResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
