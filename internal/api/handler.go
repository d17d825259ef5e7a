package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"janudairy/m/domain"
	"janudairy/m/internal/extract"
	"janudairy/m/internal/invoices"
	"janudairy/m/internal/ledger"
	"janudairy/m/internal/payments"
	"janudairy/m/internal/pricing"
	"janudairy/m/internal/reminder"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	prices     *ledger.Store
	sales      *ledger.SaleLog
	payments   *payments.Store
	invoices   *invoices.Store
	dispatcher *reminder.Dispatcher
	calc       pricing.Calculator
	defaultGST float64
	logger     *zap.Logger
}

// New constructs a Handler.
func New(prices *ledger.Store, sales *ledger.SaleLog, pay *payments.Store, inv *invoices.Store, dispatcher *reminder.Dispatcher, calc pricing.Calculator, defaultGST float64, logger *zap.Logger) *Handler {
	return &Handler{
		prices:     prices,
		sales:      sales,
		payments:   pay,
		invoices:   inv,
		dispatcher: dispatcher,
		calc:       calc,
		defaultGST: defaultGST,
		logger:     logger,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/purchases", func(r chi.Router) {
		r.Post("/", h.createPurchases)
		r.Post("/upload", h.uploadPurchases)
		r.Get("/{item}/history", h.priceHistory)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.listSales)
		r.Post("/", h.createSale)
		r.Post("/upload", h.uploadSale)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.listPayments)
		r.Post("/{id}/paid", h.markPaymentPaid)
	})

	r.Post("/reminders/dispatch", h.dispatchReminders)

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", h.createInvoice)
		r.Post("/{id}/paid", h.markInvoicePaid)
		r.Get("/overdue", h.overdueInvoices)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Purchase handlers

type purchaseItemRequest struct {
	Item            string   `json:"item"`
	Price           *float64 `json:"price"`
	GSTPercent      *float64 `json:"gst_percent"`
	DiscountPercent *float64 `json:"discount_percent"`
}

type purchaseUploadRequest struct {
	Text            string   `json:"text"`
	GSTPercent      *float64 `json:"gst_percent"`
	DiscountPercent *float64 `json:"discount_percent"`
}

type purchaseResponse struct {
	Alerts       []domain.PriceChange `json:"alerts"`
	Recorded     int                  `json:"recorded"`
	SkippedLines int                  `json:"skipped_lines"`
}

func (h *Handler) uploadPurchases(w http.ResponseWriter, r *http.Request) {
	var req purchaseUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	items, skipped := extract.Items(req.Text)
	gst := h.defaultGST
	if req.GSTPercent != nil {
		gst = *req.GSTPercent
	}
	discount := 0.0
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}

	alerts := make([]domain.PriceChange, 0)
	for _, item := range items {
		old, err := h.prices.RecordPurchase(r.Context(), item.Name, item.Price, gst, discount)
		if err != nil {
			h.logger.Error("record purchase failed", zap.String("item", item.Name), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "unable to record purchase")
			return
		}
		if old != nil {
			alerts = append(alerts, domain.PriceChange{Item: item.Name, OldPrice: *old, NewPrice: item.Price})
		}
	}
	if skipped > 0 {
		h.logger.Info("purchase upload skipped lines", zap.Int("skipped", skipped))
	}

	respondJSON(w, http.StatusCreated, purchaseResponse{Alerts: alerts, Recorded: len(items), SkippedLines: skipped})
}

func (h *Handler) createPurchases(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []purchaseItemRequest `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	// Validate the whole batch before touching the ledger so a bad item
	// cannot leave a persisted prefix behind a 400 response.
	type purchaseLine struct {
		item     string
		price    float64
		gst      float64
		discount float64
	}
	lines := make([]purchaseLine, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.Item) == "" || item.Price == nil {
			respondError(w, http.StatusBadRequest, "item and price are required for each item")
			return
		}
		gst := h.defaultGST
		if item.GSTPercent != nil {
			gst = *item.GSTPercent
		}
		discount := 0.0
		if item.DiscountPercent != nil {
			discount = *item.DiscountPercent
		}
		lines = append(lines, purchaseLine{
			item:     strings.TrimSpace(item.Item),
			price:    *item.Price,
			gst:      gst,
			discount: discount,
		})
	}

	alerts := make([]domain.PriceChange, 0)
	for _, line := range lines {
		old, err := h.prices.RecordPurchase(r.Context(), line.item, line.price, line.gst, line.discount)
		if err != nil {
			h.logger.Error("record purchase failed", zap.String("item", line.item), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "unable to record purchase")
			return
		}
		if old != nil {
			alerts = append(alerts, domain.PriceChange{Item: line.item, OldPrice: *old, NewPrice: line.price})
		}
	}

	respondJSON(w, http.StatusCreated, purchaseResponse{Alerts: alerts, Recorded: len(lines)})
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	item := strings.TrimSpace(chi.URLParam(r, "item"))
	if item == "" {
		respondError(w, http.StatusBadRequest, "item is required")
		return
	}
	records, err := h.prices.History(r.Context(), item)
	if err != nil {
		h.logger.Error("load price history failed", zap.String("item", item), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to load price history")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Sale handlers

type saleItemRequest struct {
	Item            string   `json:"item"`
	Price           *float64 `json:"price"`
	GSTPercent      float64  `json:"gst_percent"`
	DiscountPercent float64  `json:"discount_percent"`
}

type saleUploadRequest struct {
	Text            string   `json:"text"`
	Customer        string   `json:"customer"`
	Channel         string   `json:"channel"`
	GSTPercent      *float64 `json:"gst_percent"`
	DiscountPercent *float64 `json:"discount_percent"`
}

type profitRow struct {
	Item          string  `json:"item"`
	PurchaseNet   float64 `json:"purchase_net"`
	PurchaseGross float64 `json:"purchase_gross"`
	SaleNet       float64 `json:"sale_net"`
	SaleGross     float64 `json:"sale_gross"`
	Profit        float64 `json:"profit"`
}

type saleResponse struct {
	Rows         []profitRow `json:"rows"`
	TotalProfit  float64     `json:"total_profit"`
	PaymentID    int64       `json:"payment_id"`
	BatchRef     string      `json:"batch_ref"`
	SkippedLines int         `json:"skipped_lines"`
}

type saleLine struct {
	item string
	sale pricing.SaleInput
}

func (h *Handler) uploadSale(w http.ResponseWriter, r *http.Request) {
	var req saleUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	items, skipped := extract.Items(req.Text)
	gst := 0.0
	if req.GSTPercent != nil {
		gst = *req.GSTPercent
	}
	discount := 0.0
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}

	lines := make([]saleLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, saleLine{
			item: item.Name,
			sale: pricing.SaleInput{Price: item.Price, GSTPercent: gst, DiscountPercent: discount},
		})
	}

	h.processSale(w, r, req.Customer, req.Channel, lines, skipped)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer string            `json:"customer"`
		Channel  string            `json:"channel"`
		Items    []saleItemRequest `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	lines := make([]saleLine, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.Item) == "" || item.Price == nil {
			respondError(w, http.StatusBadRequest, "item and price are required for each item")
			return
		}
		lines = append(lines, saleLine{
			item: strings.TrimSpace(item.Item),
			sale: pricing.SaleInput{Price: *item.Price, GSTPercent: item.GSTPercent, DiscountPercent: item.DiscountPercent},
		})
	}

	h.processSale(w, r, req.Customer, req.Channel, lines, 0)
}

func (h *Handler) processSale(w http.ResponseWriter, r *http.Request, customer, channel string, lines []saleLine, skipped int) {
	ctx := r.Context()
	batchRef := uuid.NewString()

	rows := make([]profitRow, 0, len(lines))
	var totalProfit, totalAmount float64

	for _, line := range lines {
		current, err := h.prices.CurrentPrice(ctx, line.item)
		if err != nil {
			h.logger.Error("price lookup failed", zap.String("item", line.item), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "unable to look up purchase price")
			return
		}
		b := h.calc.Line(current, line.sale)
		if _, err := h.sales.Record(ctx, line.item, line.sale.Price, b.Profit, batchRef); err != nil {
			h.logger.Error("record sale failed", zap.String("item", line.item), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "unable to record sale")
			return
		}
		rows = append(rows, profitRow{
			Item:          line.item,
			PurchaseNet:   pricing.Round2(b.PurchaseNet),
			PurchaseGross: pricing.Round2(b.PurchaseGross),
			SaleNet:       pricing.Round2(b.SaleNet),
			SaleGross:     pricing.Round2(b.SaleGross),
			Profit:        pricing.Round2(b.Profit),
		})
		totalProfit += b.Profit
		totalAmount += line.sale.Price
	}

	paymentID, err := h.payments.CreatePending(ctx, customer, totalAmount, channel, batchRef)
	if err != nil {
		h.logger.Error("create payment failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to create payment")
		return
	}

	respondJSON(w, http.StatusCreated, saleResponse{
		Rows:         rows,
		TotalProfit:  pricing.Round2(totalProfit),
		PaymentID:    paymentID,
		BatchRef:     batchRef,
		SkippedLines: skipped,
	})
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	batchRef := strings.TrimSpace(r.URL.Query().Get("batch_ref"))
	if batchRef == "" {
		respondError(w, http.StatusBadRequest, "batch_ref is required")
		return
	}
	events, err := h.sales.ByBatch(r.Context(), batchRef)
	if err != nil {
		h.logger.Error("load sale batch failed", zap.String("batch_ref", batchRef), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to load sales")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// Payment handlers

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = payments.StatusPending
	}
	if status != payments.StatusPending && status != payments.StatusPaid {
		respondError(w, http.StatusBadRequest, "status must be pending or paid")
		return
	}
	list, err := h.payments.ListByStatus(r.Context(), status)
	if err != nil {
		h.logger.Error("list payments failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list payments")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) markPaymentPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	if err := h.payments.MarkPaid(r.Context(), id); err != nil {
		if errors.Is(err, payments.ErrNotFound) {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.Error("mark payment paid failed", zap.Int64("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to mark payment paid")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// Reminder handler

func (h *Handler) dispatchReminders(w http.ResponseWriter, r *http.Request) {
	results, err := h.dispatcher.Dispatch(r.Context())
	if err != nil {
		h.logger.Error("reminder dispatch failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to dispatch reminders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Invoice handlers

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IssueDate string `json:"issue_date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	issue := time.Now()
	if req.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "issue_date must be in YYYY-MM-DD format")
			return
		}
		issue = parsed
	}
	inv, err := h.invoices.Create(r.Context(), issue)
	if err != nil {
		h.logger.Error("create invoice failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to create invoice")
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

func (h *Handler) markInvoicePaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	if err := h.invoices.MarkPaid(r.Context(), id); err != nil {
		if errors.Is(err, invoices.ErrNotFound) {
			respondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("mark invoice paid failed", zap.Int64("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to mark invoice paid")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (h *Handler) overdueInvoices(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "as_of must be in YYYY-MM-DD format")
			return
		}
		asOf = parsed
	}
	list, err := h.invoices.ListOverdue(r.Context(), asOf)
	if err != nil {
		h.logger.Error("list overdue invoices failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "unable to list overdue invoices")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
