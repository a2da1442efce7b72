package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/get_discount"
	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/list_discounts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/create_discount"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/set_discount_active"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/update_discount"
)

// dateFormat is the wire format for validity bounds. Day granularity only;
// timestamps are rejected.
const dateFormat = "2006-01-02"

// DiscountHandler handles HTTP requests for discount commands and queries.
type DiscountHandler struct {
	createUC    *create_discount.Interactor
	updateUC    *update_discount.Interactor
	setActiveUC *set_discount_active.Interactor
	getQuery    *get_discount.Query
	listQuery   *list_discounts.Query
	logger      *zap.Logger
}

// NewDiscountHandler creates a new discount handler.
func NewDiscountHandler(
	createUC *create_discount.Interactor,
	updateUC *update_discount.Interactor,
	setActiveUC *set_discount_active.Interactor,
	getQuery *get_discount.Query,
	listQuery *list_discounts.Query,
	logger *zap.Logger,
) *DiscountHandler {
	return &DiscountHandler{
		createUC:    createUC,
		updateUC:    updateUC,
		setActiveUC: setActiveUC,
		getQuery:    getQuery,
		listQuery:   listQuery,
		logger:      logger,
	}
}

type createDiscountRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Value       string   `json:"value"` // raw form input, normalized server-side
	ValidFrom   string   `json:"valid_from"`
	ValidTo     string   `json:"valid_to"`
	ProductIDs  []string `json:"product_ids"`
}

type createDiscountResponse struct {
	DiscountID   string `json:"discount_id"`
	ValueClamped bool   `json:"value_clamped,omitempty"`
}

type updateDiscountRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Kind        *string  `json:"kind"`
	Value       *string  `json:"value"`
	ValidFrom   *string  `json:"valid_from"`
	ValidTo     *string  `json:"valid_to"`
	ProductIDs  []string `json:"product_ids"`
	Version     int64    `json:"version"`
}

type updateDiscountResponse struct {
	ValueClamped bool  `json:"value_clamped,omitempty"`
	Version      int64 `json:"version"`
}

type setActiveRequest struct {
	Active  bool  `json:"active"`
	Version int64 `json:"version"`
}

type setActiveResponse struct {
	Version int64 `json:"version"`
}

type discountResponse struct {
	DiscountID  string   `json:"discount_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Value       float64  `json:"value"`
	ValidFrom   string   `json:"valid_from"`
	ValidTo     string   `json:"valid_to"`
	ProductIDs  []string `json:"product_ids"`
	Active      bool     `json:"active"`
	Status      string   `json:"status"`
	Version     int64    `json:"version"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type listDiscountsResponse struct {
	Discounts  []discountResponse `json:"discounts"`
	TotalCount int64              `json:"total_count"`
}

type locksResponse struct {
	ValidFrom bool `json:"valid_from_locked"`
	ValidTo   bool `json:"valid_to_locked"`
	Editable  bool `json:"editable"`
}

// Create handles POST /admin/discounts.
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	validFrom, err := parseDate(body.ValidFrom)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "valid_from: expected YYYY-MM-DD"})
		return
	}
	validTo, err := parseDate(body.ValidTo)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "valid_to: expected YYYY-MM-DD"})
		return
	}

	resp, err := h.createUC.Execute(r.Context(), &create_discount.Request{
		Name:        body.Name,
		Description: body.Description,
		Kind:        body.Kind,
		RawValue:    body.Value,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		ProductIDs:  body.ProductIDs,
	})
	if err != nil {
		h.logger.Warn("create discount failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createDiscountResponse{
		DiscountID:   resp.DiscountID,
		ValueClamped: resp.ValueClamped,
	})
}

// Update handles PUT /admin/discounts/{id}.
func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	discountID := chi.URLParam(r, "id")

	var body updateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	req := &update_discount.Request{
		DiscountID:  discountID,
		Name:        body.Name,
		Description: body.Description,
		Kind:        body.Kind,
		RawValue:    body.Value,
		ProductIDs:  body.ProductIDs,
		Version:     body.Version,
	}

	if body.ValidFrom != nil {
		validFrom, err := parseDate(*body.ValidFrom)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "valid_from: expected YYYY-MM-DD"})
			return
		}
		req.ValidFrom = &validFrom
	}
	if body.ValidTo != nil {
		validTo, err := parseDate(*body.ValidTo)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "valid_to: expected YYYY-MM-DD"})
			return
		}
		req.ValidTo = &validTo
	}

	resp, err := h.updateUC.Execute(r.Context(), req)
	if err != nil {
		h.logger.Warn("update discount failed", zap.String("discount_id", discountID), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateDiscountResponse{
		ValueClamped: resp.ValueClamped,
		Version:      resp.NewVersion,
	})
}

// SetActive handles PATCH /admin/discounts/{id}/active.
func (h *DiscountHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	discountID := chi.URLParam(r, "id")

	var body setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	newVersion, err := h.setActiveUC.Execute(r.Context(), &set_discount_active.Request{
		DiscountID: discountID,
		Active:     body.Active,
		Version:    body.Version,
	})
	if err != nil {
		h.logger.Warn("set discount active failed", zap.String("discount_id", discountID), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, setActiveResponse{Version: newVersion})
}

// Get handles GET /admin/discounts/{id}.
func (h *DiscountHandler) Get(w http.ResponseWriter, r *http.Request) {
	discountID := chi.URLParam(r, "id")

	resp, err := h.getQuery.Execute(r.Context(), &get_discount.Request{DiscountID: discountID})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDiscountResponse(resp.Discount))
}

// GetLocks handles GET /admin/discounts/{id}/locks. The edit form calls
// this to disable inputs before the user starts typing.
func (h *DiscountHandler) GetLocks(w http.ResponseWriter, r *http.Request) {
	discountID := chi.URLParam(r, "id")

	resp, err := h.getQuery.Execute(r.Context(), &get_discount.Request{DiscountID: discountID})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, locksResponse{
		ValidFrom: resp.Locks.ValidFrom,
		ValidTo:   resp.Locks.ValidTo,
		Editable:  resp.Locks.Editable,
	})
}

// List handles GET /admin/discounts.
func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_discounts.Request{
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}

	if activeStr := q.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "active: expected true or false"})
			return
		}
		req.Active = &active
	}

	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.PageSize = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			req.Offset = n
		}
	}

	result, err := h.listQuery.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("list discounts failed", zap.Error(err))
		writeError(w, err)
		return
	}

	discounts := make([]discountResponse, 0, len(result.Discounts))
	for _, dto := range result.Discounts {
		discounts = append(discounts, toDiscountResponse(dto))
	}

	writeJSON(w, http.StatusOK, listDiscountsResponse{
		Discounts:  discounts,
		TotalCount: result.TotalCount,
	})
}

func toDiscountResponse(dto *contracts.DiscountDTO) discountResponse {
	return discountResponse{
		DiscountID:  dto.DiscountID,
		Name:        dto.Name,
		Description: dto.Description,
		Kind:        dto.Kind,
		Value:       dto.Value,
		ValidFrom:   dto.ValidFrom.Format(dateFormat),
		ValidTo:     dto.ValidTo.Format(dateFormat),
		ProductIDs:  dto.ProductIDs,
		Active:      dto.Active,
		Status:      dto.Status,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dto.UpdatedAt.Format(time.RFC3339),
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateFormat, value)
}
