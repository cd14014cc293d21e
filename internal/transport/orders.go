package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/middleware"
	"cakestore-be/internal/order"
)

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input order.CreateOrderInput
	if !decodeJSON(w, r, &input) {
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), u.ID, input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.Created(w, o)
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	orders, err := h.orders.MyOrders(r.Context(), u.ID)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, orders)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := int32(queryInt(r, "limit", 20))
	page := int32(queryInt(r, "page", 1))

	orders, err := h.orders.ListOrders(r.Context(), limit, page)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, idOK := uintParam(r, "id")
	if !idOK {
		httpx.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetOrder(r.Context(), u.ID, id, u.IsAdmin)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, o)
}

func (h *Handler) PayOrder(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, idOK := uintParam(r, "id")
	if !idOK {
		httpx.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	// Only the owner (or an admin) may settle an order.
	if _, err := h.orders.GetOrder(r.Context(), u.ID, id, u.IsAdmin); err != nil {
		httpx.Fail(w, err)
		return
	}

	if err := h.orders.MarkPaid(r.Context(), id); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, map[string]string{"message": "order marked as paid"})
}

func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.MarkDelivered(r.Context(), id); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, map[string]string{"message": "order marked as delivered"})
}
