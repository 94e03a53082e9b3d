package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/erazemk/inventory/internal/inventory"
	"github.com/erazemk/inventory/internal/mail"
	"github.com/erazemk/inventory/internal/model"
	"github.com/erazemk/inventory/internal/store"
)

// ItemsHandler handles the item endpoints by driving the list and detail controllers.
type ItemsHandler struct {
	DB     *sql.DB
	Loader inventory.Loader
	Images inventory.ImageLoader
}

type listResponse struct {
	Items []model.Item `json:"items"`
	Empty bool         `json:"empty"`
}

type itemResponse struct {
	Item          model.Item `json:"item"`
	HasImage      bool       `json:"has_image"`
	QuantityError bool       `json:"quantity_error,omitempty"`
	InputCleared  bool       `json:"input_cleared,omitempty"`
}

type adjustRequest struct {
	Mode   string `json:"mode"`
	Amount string `json:"amount"`
}

func (h *ItemsHandler) deps() inventory.Deps {
	return inventory.Deps{
		Repo:   store.Items{DB: h.DB},
		Loader: h.Loader,
		Images: h.Images,
	}
}

// lookup loads the item named by the {id} path value, writing the error
// response itself when it returns nil.
func (h *ItemsHandler) lookup(w http.ResponseWriter, r *http.Request) *model.Item {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return nil
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		actionError(w, "get item", err)
		return nil
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return nil
	}
	return item
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	view := &listRecorder{}
	list := inventory.NewList(h.deps(), view)
	if err := list.LoadAll(r.Context()); err != nil {
		actionError(w, "list items", err)
		return
	}
	jsonResponse(w, http.StatusOK, listResponse{Items: view.items, Empty: view.empty})
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.ItemForm
	if err := decodeJSON(w, r, &form); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view := &listRecorder{}
	list := inventory.NewList(h.deps(), view)
	item, err := list.OnCreateRequested(r.Context(), form)
	if err != nil {
		actionError(w, "create item", err)
		return
	}

	inventoryOperationsTotal.WithLabelValues("create").Inc()
	jsonResponse(w, http.StatusCreated, itemResponse{Item: item, HasImage: item.HasImage()})
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := h.lookup(w, r)
	if item == nil {
		return
	}

	view := &detailRecorder{}
	detail := inventory.NewDetail(h.deps(), *item, view)
	detail.Show()

	jsonResponse(w, http.StatusOK, itemResponse{Item: view.item, HasImage: view.image != nil})
}

// Sale handles POST /api/items/{id}/sale: one unit sold from the list.
func (h *ItemsHandler) Sale(w http.ResponseWriter, r *http.Request) {
	item := h.lookup(w, r)
	if item == nil {
		return
	}

	view := &listRecorder{}
	list := inventory.NewList(h.deps(), view)
	if err := list.OnSaleTapped(r.Context(), *item); err != nil {
		actionError(w, "sell item", err)
		return
	}
	if item.Quantity > 0 {
		inventoryOperationsTotal.WithLabelValues("sale").Inc()
	}
	if list.State() != inventory.Loaded {
		// Nothing on hand: no sale, but the client still gets a fresh list.
		if err := list.LoadAll(r.Context()); err != nil {
			actionError(w, "list items", err)
			return
		}
	}

	jsonResponse(w, http.StatusOK, listResponse{Items: view.items, Empty: view.empty})
}

// Adjust handles POST /api/items/{id}/quantity.
func (h *ItemsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := model.ParseAdjustMode(req.Mode)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "mode must be 'sold' or 'received'")
		return
	}

	item := h.lookup(w, r)
	if item == nil {
		return
	}

	view := &detailRecorder{item: *item}
	detail := inventory.NewDetail(h.deps(), *item, view)
	err = detail.AdjustQuantity(r.Context(), mode, req.Amount)
	if errors.Is(err, model.ErrInsufficientStock) {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error":          model.UserMessage(err),
			"item":           detail.Item(),
			"quantity_error": true,
		})
		return
	}
	if err != nil {
		actionError(w, "adjust quantity", err)
		return
	}

	if detail.Item().Quantity != item.Quantity {
		inventoryOperationsTotal.WithLabelValues(string(mode)).Inc()
	}
	jsonResponse(w, http.StatusOK, itemResponse{
		Item:          detail.Item(),
		HasImage:      detail.Item().HasImage(),
		QuantityError: view.quantityError,
		InputCleared:  view.inputCleared,
	})
}

// Delete handles DELETE /api/items/{id}. The client confirms with ?confirm=yes;
// without it the prompt is returned and nothing changes.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item := h.lookup(w, r)
	if item == nil {
		return
	}

	view := &detailRecorder{confirmed: r.URL.Query().Get("confirm") == "yes"}
	detail := inventory.NewDetail(h.deps(), *item, view)
	deleted, err := detail.RequestDelete(r.Context())
	if err != nil {
		actionError(w, "delete item", err)
		return
	}
	if !deleted {
		jsonResponse(w, http.StatusConflict, map[string]string{
			"error":   "confirmation required",
			"confirm": view.prompt,
		})
		return
	}

	inventoryOperationsTotal.WithLabelValues("delete").Inc()
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Reorder handles GET /api/items/{id}/reorder and returns the supplier e-mail draft.
func (h *ItemsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	item := h.lookup(w, r)
	if item == nil {
		return
	}

	composer := &mail.Composer{}
	deps := h.deps()
	deps.Mailer = composer
	detail := inventory.NewDetail(deps, *item, &detailRecorder{})
	if err := detail.RequestReorder(); err != nil {
		if errors.Is(err, mail.ErrNoRecipient) {
			jsonError(w, http.StatusBadRequest, "item has no supplier e-mail")
			return
		}
		actionError(w, "compose reorder", err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"to":      item.SupplierEmail,
		"subject": item.ReorderSubject(),
		"mailto":  composer.Last,
	})
}

// Image handles GET /api/items/{id}/image.
func (h *ItemsHandler) Image(w http.ResponseWriter, r *http.Request) {
	item := h.lookup(w, r)
	if item == nil {
		return
	}

	view := &detailRecorder{}
	inventory.NewDetail(h.deps(), *item, view).Show()
	if view.image == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.Write(view.image)
}
