package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/internal/service/wishcard"
)

// wishCardService defines the minimal interface needed by WishCardHandler.
type wishCardService interface {
	Create(ctx context.Context, input wishcard.CreateWishCardInput) (*domain.WishCard, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	Viewable(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error)
	All(ctx context.Context) ([]*domain.WishCard, error)
	ByStatus(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error)
	ByAgency(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error)
	ByItemName(ctx context.Context, itemName string) ([]*domain.WishCard, error)
	Search(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error)
	Update(ctx context.Context, id uuid.UUID, input wishcard.UpdateWishCardInput) (*domain.WishCard, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Lock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	Unlock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	LockedByMe(ctx context.Context) (*domain.WishCard, error)
}

// WishCardHandler serves wishcard REST endpoints.
type WishCardHandler struct {
	svc wishCardService
	log *slog.Logger
	now func() time.Time
}

// NewWishCardHandler creates a WishCardHandler.
func NewWishCardHandler(svc wishCardService, logger *slog.Logger) *WishCardHandler {
	return &WishCardHandler{
		svc: svc,
		log: logger.With("handler", "wishcard"),
		now: time.Now,
	}
}

type createWishCardRequest struct {
	ChildFirstName string `json:"childFirstName"`
	ChildLastName  string `json:"childLastName"`
	ChildInterest  string `json:"childInterest"`
	ChildStory     string `json:"childStory"`
	WishItemName   string `json:"wishItemName"`
	WishItemPrice  int64  `json:"wishItemPrice"`
}

type updateWishCardRequest struct {
	ChildFirstName *string `json:"childFirstName"`
	ChildLastName  *string `json:"childLastName"`
	ChildInterest  *string `json:"childInterest"`
	ChildStory     *string `json:"childStory"`
	WishItemName   *string `json:"wishItemName"`
	WishItemPrice  *int64  `json:"wishItemPrice"`
	Status         *string `json:"status"`
}

type wishCardResponse struct {
	ID             string     `json:"id"`
	AgencyID       string     `json:"agencyId"`
	ChildFirstName string     `json:"childFirstName"`
	ChildLastName  string     `json:"childLastName"`
	ChildInterest  string     `json:"childInterest"`
	ChildStory     string     `json:"childStory"`
	WishItemName   string     `json:"wishItemName"`
	WishItemPrice  int64      `json:"wishItemPrice"`
	Status         string     `json:"status"`
	IsLocked       bool       `json:"isLocked"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (h *WishCardHandler) toResponse(card *domain.WishCard) wishCardResponse {
	resp := wishCardResponse{
		ID:             card.ID.String(),
		AgencyID:       card.AgencyID.String(),
		ChildFirstName: card.ChildFirstName,
		ChildLastName:  card.ChildLastName,
		ChildInterest:  card.ChildInterest,
		ChildStory:     card.ChildStory,
		WishItemName:   card.WishItemName,
		WishItemPrice:  card.WishItemPrice,
		Status:         card.Status.String(),
		IsLocked:       card.IsLockedAt(h.now()),
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
	if resp.IsLocked {
		resp.LockedUntil = card.LockedUntil
	}
	return resp
}

func (h *WishCardHandler) toResponses(cards []*domain.WishCard) []wishCardResponse {
	out := make([]wishCardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, h.toResponse(c))
	}
	return out
}

// Create handles POST /api/wishcards.
func (h *WishCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWishCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.svc.Create(r.Context(), wishcard.CreateWishCardInput{
		ChildFirstName: req.ChildFirstName,
		ChildLastName:  req.ChildLastName,
		ChildInterest:  req.ChildInterest,
		ChildStory:     req.ChildStory,
		WishItemName:   req.WishItemName,
		WishItemPrice:  req.WishItemPrice,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(card))
}

// List handles GET /api/wishcards.
// Query params: includeDonated=true widens the listing; itemName=<text>
// switches to the item-name filter instead.
func (h *WishCardHandler) List(w http.ResponseWriter, r *http.Request) {
	if itemName := r.URL.Query().Get("itemName"); itemName != "" {
		cards, err := h.svc.ByItemName(r.Context(), itemName)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, h.toResponses(cards))
		return
	}

	includeDonated, _ := strconv.ParseBool(r.URL.Query().Get("includeDonated"))

	cards, err := h.svc.Viewable(r.Context(), includeDonated)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponses(cards))
}

// ListAll handles GET /api/admin/wishcards.
// Query params: status=<draft|published|donated|ordered> narrows the
// listing to one status.
func (h *WishCardHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	var (
		cards []*domain.WishCard
		err   error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		cards, err = h.svc.ByStatus(r.Context(), domain.WishCardStatus(status))
	} else {
		cards, err = h.svc.All(r.Context())
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponses(cards))
}

// Search handles GET /api/wishcards/search.
// Query params: q, includeDonated, excludeIds (comma-separated UUIDs),
// reverseSort.
func (h *WishCardHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.WishCardSearchOptions{
		Query: q.Get("q"),
	}
	opts.IncludeDonated, _ = strconv.ParseBool(q.Get("includeDonated"))
	opts.ReverseSort, _ = strconv.ParseBool(q.Get("reverseSort"))

	if raw := q.Get("excludeIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				handleError(w, r, h.log, domain.NewValidationError("excludeIds", "must be comma-separated UUIDs"))
				return
			}
			opts.ExcludeIDs = append(opts.ExcludeIDs, id)
		}
	}

	cards, err := h.svc.Search(r.Context(), opts)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponses(cards))
}

// Get handles GET /api/wishcards/{id}.
func (h *WishCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	card, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(card))
}

// ByAgency handles GET /api/agencies/{id}/wishcards.
func (h *WishCardHandler) ByAgency(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	cards, err := h.svc.ByAgency(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponses(cards))
}

// Update handles PATCH /api/wishcards/{id}.
func (h *WishCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateWishCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := wishcard.UpdateWishCardInput{
		ChildFirstName: req.ChildFirstName,
		ChildLastName:  req.ChildLastName,
		ChildInterest:  req.ChildInterest,
		ChildStory:     req.ChildStory,
		WishItemName:   req.WishItemName,
		WishItemPrice:  req.WishItemPrice,
	}
	if req.Status != nil {
		status := domain.WishCardStatus(*req.Status)
		input.Status = &status
	}

	card, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(card))
}

// Delete handles DELETE /api/wishcards/{id}.
func (h *WishCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Lock handles POST /api/wishcards/{id}/lock.
func (h *WishCardHandler) Lock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	card, err := h.svc.Lock(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(card))
}

// Unlock handles DELETE /api/wishcards/{id}/lock.
func (h *WishCardHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	card, err := h.svc.Unlock(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(card))
}

// LockedByMe handles GET /api/wishcards/locked.
func (h *WishCardHandler) LockedByMe(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.LockedByMe(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(card))
}
