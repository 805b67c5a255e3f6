package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listVault(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	records, err := h.services.VaultService.List(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.VaultRecord{}
	}

	_, _ = utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createVaultItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var record models.VaultRecord
	if err := utils.DecodeJSON(r, &record); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	created, err := h.services.VaultService.Create(r.Context(), userID, record)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("item_id", created.ID).Msg("vault item created")
	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateVaultItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	id, err := vaultItemID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var update models.VaultRecordUpdate
	if err = utils.DecodeJSON(r, &update); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}
	update.ID = id
	update.UserID = userID

	updated, err := h.services.VaultService.Update(r.Context(), update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteVaultItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	id, err := vaultItemID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err = h.services.VaultService.Delete(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importVault(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var body struct {
		Items json.RawMessage `json:"items"`
	}
	if err := utils.DecodeJSON(r, &body); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	items := bytes.TrimSpace(body.Items)
	if len(items) == 0 || items[0] != '[' {
		utils.WriteError(w, app.MsgInvalidImportFormat, http.StatusBadRequest)
		return
	}

	var records []models.VaultRecord
	if err := json.Unmarshal(items, &records); err != nil {
		utils.WriteError(w, app.MsgInvalidImportFormat, http.StatusBadRequest)
		return
	}

	count, err := h.services.VaultService.Import(r.Context(), userID, records)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int("count", count).Msg("vault imported")
	_, _ = utils.WriteJSON(w, models.ImportResponse{
		Message: fmt.Sprintf(app.MsgItemsImportedFmt, count),
		Count:   count,
	}, http.StatusCreated)
}

func vaultItemID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidVaultItemID
	}
	return id, nil
}
