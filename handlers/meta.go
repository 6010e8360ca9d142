// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
)

type MetaHandler struct {
	taxonomy models.Taxonomy
}

func NewMetaHandler(taxonomy models.Taxonomy) *MetaHandler {
	return &MetaHandler{taxonomy: taxonomy}
}

// Meta handles GET /api/meta
func (h *MetaHandler) Meta(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.taxonomy)
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
