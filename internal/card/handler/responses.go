package handler

import "cardledger/internal/card/models"

type listResponse struct {
	Cards    []models.MaskedCard `json:"cards"`
	Page     int                 `json:"page,omitempty"`
	PageSize int                 `json:"page_size,omitempty"`
}

type transferResponse struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Status string `json:"status"`
}
