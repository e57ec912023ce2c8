package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/account-inventory/internal/http/response"
)

const (
	ServiceMessage = "Account Management API"
	ServiceVersion = "1.0.0"
)

type ServiceInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type MetaHandler struct {
	info ServiceInfo
}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{info: ServiceInfo{Message: ServiceMessage, Version: ServiceVersion}}
}

// GET /
func (h *MetaHandler) Root(c *gin.Context) {
	response.RespondOK(c, h.info)
}
