package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processVerifyReq(c *gin.Context) (verifyReq, error) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processHideReq(c *gin.Context) (hideReq, error) {
	var req hideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
