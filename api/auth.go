package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/sirupsen/logrus"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(c, "login", models.NewValidationError("login", err))
		return
	}
	if h.Manager.Username == "" || h.Manager.PasswordHash == "" ||
		req.Username != h.Manager.Username ||
		utils.ComparePassword(h.Manager.PasswordHash, req.Password) != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"username":  req.Username,
			"client_ip": c.ClientIP(),
		}).Warn("manager login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	token, err := utils.JwtGenerate(req.Username, utils.RoleManager)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, Role: utils.RoleManager})
}
