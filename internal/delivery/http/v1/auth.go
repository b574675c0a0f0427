package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nlitvinov/go-task-api/internal/services"
)

type loginRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body"))
		return
	}

	pair, err := h.auth.Login(c, services.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *handlerImpl) HandleRefresh(c *gin.Context) {
	var req refreshRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body"))
		return
	}

	pair, err := h.auth.Refresh(c, req.RefreshToken)
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body"))
		return
	}

	user, err := h.auth.Register(c, services.RegisterParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
