package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/requestdata"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type AuthHandler struct {
  identity services.IdentityService
}

func NewAuthHandler(identity services.IdentityService) *AuthHandler {
  return &AuthHandler{identity: identity}
}

// Token is the OAuth2 password-flow login: form fields "username" (the email)
// and "password". An unknown email and a wrong password answer identically.
func (ah *AuthHandler) Token(c *gin.Context) {
  username := c.PostForm("username")
  password := c.PostForm("password")
  principal, err := ah.identity.Authenticate(c.Request.Context(), username, password)
  if err != nil {
    RespondServiceError(c, services.ErrInvalidCredentials)
    return
  }
  accessToken, err := ah.identity.IssueToken(principal.Email)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "token_issue_failed", err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "token_type": "bearer"})
}

func (ah *AuthHandler) Me(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.Principal == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrInvalidCredentials)
    return
  }
  c.JSON(http.StatusOK, rd.Principal)
}
