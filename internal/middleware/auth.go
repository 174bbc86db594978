package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/requestdata"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type AuthMiddleware struct {
  log      *logger.Logger
  identity services.IdentityService
}

func NewAuthMiddleware(log *logger.Logger, identity services.IdentityService) *AuthMiddleware {
  middlewareLog := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, identity: identity}
}

// RequireAuth accepts any of the three principal kinds. The token subject is
// resolved across all credential tables in the fixed probe order.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    principal, tokenString, ok := am.resolve(c, "")
    if !ok {
      return
    }
    am.install(c, principal, tokenString)
  }
}

// RequireRole resolves the token subject only in the table for the given
// role, so a valid principal of another role is rejected at the token stage
// (401, not 403) without revealing which table it lives in.
func (am *AuthMiddleware) RequireRole(role types.Role) gin.HandlerFunc {
  return func(c *gin.Context) {
    principal, tokenString, ok := am.resolve(c, role)
    if !ok {
      return
    }
    am.install(c, principal, tokenString)
  }
}

func (am *AuthMiddleware) resolve(c *gin.Context, role types.Role) (*types.Principal, string, bool) {
  tokenString := extractToken(c)
  if tokenString == "" {
    c.Header("WWW-Authenticate", "Bearer")
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return nil, "", false
  }
  email, err := am.identity.VerifyToken(tokenString)
  if err != nil {
    c.Header("WWW-Authenticate", "Bearer")
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
    return nil, "", false
  }
  var principal *types.Principal
  if role == "" {
    principal, err = am.identity.Resolve(c.Request.Context(), email)
  } else {
    principal, err = am.identity.ResolveAsRole(c.Request.Context(), email, role)
  }
  if err != nil {
    c.Header("WWW-Authenticate", "Bearer")
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
    return nil, "", false
  }
  return principal, tokenString, true
}

func (am *AuthMiddleware) install(c *gin.Context, principal *types.Principal, tokenString string) {
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    Principal:   principal,
  }
  c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
  c.Next()
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}
