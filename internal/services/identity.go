package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// Sessions expire after a fixed 24 hours; not configurable per call.
const accessTokenTTL = 24 * time.Hour

// IdentityService resolves bearer credentials against the three principal
// tables and issues/verifies the signed session tokens that front them.
type IdentityService interface {
  Authenticate(ctx context.Context, email, password string) (*types.Principal, error)
  Resolve(ctx context.Context, email string) (*types.Principal, error)
  ResolveAsRole(ctx context.Context, email string, role types.Role) (*types.Principal, error)
  IssueToken(email string) (string, error)
  VerifyToken(tokenString string) (string, error)
  TokenTTL() time.Duration
}

type identityService struct {
  db             *gorm.DB
  log            *logger.Logger
  technicianRepo repos.TechnicianRepo
  sawmillRepo    repos.SawmillRepo
  factoryRepo    repos.FactoryRepo
  jwtSecretKey   string
}

func NewIdentityService(
  db *gorm.DB,
  log *logger.Logger,
  technicianRepo repos.TechnicianRepo,
  sawmillRepo repos.SawmillRepo,
  factoryRepo repos.FactoryRepo,
  jwtSecretKey string,
) IdentityService {
  serviceLog := log.With("service", "IdentityService")
  return &identityService{
    db:             db,
    log:            serviceLog,
    technicianRepo: technicianRepo,
    sawmillRepo:    sawmillRepo,
    factoryRepo:    factoryRepo,
    jwtSecretKey:   jwtSecretKey,
  }
}

// Authenticate probes the three credential tables in a fixed order
// (technician, sawmill, factory) and at each step verifies the password
// against the stored hash. A table whose identifier matches but whose hash
// does not verify is skipped, not fatal, so probing continues.
func (is *identityService) Authenticate(ctx context.Context, email, password string) (*types.Principal, error) {
  if email == "" || password == "" {
    return nil, ErrInvalidCredentials
  }

  if technician, err := is.technicianRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query technician credentials: %w", err)
  } else if technician != nil && checkPassword(technician.PasswordHash, password) {
    return technician.Principal(), nil
  }

  if sawmill, err := is.sawmillRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query sawmill credentials: %w", err)
  } else if sawmill != nil && checkPassword(sawmill.PasswordHash, password) {
    return sawmill.Principal(), nil
  }

  if factory, err := is.factoryRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query factory credentials: %w", err)
  } else if factory != nil && checkPassword(factory.PasswordHash, password) {
    return factory.Principal(), nil
  }

  return nil, ErrInvalidCredentials
}

// Resolve maps an identifier to a principal without verifying any secret,
// using the same fixed probe order as Authenticate.
func (is *identityService) Resolve(ctx context.Context, email string) (*types.Principal, error) {
  if technician, err := is.technicianRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query technician credentials: %w", err)
  } else if technician != nil {
    return technician.Principal(), nil
  }
  if sawmill, err := is.sawmillRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query sawmill credentials: %w", err)
  } else if sawmill != nil {
    return sawmill.Principal(), nil
  }
  if factory, err := is.factoryRepo.GetByEmail(ctx, nil, email); err != nil {
    return nil, fmt.Errorf("Failed to query factory credentials: %w", err)
  } else if factory != nil {
    return factory.Principal(), nil
  }
  return nil, ErrNotFound
}

// ResolveAsRole looks the identifier up only in the table for the given role.
// A principal that exists under a different role fails here the same way a
// missing one does.
func (is *identityService) ResolveAsRole(ctx context.Context, email string, role types.Role) (*types.Principal, error) {
  switch role {
  case types.RoleTechnician:
    technician, err := is.technicianRepo.GetByEmail(ctx, nil, email)
    if err != nil {
      return nil, fmt.Errorf("Failed to query technician credentials: %w", err)
    }
    if technician == nil {
      return nil, ErrNotFound
    }
    return technician.Principal(), nil
  case types.RoleSawmill:
    sawmill, err := is.sawmillRepo.GetByEmail(ctx, nil, email)
    if err != nil {
      return nil, fmt.Errorf("Failed to query sawmill credentials: %w", err)
    }
    if sawmill == nil {
      return nil, ErrNotFound
    }
    return sawmill.Principal(), nil
  case types.RoleFactory:
    factory, err := is.factoryRepo.GetByEmail(ctx, nil, email)
    if err != nil {
      return nil, fmt.Errorf("Failed to query factory credentials: %w", err)
    }
    if factory == nil {
      return nil, ErrNotFound
    }
    return factory.Principal(), nil
  default:
    return nil, fmt.Errorf("unknown role %q", role)
  }
}

func (is *identityService) IssueToken(email string) (string, error) {
  claims := jwt.RegisteredClaims{
    Subject:   email,
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
    IssuedAt:  jwt.NewNumericDate(time.Now()),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(is.jwtSecretKey))
}

func (is *identityService) VerifyToken(tokenString string) (string, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(is.jwtSecretKey), nil
  }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
  if err != nil {
    return "", fmt.Errorf("Failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*jwt.RegisteredClaims)
  if !ok || !parsedToken.Valid || claims.Subject == "" {
    return "", fmt.Errorf("Invalid or expired JWT token")
  }
  return claims.Subject, nil
}

func (is *identityService) TokenTTL() time.Duration {
  return accessTokenTTL
}

func checkPassword(hash, password string) bool {
  return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword is used by account provisioning.
func HashPassword(password string) (string, error) {
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return "", fmt.Errorf("Failed to hash password: %w", err)
  }
  return string(hashed), nil
}
