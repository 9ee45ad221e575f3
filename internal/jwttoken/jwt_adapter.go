package jwttoken

import (
	"admingeo/internal/platform/middleware"
)

// ServiceAdapter bridges the token service into the auth middleware's
// validator interface.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{UserID: userID}, nil
}
