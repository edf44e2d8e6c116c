package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	CreateIfMissing(ctx context.Context, profile *models.Profile) error
	Save(ctx context.Context, profile *models.Profile) error
	AssignTenant(ctx context.Context, userID uuid.UUID, role enums.UserRole, tenantID *uuid.UUID) error
}

// Service exposes profile lookups and role management.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Ensure(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*ProfileDTO, error)
	SetRole(ctx context.Context, userID uuid.UUID, role enums.UserRole, tenantID *uuid.UUID) error
}

type service struct {
	repo profileRepository
}

// NewService builds a profile service.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	return FromModel(profile), nil
}

// Ensure returns the profile, creating a customer profile on first sight of the user.
func (s *service) Ensure(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if err := s.repo.CreateIfMissing(ctx, &models.Profile{UserID: userID, Role: enums.UserRoleCustomer}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
	}
	return s.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	if input.FullName != nil {
		profile.FullName = optional(*input.FullName)
	}
	if input.WhatsAppNumber != nil {
		profile.WhatsAppNumber = optional(*input.WhatsAppNumber)
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return FromModel(profile), nil
}

func (s *service) SetRole(ctx context.Context, userID uuid.UUID, role enums.UserRole, tenantID *uuid.UUID) error {
	if !role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if role == enums.UserRoleAdmin && tenantID == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin role requires a store")
	}
	if err := s.repo.AssignTenant(ctx, userID, role, tenantID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile role")
	}
	return nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
