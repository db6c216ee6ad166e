package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paint-it-black-manufacturer/internal/model"
	"paint-it-black-manufacturer/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultToolLimit = 50

type CreateToolRequest struct {
	Caller       Identity
	Name         string
	Description  string
	Image        string
	Price        decimal.Decimal
	MinimumOrder int
	Available    int
}

type CreateReviewRequest struct {
	Caller  Identity
	ToolID  string
	Name    string
	Rating  int
	Comment string
}

type CatalogService interface {
	ListTools(ctx context.Context, limit int) ([]*model.Tool, error)
	GetTool(ctx context.Context, toolID string) (*model.Tool, error)
	CreateTool(ctx context.Context, req CreateToolRequest) (*model.Tool, error)

	AddReview(ctx context.Context, req CreateReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, toolID string) ([]*model.Review, error)
}

type catalogServiceImpl struct {
	toolRepo   repository.ToolRepository
	reviewRepo repository.ReviewRepository
	timeout    time.Duration
}

func NewCatalogService(
	toolRepo repository.ToolRepository,
	reviewRepo repository.ReviewRepository,
	timeout time.Duration,
) CatalogService {
	return &catalogServiceImpl{
		toolRepo:   toolRepo,
		reviewRepo: reviewRepo,
		timeout:    timeout,
	}
}

func (s *catalogServiceImpl) ListTools(ctx context.Context, limit int) ([]*model.Tool, error) {
	if limit <= 0 {
		limit = defaultToolLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tools, err := s.toolRepo.List(ctx, limit)
	if err != nil {
		return nil, storeError(err)
	}
	return tools, nil
}

func (s *catalogServiceImpl) GetTool(ctx context.Context, toolID string) (*model.Tool, error) {
	if !validReference(toolID) {
		return nil, invalidReference("tool id")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tool, err := s.toolRepo.FindByID(ctx, nil, toolID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tool %s", ErrNotFound, toolID)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return tool, nil
}

func (s *catalogServiceImpl) CreateTool(ctx context.Context, req CreateToolRequest) (*model.Tool, error) {
	if !req.Caller.IsAdmin() {
		return nil, ErrAuthorizationDenied
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("name is required")
	}
	if err := validateAmount("price", req.Price); err != nil {
		return nil, err
	}
	if req.Available < 0 {
		return nil, validationError("available must not be negative")
	}
	minimum := req.MinimumOrder
	if minimum <= 0 {
		minimum = 1
	}

	now := time.Now().UTC()
	tool := &model.Tool{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Image:        strings.TrimSpace(req.Image),
		Price:        req.Price,
		MinimumOrder: minimum,
		Available:    req.Available,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.toolRepo.Create(ctx, tool); err != nil {
		return nil, storeError(err)
	}
	return tool, nil
}

func (s *catalogServiceImpl) AddReview(ctx context.Context, req CreateReviewRequest) (*model.Review, error) {
	if req.Caller.Subject == "" {
		return nil, ErrAuthorizationDenied
	}
	if !validReference(req.ToolID) {
		return nil, invalidReference("tool id")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}

	if _, err := s.GetTool(ctx, req.ToolID); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ToolID:    req.ToolID,
		UserID:    req.Caller.Subject,
		Name:      strings.TrimSpace(req.Name),
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, storeError(err)
	}
	return review, nil
}

func (s *catalogServiceImpl) ListReviews(ctx context.Context, toolID string) ([]*model.Review, error) {
	if toolID != "" && !validReference(toolID) {
		return nil, invalidReference("tool id")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reviews, err := s.reviewRepo.ListByTool(ctx, toolID)
	if err != nil {
		return nil, storeError(err)
	}
	return reviews, nil
}
