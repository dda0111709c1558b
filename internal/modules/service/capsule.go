package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/modules/model"
	"github.com/hostforge/hostforge/internal/modules/repo"
)

type CapsuleService interface {
	List(ctx context.Context, in ListCapsulesInput) ([]model.Capsule, error)
	Get(ctx context.Context, id string) (*model.Capsule, error)
	Create(ctx context.Context, in CreateCapsuleInput) (*model.Capsule, error)
	Patch(ctx context.Context, id string, patch model.CapsulePatch) (*model.Capsule, error)
	Delete(ctx context.Context, id string) error
}

type capsuleService struct {
	r   repo.CapsuleRepo
	log *zap.Logger
	now func() time.Time
}

func NewCapsuleService(r repo.CapsuleRepo, log *zap.Logger) CapsuleService {
	return &capsuleService{r: r, log: log, now: time.Now}
}

type ListCapsulesInput struct {
	Filter model.StatusFilter
	Search string
}

type CreateCapsuleInput struct {
	Name      string
	Domain    string
	Blueprint model.Blueprint
	Region    string
}

// FilterCapsules derives the visible subset of capsules for the current
// filter and search text. Pure: identical inputs yield identical output,
// source order is preserved, and draft placeholder rows never appear. It is
// recomputed on every call rather than cached so a stale result can never
// outlive a filter change.
func FilterCapsules(capsules []model.Capsule, filter model.StatusFilter, search string) []model.Capsule {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Capsule, 0, len(capsules))
	for _, c := range capsules {
		if c.ID == model.DraftCapsuleID {
			continue
		}
		if !filter.Matches(c.Status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Domain), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *capsuleService) List(ctx context.Context, in ListCapsulesInput) ([]model.Capsule, error) {
	return FilterCapsules(s.r.List(ctx), in.Filter, in.Search), nil
}

func (s *capsuleService) Get(ctx context.Context, id string) (*model.Capsule, error) {
	c, err := s.r.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCapsuleNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *capsuleService) Create(ctx context.Context, in CreateCapsuleInput) (*model.Capsule, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("capsule name is required")
	}
	if !in.Blueprint.Valid() {
		return nil, fmt.Errorf("unknown blueprint %q", in.Blueprint)
	}
	domain := strings.TrimSpace(in.Domain)
	if domain == "" {
		domain = strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".hostforge.app"
	}
	c := model.Capsule{
		ID:          uuid.NewString(),
		Name:        name,
		Domain:      domain,
		Blueprint:   in.Blueprint,
		Status:      model.StatusProvisioning,
		Region:      strings.TrimSpace(in.Region),
		IP:          "192.168.1.100",
		CreatedAt:   s.now().UTC(),
		HealthScore: model.HealthScoreMax,
	}
	if err := s.r.Add(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateID) {
			return nil, ErrDuplicateCapsule
		}
		return nil, err
	}
	s.log.Info("capsule created", zap.String("capsule_id", c.ID), zap.String("blueprint", string(c.Blueprint)))
	return &c, nil
}

func (s *capsuleService) Patch(ctx context.Context, id string, patch model.CapsulePatch) (*model.Capsule, error) {
	updated, err := s.r.Update(ctx, strings.TrimSpace(id), patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// a miss means the caller acted on a stale view, not a fault
			return nil, ErrCapsuleNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *capsuleService) Delete(ctx context.Context, id string) error {
	s.r.Remove(ctx, strings.TrimSpace(id))
	return nil
}
