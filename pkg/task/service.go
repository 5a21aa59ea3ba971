package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lexload/lexload/internal/event_bus"
	"github.com/lexload/lexload/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListByStaff(ctx context.Context, staffId int, includeCompleted bool) ([]Task, error)
	Create(ctx context.Context, t Task) (Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	SetStatus(ctx context.Context, uid string, status Status) (Task, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) ListByStaff(ctx context.Context, staffId int, includeCompleted bool) ([]Task, error) {
	return s.repo.ListByStaff(ctx, staffId, includeCompleted)
}

func (s *ServiceImpl) Create(ctx context.Context, t Task) (Task, error) {
	if t.EstimatedMinutes < 0 || t.ActualMinutes < 0 {
		return Task{}, fmt.Errorf("task minutes must not be negative")
	}
	t.Uid = uuid.NewString()
	if t.Status == "" {
		t.Status = StatusActive
	}
	t.Priority = PriorityFromWire(string(t.Priority))
	now := s.clock.Now()
	t.CreatedAt = now
	t.LastModified = now

	id, err := s.repo.Store(ctx, t)
	if err != nil {
		return Task{}, err
	}
	t.Id = id
	s.publishUpdated(ctx, t)
	return t, nil
}

func (s *ServiceImpl) Update(ctx context.Context, t Task) (Task, error) {
	if t.EstimatedMinutes < 0 || t.ActualMinutes < 0 {
		return Task{}, fmt.Errorf("task minutes must not be negative")
	}
	existing, err := s.repo.GetByUid(ctx, t.Uid)
	if err != nil {
		return Task{}, err
	}
	t.Id = existing.Id
	t.StaffId = existing.StaffId
	t.CreatedAt = existing.CreatedAt
	t.LastModified = s.clock.Now()

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return Task{}, err
	}
	if !updated {
		return Task{}, fmt.Errorf("task not updated")
	}
	s.publishUpdated(ctx, t)
	return t, nil
}

func (s *ServiceImpl) SetStatus(ctx context.Context, uid string, status Status) (Task, error) {
	t, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return Task{}, err
	}
	t.Status = status
	t.LastModified = s.clock.Now()

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return Task{}, err
	}
	if !updated {
		return Task{}, fmt.Errorf("task status not updated")
	}
	s.publishUpdated(ctx, t)
	return t, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	t, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishUpdated(ctx, t)
	}
	return deleted, nil
}

func (s *ServiceImpl) publishUpdated(ctx context.Context, t Task) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TaskUpdatedEvent, event_bus.TaskUpdated{
		TaskUid: t.Uid,
		StaffId: t.StaffId,
		Status:  string(t.Status),
	}))
	if err != nil {
		log.Warnf("failed to publish task update event: %v", err)
	}
}
