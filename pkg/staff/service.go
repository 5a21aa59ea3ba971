package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Staff, error)
	GetByUid(ctx context.Context, uid string) (Staff, error)
	Create(ctx context.Context, member Staff) (Staff, error)
	Update(ctx context.Context, member Staff) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Staff, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (Staff, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) Create(ctx context.Context, member Staff) (Staff, error) {
	if member.Email == "" {
		return Staff{}, fmt.Errorf("staff member email is required")
	}
	member.Uid = uuid.NewString()

	id, err := s.repo.Store(ctx, member)
	if err != nil {
		return Staff{}, err
	}
	member.Id = id
	return member, nil
}

func (s *ServiceImpl) Update(ctx context.Context, member Staff) (bool, error) {
	updated, err := s.repo.Update(ctx, member)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("staff member not updated, probably because it does not exist (%s)", member.Uid)
		return false, fmt.Errorf("staff member not updated")
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("staff member not deleted, probably because it does not exist (%s)", uid)
		return false, fmt.Errorf("staff member not deleted")
	}
	return true, nil
}
