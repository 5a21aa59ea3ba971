package task

import (
	"context"
)

type StubRepository struct {
	tasks  map[string]Task // uid -> task
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		tasks:  map[string]Task{},
		nextId: 1,
	}
}

func (s *StubRepository) Store(ctx context.Context, t Task) (int, error) {
	t.Id = s.nextId
	s.nextId++
	s.tasks[t.Uid] = t
	return t.Id, nil
}

func (s *StubRepository) GetByUid(ctx context.Context, uid string) (Task, error) {
	t, ok := s.tasks[uid]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *StubRepository) ListByStaff(ctx context.Context, staffId int, includeCompleted bool) ([]Task, error) {
	var tasks []Task
	for _, t := range s.tasks {
		if t.StaffId != staffId {
			continue
		}
		if !includeCompleted && t.Status == StatusCompleted {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *StubRepository) Update(ctx context.Context, t Task) (bool, error) {
	existing, ok := s.tasks[t.Uid]
	if !ok {
		return false, nil
	}
	t.Id = existing.Id
	s.tasks[t.Uid] = t
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.tasks[uid]; !ok {
		return false, nil
	}
	delete(s.tasks, uid)
	return true, nil
}

func (s *StubRepository) Reset() {
	s.tasks = map[string]Task{}
	s.nextId = 1
}
