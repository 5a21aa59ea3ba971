package staff

import (
	"context"
)

type StubRepository struct {
	members map[string]Staff // uid -> member
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		members: map[string]Staff{},
		nextId:  1,
	}
}

func (s *StubRepository) Store(ctx context.Context, member Staff) (int, error) {
	member.Id = s.nextId
	s.nextId++
	s.members[member.Uid] = member
	return member.Id, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Staff, error) {
	members := make([]Staff, 0, len(s.members))
	for _, member := range s.members {
		members = append(members, member)
	}
	return members, nil
}

func (s *StubRepository) GetByUid(ctx context.Context, uid string) (Staff, error) {
	member, ok := s.members[uid]
	if !ok {
		return Staff{}, ErrStaffNotFound
	}
	return member, nil
}

func (s *StubRepository) GetByEmail(ctx context.Context, email string) (Staff, error) {
	for _, member := range s.members {
		if member.Email == email {
			return member, nil
		}
	}
	return Staff{}, ErrStaffNotFound
}

func (s *StubRepository) Update(ctx context.Context, member Staff) (bool, error) {
	existing, ok := s.members[member.Uid]
	if !ok {
		return false, nil
	}
	member.Id = existing.Id
	s.members[member.Uid] = member
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.members[uid]; !ok {
		return false, nil
	}
	delete(s.members, uid)
	return true, nil
}

func (s *StubRepository) Reset() {
	s.members = map[string]Staff{}
	s.nextId = 1
}
