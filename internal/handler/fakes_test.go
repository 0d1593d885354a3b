package handler

import (
	"sort"

	"github.com/imclatam/imc-backend/internal/domain"
)

type fakeUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(email, rawPassword string) (*domain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if rawPassword == "" {
		return nil, domain.ErrPasswordRequired
	}
	f.nextID++
	u := &domain.User{ID: f.nextID, Email: email, Password: "hashed:" + rawPassword}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindAll() ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Update(id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		u.Password = "hashed:" + *req.Password
	}
	copied := *u
	return &copied, nil
}

type fakeImcRepo struct {
	records []domain.ImcRecord
	nextID  int64
	findErr error
}

func (f *fakeImcRepo) Create(record *domain.ImcRecord) error {
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeImcRepo) FindByUser(userID int64, descending bool, skip int, take *int) ([]domain.ImcRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var owned []domain.ImcRecord
	for _, r := range f.records {
		if r.UserID == userID {
			owned = append(owned, r)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if descending {
			return owned[i].Fecha.After(owned[j].Fecha)
		}
		return owned[i].Fecha.Before(owned[j].Fecha)
	})
	if skip >= len(owned) {
		return nil, nil
	}
	owned = owned[skip:]
	if take != nil && *take < len(owned) {
		owned = owned[:*take]
	}
	return owned, nil
}
