package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockUsuarioStore implements store.UsuarioStore for testing. The
// default read paths strip the password hash except GetByUsername,
// matching the real store.
type MockUsuarioStore struct {
	ListFn           func(ctx context.Context) ([]domain.Usuario, error)
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Usuario, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.Usuario, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.Usuario, error)
	CreateFn         func(ctx context.Context, usuario *domain.Usuario) (*domain.Usuario, error)
	UpdateFn         func(ctx context.Context, id int64, usuario *domain.Usuario) (*domain.Usuario, error)
	UpdatePasswordFn func(ctx context.Context, id int64, hashedPassword string) (*domain.Usuario, error)
	DeleteFn         func(ctx context.Context, id int64) (*domain.Usuario, error)
	SearchFn         func(ctx context.Context, term string) ([]domain.Usuario, error)

	Usuarios map[int64]*domain.Usuario
	NextID   int64
}

var _ store.UsuarioStore = (*MockUsuarioStore)(nil)

// NewMockUsuarioStore creates a mock store with initialized defaults.
func NewMockUsuarioStore() *MockUsuarioStore {
	return &MockUsuarioStore{
		Usuarios: make(map[int64]*domain.Usuario),
		NextID:   1,
	}
}

func sinHash(u domain.Usuario) domain.Usuario {
	u.HashedPassword = ""
	return u
}

func (m *MockUsuarioStore) List(ctx context.Context) ([]domain.Usuario, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	out := make([]domain.Usuario, 0, len(m.Usuarios))
	for _, u := range m.Usuarios {
		out = append(out, sinHash(*u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MockUsuarioStore) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	u, ok := m.Usuarios[id]
	if !ok {
		return nil, store.ErrUsuarioNotFound
	}
	copia := sinHash(*u)
	return &copia, nil
}

func (m *MockUsuarioStore) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	for _, u := range m.Usuarios {
		if u.Username == username {
			copia := *u
			return &copia, nil
		}
	}
	return nil, store.ErrUsuarioNotFound
}

func (m *MockUsuarioStore) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	for _, u := range m.Usuarios {
		if u.Email == email {
			copia := sinHash(*u)
			return &copia, nil
		}
	}
	return nil, store.ErrUsuarioNotFound
}

func (m *MockUsuarioStore) Create(ctx context.Context, usuario *domain.Usuario) (*domain.Usuario, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, usuario)
	}
	for _, u := range m.Usuarios {
		if u.Username == usuario.Username {
			return nil, store.ErrUsernameExists
		}
		if u.Email == usuario.Email {
			return nil, store.ErrEmailExists
		}
	}
	copia := *usuario
	copia.ID = m.NextID
	copia.CreatedAt = time.Now().UTC()
	m.NextID++
	m.Usuarios[copia.ID] = &copia
	result := sinHash(copia)
	return &result, nil
}

func (m *MockUsuarioStore) Update(ctx context.Context, id int64, usuario *domain.Usuario) (*domain.Usuario, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, usuario)
	}
	existente, ok := m.Usuarios[id]
	if !ok {
		return nil, store.ErrUsuarioNotFound
	}
	existente.Username = usuario.Username
	existente.Email = usuario.Email
	existente.NombreCompleto = usuario.NombreCompleto
	if usuario.HashedPassword != "" {
		existente.HashedPassword = usuario.HashedPassword
	}
	copia := sinHash(*existente)
	return &copia, nil
}

func (m *MockUsuarioStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*domain.Usuario, error) {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hashedPassword)
	}
	u, ok := m.Usuarios[id]
	if !ok {
		return nil, store.ErrUsuarioNotFound
	}
	u.HashedPassword = hashedPassword
	copia := sinHash(*u)
	return &copia, nil
}

func (m *MockUsuarioStore) Delete(ctx context.Context, id int64) (*domain.Usuario, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	u, ok := m.Usuarios[id]
	if !ok {
		return nil, store.ErrUsuarioNotFound
	}
	copia := sinHash(*u)
	delete(m.Usuarios, id)
	return &copia, nil
}

func (m *MockUsuarioStore) Search(ctx context.Context, term string) ([]domain.Usuario, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	lower := strings.ToLower(term)
	var out []domain.Usuario
	for _, u := range m.Usuarios {
		if strings.Contains(strings.ToLower(u.Username), lower) {
			out = append(out, sinHash(*u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
