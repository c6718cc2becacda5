package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/mocks"
	"github.com/fmardones/reparto-api/internal/service/auth"
)

type usuarioFixture struct {
	usuarios *mocks.MockUsuarioStore
	jwt      *mocks.MockJWTService
	verifier *mocks.MockPasswordVerifier
	router   *chi.Mux
}

func newUsuarioFixture(t *testing.T) *usuarioFixture {
	t.Helper()
	usuarios := mocks.NewMockUsuarioStore()
	jwt := &mocks.MockJWTService{Token: "test-token"}
	hasher := &mocks.MockPasswordHasher{}
	verifier := &mocks.MockPasswordVerifier{}
	h := NewUsuarioHandler(usuarios, jwt, hasher, verifier, nil)

	r := chi.NewRouter()
	r.Post("/api/usuarios/login", h.Login)
	r.Post("/api/usuarios/registro", h.Registro)
	r.Get("/api/usuarios/perfil", h.Perfil)
	r.Put("/api/usuarios/cambiar-password", h.CambiarPassword)
	r.Get("/api/usuarios", h.List)
	r.Get("/api/usuarios/search", h.Search)
	r.Get("/api/usuarios/{id}", h.Get)
	r.Post("/api/usuarios", h.Create)
	r.Put("/api/usuarios/{id}", h.Update)
	r.Delete("/api/usuarios/{id}", h.Delete)

	return &usuarioFixture{usuarios: usuarios, jwt: jwt, verifier: verifier, router: r}
}

func (f *usuarioFixture) seedUsuario(t *testing.T, username, password, email string) *domain.Usuario {
	t.Helper()
	u := &domain.Usuario{
		ID:             f.usuarios.NextID,
		Username:       username,
		HashedPassword: "hashed:" + password,
		Email:          email,
		NombreCompleto: "Usuario " + username,
	}
	f.usuarios.Usuarios[u.ID] = u
	f.usuarios.NextID++
	return u
}

func TestUsuarioHandler_Login(t *testing.T) {
	testCases := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       map[string]any{"username": "fmardones", "password": "secret1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       map[string]any{"username": "fmardones", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Credenciales inválidas",
		},
		{
			name:       "unknown usuario",
			body:       map[string]any{"username": "nadie", "password": "secret1"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Credenciales inválidas",
		},
		{
			name:       "missing password",
			body:       map[string]any{"username": "fmardones"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Username y password son obligatorios",
		},
		{
			name:       "missing username",
			body:       map[string]any{"password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Username y password son obligatorios",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newUsuarioFixture(t)
			fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

			rec := doRequest(t, fx.router, http.MethodPost, "/api/usuarios/login", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tc.wantError != "" {
				assert.False(t, env.Success)
				assert.Equal(t, tc.wantError, env.Error)
				return
			}

			assert.True(t, env.Success)
			assert.Equal(t, "Login exitoso", env.Message)
			var data struct {
				Usuario domain.Usuario `json:"usuario"`
				Token   string         `json:"token"`
			}
			decodeData(t, env, &data)
			assert.Equal(t, "fmardones", data.Usuario.Username)
			assert.Equal(t, "test-token", data.Token)
			assert.NotContains(t, rec.Body.String(), "hashed:")
		})
	}
}

func TestUsuarioHandler_Registro(t *testing.T) {
	validBody := func() map[string]any {
		return map[string]any{
			"username":        "nuevo",
			"password":        "secreto",
			"email":           "nuevo@example.com",
			"nombre_completo": "Nuevo Usuario",
		}
	}

	testCases := []struct {
		name       string
		mutate     func(body map[string]any)
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			mutate:     func(map[string]any) {},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short password",
			mutate:     func(b map[string]any) { b["password"] = "abc" },
			wantStatus: http.StatusBadRequest,
			wantError:  "La contraseña debe tener al menos 6 caracteres",
		},
		{
			name:       "invalid email",
			mutate:     func(b map[string]any) { b["email"] = "no-es-email" },
			wantStatus: http.StatusBadRequest,
			wantError:  "El formato del email no es válido",
		},
		{
			name:       "duplicate username",
			mutate:     func(b map[string]any) { b["username"] = "fmardones" },
			wantStatus: http.StatusBadRequest,
			wantError:  "El username ya está en uso",
		},
		{
			name:       "duplicate email",
			mutate:     func(b map[string]any) { b["email"] = "fm@example.com" },
			wantStatus: http.StatusBadRequest,
			wantError:  "El email ya está en uso",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newUsuarioFixture(t)
			fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

			body := validBody()
			tc.mutate(body)
			rec := doRequest(t, fx.router, http.MethodPost, "/api/usuarios/registro", body)
			require.Equal(t, tc.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, env.Error)
				return
			}

			assert.Equal(t, "Usuario registrado exitosamente", env.Message)
			var data struct {
				Usuario domain.Usuario `json:"usuario"`
				Token   string         `json:"token"`
			}
			decodeData(t, env, &data)
			assert.Equal(t, "nuevo", data.Usuario.Username)
			assert.NotZero(t, data.Usuario.ID)
			assert.Equal(t, "test-token", data.Token)
			assert.NotContains(t, rec.Body.String(), "hashed:")
		})
	}
}

func TestUsuarioHandler_RegistroMissingFields(t *testing.T) {
	fx := newUsuarioFixture(t)

	rec := doRequest(t, fx.router, http.MethodPost, "/api/usuarios/registro",
		map[string]any{"username": "solo"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.ElementsMatch(t, []string{
		"El campo 'password' es obligatorio",
		"El campo 'email' es obligatorio",
		"El campo 'nombre_completo' es obligatorio",
	}, env.Errors)
}

func TestUsuarioHandler_Perfil(t *testing.T) {
	fx := newUsuarioFixture(t)
	u := fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

	rec := doAuthRequest(t, fx.router, http.MethodGet, "/api/usuarios/perfil", nil,
		&auth.Claims{UserID: u.ID, Username: u.Username})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var perfil domain.Usuario
	decodeData(t, env, &perfil)
	assert.Equal(t, u.ID, perfil.ID)
	assert.Equal(t, "fmardones", perfil.Username)
	assert.Empty(t, perfil.HashedPassword)
}

func TestUsuarioHandler_CambiarPassword(t *testing.T) {
	testCases := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       map[string]any{"passwordActual": "secret1", "nuevaPassword": "nueva123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong current password",
			body:       map[string]any{"passwordActual": "equivocada", "nuevaPassword": "nueva123"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Contraseña actual incorrecta",
		},
		{
			name:       "short new password",
			body:       map[string]any{"passwordActual": "secret1", "nuevaPassword": "abc"},
			wantStatus: http.StatusBadRequest,
			wantError:  "La nueva contraseña debe tener al menos 6 caracteres",
		},
		{
			name:       "missing fields",
			body:       map[string]any{"passwordActual": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Contraseña actual y nueva contraseña son obligatorias",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newUsuarioFixture(t)
			u := fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

			rec := doAuthRequest(t, fx.router, http.MethodPut, "/api/usuarios/cambiar-password",
				tc.body, &auth.Claims{UserID: u.ID, Username: u.Username})
			require.Equal(t, tc.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, env.Error)
				return
			}

			assert.Equal(t, "Contraseña cambiada exitosamente", env.Message)
			assert.Equal(t, "hashed:nueva123", fx.usuarios.Usuarios[u.ID].HashedPassword)
		})
	}
}

func TestUsuarioHandler_DeleteSelfBlocked(t *testing.T) {
	fx := newUsuarioFixture(t)
	u := fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

	rec := doAuthRequest(t, fx.router, http.MethodDelete, "/api/usuarios/1", nil,
		&auth.Claims{UserID: u.ID, Username: u.Username})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "No puedes eliminar tu propio usuario", env.Error)
	assert.Contains(t, fx.usuarios.Usuarios, u.ID)
}

func TestUsuarioHandler_DeleteOther(t *testing.T) {
	fx := newUsuarioFixture(t)
	admin := fx.seedUsuario(t, "admin", "secret1", "admin@example.com")
	otro := fx.seedUsuario(t, "otro", "secret2", "otro@example.com")

	rec := doAuthRequest(t, fx.router, http.MethodDelete, "/api/usuarios/2", nil,
		&auth.Claims{UserID: admin.ID, Username: admin.Username})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Usuario eliminado exitosamente", env.Message)
	assert.NotContains(t, fx.usuarios.Usuarios, otro.ID)
}

func TestUsuarioHandler_DeleteUnknown(t *testing.T) {
	fx := newUsuarioFixture(t)
	admin := fx.seedUsuario(t, "admin", "secret1", "admin@example.com")

	rec := doAuthRequest(t, fx.router, http.MethodDelete, "/api/usuarios/99", nil,
		&auth.Claims{UserID: admin.ID, Username: admin.Username})
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Usuario no encontrado", env.Error)
}

func TestUsuarioHandler_Update(t *testing.T) {
	t.Run("keeps password when omitted", func(t *testing.T) {
		fx := newUsuarioFixture(t)
		u := fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

		rec := doRequest(t, fx.router, http.MethodPut, "/api/usuarios/1",
			map[string]any{"username": "fmardones", "email": "nuevo@example.com"})
		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Usuario actualizado exitosamente", env.Message)
		assert.Equal(t, "nuevo@example.com", fx.usuarios.Usuarios[u.ID].Email)
		assert.Equal(t, "hashed:secret1", fx.usuarios.Usuarios[u.ID].HashedPassword)
	})

	t.Run("replaces password when present", func(t *testing.T) {
		fx := newUsuarioFixture(t)
		u := fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

		rec := doRequest(t, fx.router, http.MethodPut, "/api/usuarios/1",
			map[string]any{"username": "fmardones", "password": "renovada"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hashed:renovada", fx.usuarios.Usuarios[u.ID].HashedPassword)
	})

	t.Run("short password rejected", func(t *testing.T) {
		fx := newUsuarioFixture(t)
		fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")

		rec := doRequest(t, fx.router, http.MethodPut, "/api/usuarios/1",
			map[string]any{"username": "fmardones", "password": "abc"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "La contraseña debe tener al menos 6 caracteres", env.Error)
	})

	t.Run("username taken by another usuario", func(t *testing.T) {
		fx := newUsuarioFixture(t)
		fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")
		fx.seedUsuario(t, "otro", "secret2", "otro@example.com")

		rec := doRequest(t, fx.router, http.MethodPut, "/api/usuarios/2",
			map[string]any{"username": "fmardones"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "El username ya está en uso", env.Error)
	})

	t.Run("unknown usuario is 404 before validation", func(t *testing.T) {
		fx := newUsuarioFixture(t)

		rec := doRequest(t, fx.router, http.MethodPut, "/api/usuarios/99", map[string]any{})
		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Usuario no encontrado", env.Error)
	})
}

func TestUsuarioHandler_ListStripsHashes(t *testing.T) {
	fx := newUsuarioFixture(t)
	fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")
	fx.seedUsuario(t, "otro", "secret2", "otro@example.com")

	rec := doRequest(t, fx.router, http.MethodGet, "/api/usuarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	assert.NotContains(t, rec.Body.String(), "hashed:")
}

func TestUsuarioHandler_Search(t *testing.T) {
	fx := newUsuarioFixture(t)
	fx.seedUsuario(t, "fmardones", "secret1", "fm@example.com")
	fx.seedUsuario(t, "otro", "secret2", "otro@example.com")

	rec := doRequest(t, fx.router, http.MethodGet, "/api/usuarios/search?q=mardo", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "mardo", env.SearchTerm)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
}

func TestUsuarioHandler_SearchMissingTerm(t *testing.T) {
	fx := newUsuarioFixture(t)

	rec := doRequest(t, fx.router, http.MethodGet, "/api/usuarios/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Término de búsqueda requerido", env.Error)
}
