package api

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/service/auth"
	"github.com/fmardones/reparto-api/internal/store"
)

// emailPattern rejects whitespace and requires a single @ with a dotted
// domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginRequest is the payload for POST /api/usuarios/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistroRequest is the payload for registro and admin create.
type RegistroRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Email          string `json:"email" validate:"required"`
	NombreCompleto string `json:"nombre_completo" validate:"required"`
}

// UsuarioUpdateRequest is the payload for PUT /api/usuarios/{id}.
// Password is optional; when present it replaces the stored one.
type UsuarioUpdateRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	NombreCompleto string `json:"nombre_completo"`
}

// CambiarPasswordRequest is the payload for PUT /api/usuarios/cambiar-password.
type CambiarPasswordRequest struct {
	PasswordActual string `json:"passwordActual"`
	NuevaPassword  string `json:"nuevaPassword"`
}

// loginData pairs the authenticated usuario with its fresh token.
type loginData struct {
	Usuario *domain.Usuario `json:"usuario"`
	Token   string          `json:"token"`
}

// UsuarioHandler handles /api/usuarios requests, including the public
// login and registro endpoints.
type UsuarioHandler struct {
	usuarioStore store.UsuarioStore
	jwtService   auth.JWTService
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewUsuarioHandler creates a UsuarioHandler with the given dependencies.
func NewUsuarioHandler(
	usuarioStore store.UsuarioStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UsuarioHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsuarioHandler{
		usuarioStore: usuarioStore,
		jwtService:   jwtService,
		hasher:       hasher,
		verifier:     verifier,
		validator:    newValidator(),
		logger:       logger.With(slog.String("component", "usuario_handler")),
	}
}

// Login handles POST /api/usuarios/login. Unknown username and wrong
// password produce the same generic 401.
func (h *UsuarioHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if req.Username == "" || req.Password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username y password son obligatorios")
		return
	}

	usuario, err := h.usuarioStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		h.logger.Error("failed to look up usuario for login", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.verifier.Compare(usuario.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), usuario)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "usuario_id", usuario.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	usuario.HashedPassword = ""
	shared.RespondWithMessage(w, r, http.StatusOK, "Login exitoso", loginData{Usuario: usuario, Token: token})
}

// Registro handles POST /api/usuarios/registro.
func (h *UsuarioHandler) Registro(w http.ResponseWriter, r *http.Request) {
	var req RegistroRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	usuario, ok := h.createFromRequest(w, r, req)
	if !ok {
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), usuario)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "usuario_id", usuario.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "Usuario registrado exitosamente",
		loginData{Usuario: usuario, Token: token})
}

// Perfil handles GET /api/usuarios/perfil for the authenticated usuario.
func (h *UsuarioHandler) Perfil(w http.ResponseWriter, r *http.Request) {
	claims, ok := getAuthClaims(w, r)
	if !ok {
		return
	}

	usuario, err := h.usuarioStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		h.logger.Error("failed to get perfil", "error", err, "usuario_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, usuario)
}

// CambiarPassword handles PUT /api/usuarios/cambiar-password. The
// verify-then-update flow runs as two statements; concurrent changes on
// the same account are not serialized.
func (h *UsuarioHandler) CambiarPassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := getAuthClaims(w, r)
	if !ok {
		return
	}

	var req CambiarPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if req.PasswordActual == "" || req.NuevaPassword == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Contraseña actual y nueva contraseña son obligatorias")
		return
	}
	if len(req.NuevaPassword) < 6 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "La nueva contraseña debe tener al menos 6 caracteres")
		return
	}

	actual, err := h.usuarioStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	// GetByID strips the hash; the credential read goes through the
	// username lookup.
	conHash, err := h.usuarioStore.GetByUsername(r.Context(), actual.Username)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.verifier.Compare(conHash.HashedPassword, req.PasswordActual); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Contraseña actual incorrecta")
		return
	}

	nuevoHash, err := h.hasher.Hash(req.NuevaPassword)
	if err != nil {
		h.logger.Error("failed to hash new password", "error", err, "usuario_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	usuario, err := h.usuarioStore.UpdatePassword(r.Context(), claims.UserID, nuevoHash)
	if err != nil {
		h.logger.Error("failed to update password", "error", err, "usuario_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Contraseña cambiada exitosamente", usuario)
}

// List handles GET /api/usuarios.
func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.usuarioStore.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list usuarios", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, usuarios, len(usuarios))
}

// Get handles GET /api/usuarios/{id}.
func (h *UsuarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	usuario, err := h.usuarioStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		h.logger.Error("failed to get usuario", "error", err, "usuario_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, usuario)
}

// Create handles POST /api/usuarios. Same validation as registro but no
// token is issued.
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegistroRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	usuario, ok := h.createFromRequest(w, r, req)
	if !ok {
		return
	}
	shared.RespondWithMessage(w, r, http.StatusCreated, "Usuario creado exitosamente", usuario)
}

// Update handles PUT /api/usuarios/{id}.
func (h *UsuarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	existente, err := h.usuarioStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	var req UsuarioUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}
	if req.Password != "" && len(req.Password) < 6 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	if req.Username != existente.Username {
		if _, err := h.usuarioStore.GetByUsername(r.Context(), req.Username); err == nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "El username ya está en uso")
			return
		} else if !errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
	}

	email := req.Email
	if email == "" {
		email = existente.Email
	}
	nombre := req.NombreCompleto
	if nombre == "" {
		nombre = existente.NombreCompleto
	}

	update := &domain.Usuario{
		Username:       req.Username,
		Email:          email,
		NombreCompleto: nombre,
	}
	if req.Password != "" {
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			h.logger.Error("failed to hash password", "error", err, "usuario_id", id)
			shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		update.HashedPassword = hash
	}

	usuario, err := h.usuarioStore.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		if errors.Is(err, store.ErrUsernameExists) || errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "El username ya está en uso")
			return
		}
		h.logger.Error("failed to update usuario", "error", err, "usuario_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Usuario actualizado exitosamente", usuario)
}

// Delete handles DELETE /api/usuarios/{id}. A usuario cannot delete its
// own account.
func (h *UsuarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.usuarioStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	claims, ok := getAuthClaims(w, r)
	if !ok {
		return
	}
	if claims.UserID == id {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No puedes eliminar tu propio usuario")
		return
	}

	usuario, err := h.usuarioStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUsuarioNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		h.logger.Error("failed to delete usuario", "error", err, "usuario_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Usuario eliminado exitosamente", usuario)
}

// Search handles GET /api/usuarios/search?q=.
func (h *UsuarioHandler) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := getSearchTerm(w, r)
	if !ok {
		return
	}

	usuarios, err := h.usuarioStore.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("failed to search usuarios", "error", err, "term", term)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithSearchResults(w, r, usuarios, len(usuarios), term)
}

// createFromRequest runs the shared registro/create pipeline: field
// validation, email format, password length, duplicate username/email,
// hash and insert. It writes the rejection itself and reports ok=false.
func (h *UsuarioHandler) createFromRequest(w http.ResponseWriter, r *http.Request, req RegistroRequest) (*domain.Usuario, bool) {
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return nil, false
	}
	if !emailPattern.MatchString(req.Email) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "El formato del email no es válido")
		return nil, false
	}
	if len(req.Password) < 6 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return nil, false
	}

	if _, err := h.usuarioStore.GetByUsername(r.Context(), req.Username); err == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "El username ya está en uso")
		return nil, false
	} else if !errors.Is(err, store.ErrUsuarioNotFound) {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if _, err := h.usuarioStore.GetByEmail(r.Context(), req.Email); err == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "El email ya está en uso")
		return nil, false
	} else if !errors.Is(err, store.ErrUsuarioNotFound) {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	usuario, err := h.usuarioStore.Create(r.Context(), &domain.Usuario{
		Username:       req.Username,
		Email:          req.Email,
		NombreCompleto: req.NombreCompleto,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "El username ya está en uso")
			return nil, false
		}
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "El email ya está en uso")
			return nil, false
		}
		h.logger.Error("failed to create usuario", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return usuario, true
}
