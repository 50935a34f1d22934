package http

import (
	"encoding/json"
	"net/http"
	"strings"

	commonhttp "github.com/eNoodles/user-service/internal/common/http"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/session"
	"github.com/eNoodles/user-service/internal/user/domain"
	"github.com/eNoodles/user-service/internal/user/service"
)

const usersPathPrefix = "/api/v1/users/"

type createRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Avatar   string `json:"avatar" validate:"required"`
}

type updateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Avatar   string `json:"avatar" validate:"required"`
}

type Handler struct {
	users *service.UserService
	log   *logger.Logger

	getByID    http.Handler
	findByName http.Handler
	update     http.Handler
}

// NewHandler mounts the user routes. Creation is open; reads and updates
// sit behind the session gate, applied per operation rather than globally.
func NewHandler(users *service.UserService, dir *session.Directory, log *logger.Logger) http.Handler {
	h := &Handler{users: users, log: log}

	guard := session.RequireSession(dir, log)
	h.getByID = guard(http.HandlerFunc(h.handleGetByID))
	h.findByName = guard(http.HandlerFunc(h.handleFindByName))
	h.update = guard(http.HandlerFunc(h.handleUpdate))

	mux := http.NewServeMux()
	mux.HandleFunc(usersPathPrefix, h.dispatch)
	return mux
}

// dispatch splits the subtree by shape: the bare collection path serves
// create and find-by-username, a trailing id serves get and update.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, usersPathPrefix)

	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.findByName.ServeHTTP(w, r)
		default:
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.GetTraceID(r.Context()))
		}
		return
	}

	if strings.Contains(rest, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getByID.ServeHTTP(w, r)
	case http.MethodPut:
		h.update.ServeHTTP(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.GetTraceID(r.Context()))
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("create user failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateInput{
		Username: req.Username,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	// The creator is the record's owner, so the response carries the
	// password.
	commonhttp.WriteJSON(w, http.StatusOK, domain.Project(user, user.ID))
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "authentication required", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, usersPathPrefix)

	user, err := h.users.GetByID(r.Context(), domain.ID(id))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, domain.Project(user, domain.ID(identity.UserID)))
}

func (h *Handler) handleFindByName(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "authentication required", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	username := r.URL.Query().Get("username")
	if strings.TrimSpace(username) == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "missing username query parameter", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, domain.Project(user, domain.ID(identity.UserID)))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "authentication required", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, usersPathPrefix)

	// Ownership is checked before field validation; a caller editing
	// someone else's record gets 403 even if the body is also malformed.
	if identity.UserID != id {
		commonhttp.HandleError(w, r, service.ErrUpdateForbidden, h.log)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("update user failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.GetTraceID(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	user, err := h.users.Update(r.Context(), domain.ID(identity.UserID), domain.ID(id), service.UpdateInput{
		Username: req.Username,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, domain.Project(user, domain.ID(identity.UserID)))
}
