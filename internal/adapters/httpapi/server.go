package httpapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/klxtra/activities-api/internal/app/activities"
	"github.com/klxtra/activities-api/internal/app/adminview"
	"github.com/klxtra/activities-api/internal/app/profiles"
	"github.com/klxtra/activities-api/internal/app/registrations"
	"github.com/klxtra/activities-api/internal/app/roles"
	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/idempotency"
	"github.com/klxtra/activities-api/internal/ports/out/mailer"
)

// Server is the HTTP adapter. Role enforcement happens here: the application
// services below it are portal-agnostic.
type Server struct {
	Profiles      *profiles.Service
	Activities    *activities.Service
	Registrations *registrations.Service
	Admin         *adminview.Service
	Roles         *roles.Resolver

	Mailer mailer.Mailer
	Idem   idempotency.Store
	Log    *slog.Logger
}

func NewServer(
	profilesSvc *profiles.Service,
	activitiesSvc *activities.Service,
	registrationsSvc *registrations.Service,
	adminSvc *adminview.Service,
	rolesResolver *roles.Resolver,
	m mailer.Mailer,
	idem idempotency.Store,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Profiles:      profilesSvc,
		Activities:    activitiesSvc,
		Registrations: registrationsSvc,
		Admin:         adminSvc,
		Roles:         rolesResolver,
		Mailer:        m,
		Idem:          idem,
		Log:           log,
	}
}

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{
		Subject:       string(id.Subject),
		Email:         openapi_types.Email(id.Email),
		Name:          id.Name,
		EmailVerified: id.EmailVerified,
		Role:          s.Roles.Resolve(id.Email),
	})
}

// SyncSession upserts the caller's student profile. It is best-effort by
// contract: failures are logged and the endpoint still returns 204, because
// the SPA calls it on every session start and must not block login.
func (s *Server) SyncSession(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}

	formName := ""
	if r.Body != nil {
		var req SessionSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			if req.Name.IsSpecified() && !req.Name.IsNull() {
				if v, err := req.Name.Get(); err == nil {
					formName = v
				}
			}
		}
	}

	if _, err := s.Profiles.Upsert(r.Context(), id, formName); err != nil {
		s.Log.Error("session_sync_failed", "error", err, "subject", string(id.Subject))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	if _, ok := IdentityFromContext(r.Context()); !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	as, err := s.Activities.ListForStudents(r.Context())
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	out := ActivitiesResponse{Activities: make([]ActivityResponse, 0, len(as))}
	for _, a := range as {
		out.Activities = append(out.Activities, activityResponseFromDomain(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	if !s.Roles.IsAdmin(id.Email) {
		writeError(w, r, http.StatusForbidden, "ADMIN_REQUIRED", "admin access required", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unreadable request body", nil)
		return
	}
	handled, storeResp := s.beginIdempotent(w, r, id.Subject, "/v1/activities", body)
	if handled {
		return
	}

	var req CreateActivityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body", nil)
		return
	}
	date := ""
	if req.Date != nil {
		date = req.Date.Format("2006-01-02")
	}

	a, err := s.Activities.Create(r.Context(), activities.CreateActivityInput{
		Title:       req.Title,
		Type:        domain.ActivityType(req.Type),
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	resp := activityResponseFromDomain(a)
	storeResp(http.StatusCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	if s.Roles.IsAdmin(id.Email) {
		writeError(w, r, http.StatusForbidden, "STUDENT_REQUIRED", "this email is an admin; use the admin portal", nil)
		return
	}
	if !id.EmailVerified {
		s.sendVerificationReminder(r, id)
		writeError(w, r, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "verify your email before registering", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unreadable request body", nil)
		return
	}
	handled, storeResp := s.beginIdempotent(w, r, id.Subject, "/v1/registrations", body)
	if handled {
		return
	}

	var req CreateRegistrationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body", nil)
		return
	}

	reg, err := s.Registrations.Register(r.Context(), registrations.RegisterInput{
		ActivityID:  domain.ActivityID(req.ActivityID),
		StudentName: req.StudentName,
		StudentRoll: req.StudentRoll,
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	resp := registrationResponseFromDomain(reg)
	storeResp(http.StatusCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) ListRegistrationsByRoll(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	if s.Roles.IsAdmin(id.Email) {
		writeError(w, r, http.StatusForbidden, "STUDENT_REQUIRED", "this email is an admin; use the admin portal", nil)
		return
	}

	rs, err := s.Registrations.ListByRoll(r.Context(), r.URL.Query().Get("roll"))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := RegistrationsResponse{Registrations: make([]RegistrationResponse, 0, len(rs))}
	for _, reg := range rs {
		out.Registrations = append(out.Registrations, registrationResponseFromDomain(reg))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	if !s.Roles.IsAdmin(id.Email) {
		writeError(w, r, http.StatusForbidden, "ADMIN_REQUIRED", "admin access required", nil)
		return
	}

	view, err := s.Admin.Dashboard(r.Context())
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponseFromView(view))
}

// beginIdempotent implements Idempotency-Key handling for create endpoints:
//   - same actor+key+route+body hash replays the stored 201
//   - same actor+key+route with a different body hash is rejected with 409
//   - no header (or no store) disables dedup entirely
//
// When it returns handled=true a response has already been written. The
// returned storeResp persists a successful response for later replay; it is
// always non-nil.
func (s *Server) beginIdempotent(w http.ResponseWriter, r *http.Request, subject domain.SubjectID, route string, body []byte) (bool, func(status int, payload any)) {
	noop := func(int, any) {}

	key := r.Header.Get("Idempotency-Key")
	if key == "" || s.Idem == nil {
		return false, noop
	}

	sum := sha256.Sum256(body)
	bodyHash := hex.EncodeToString(sum[:])
	metaFP := idempotency.Fingerprint{
		Key:      idempotency.Key(key),
		Subject:  subject,
		Method:   r.Method,
		Route:    route,
		BodyHash: "",
	}

	if meta, ok, err := s.Idem.Get(r.Context(), metaFP); err != nil {
		s.writeInternal(w, r, err)
		return true, noop
	} else if ok {
		if string(meta.Body) != bodyHash {
			writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
			return true, noop
		}
	} else {
		_ = s.Idem.Put(r.Context(), metaFP, idempotency.Record{
			StatusCode:  0,
			ContentType: "text/plain",
			Body:        []byte(bodyHash),
			CreatedAt:   time.Now().UTC(),
		})
	}

	respFP := metaFP
	respFP.BodyHash = bodyHash
	if rec, ok, err := s.Idem.Get(r.Context(), respFP); err != nil {
		s.writeInternal(w, r, err)
		return true, noop
	} else if ok && rec.StatusCode == http.StatusCreated && rec.ContentType == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rec.StatusCode)
		_, _ = io.Copy(w, bytes.NewReader(rec.Body))
		return true, noop
	}

	storeResp := func(status int, payload any) {
		b, err := json.Marshal(payload)
		if err != nil {
			return
		}
		_ = s.Idem.Put(r.Context(), respFP, idempotency.Record{
			StatusCode:  status,
			ContentType: "application/json",
			Body:        b,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return false, storeResp
}

func (s *Server) sendVerificationReminder(r *http.Request, id domain.Identity) {
	if s.Mailer == nil || id.Email == "" {
		return
	}
	if err := s.Mailer.SendVerificationReminder(r.Context(), id.Email); err != nil {
		s.Log.Warn("verification_reminder_failed", "error", err, "subject", string(id.Subject))
	}
}

// writeAppError maps a typed application error to the shared envelope. Unknown
// errors become a 500.
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if pe := (*profiles.Error)(nil); errors.As(err, &pe) {
		writeError(w, r, pe.Status, pe.Code, pe.Message, pe.Details)
		return
	}
	if ae := (*activities.Error)(nil); errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	if re := (*registrations.Error)(nil); errors.As(err, &re) {
		writeError(w, r, re.Status, re.Code, re.Message, re.Details)
		return
	}
	s.writeInternal(w, r, err)
}

func (s *Server) writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Error("internal_error", "error", err, "path", r.URL.Path)
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
