package httpapi

import (
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/klxtra/activities-api/internal/app/adminview"
	"github.com/klxtra/activities-api/internal/domain"
)

// MeResponse echoes the authenticated identity plus its resolved role. The
// SPA uses it for route guarding.
type MeResponse struct {
	Subject       string              `json:"subject"`
	Email         openapi_types.Email `json:"email"`
	Name          string              `json:"name"`
	EmailVerified bool                `json:"emailVerified"`
	Role          domain.Role         `json:"role"`
}

// SessionSyncRequest is the optional body of POST /v1/session/sync. A name
// supplied here takes precedence over the token's name claim.
type SessionSyncRequest struct {
	Name nullable.Nullable[string] `json:"name,omitempty"`
}

// CreateActivityRequest uses a typed date so malformed input fails at decode
// time; a missing date surfaces as a validation error from the service.
type CreateActivityRequest struct {
	Title       string              `json:"title"`
	Type        string              `json:"type"`
	Date        *openapi_types.Date `json:"date,omitempty"`
	Location    string              `json:"location"`
	Description string              `json:"description,omitempty"`
}

// ActivityResponse keeps Date as a plain string: legacy records may carry an
// empty date, which a typed date cannot represent.
type ActivityResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Type        string           `json:"type"`
	Date        string           `json:"date"`
	Location    string           `json:"location"`
	Description string           `json:"description,omitempty"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
}

type ActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

type CreateRegistrationRequest struct {
	ActivityID  string `json:"activityId"`
	StudentName string `json:"studentName"`
	StudentRoll string `json:"studentRoll"`
}

type RegistrationResponse struct {
	ID           string           `json:"id"`
	ActivityID   string           `json:"activityId"`
	StudentName  string           `json:"studentName"`
	StudentRoll  string           `json:"studentRoll"`
	Status       string           `json:"status"`
	RegisteredAt domain.Timestamp `json:"registeredAt"`
}

type RegistrationsResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
}

type ActivityStatsResponse struct {
	ActivityResponse
	RegisteredCount int `json:"registeredCount"`
}

type RegistrationEntryResponse struct {
	RegistrationResponse
	ActivityTitle string `json:"activityTitle"`
}

type StudentProfileResponse struct {
	Subject   string           `json:"subject"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	CreatedAt domain.Timestamp `json:"createdAt"`
	UpdatedAt domain.Timestamp `json:"updatedAt"`
}

type DashboardResponse struct {
	Activities          []ActivityStatsResponse     `json:"activities"`
	RecentRegistrations []RegistrationEntryResponse `json:"recentRegistrations"`
	Students            []StudentProfileResponse    `json:"students"`
	TotalActivities     int                         `json:"totalActivities"`
	TotalRegistrations  int                         `json:"totalRegistrations"`
	TotalStudents       int                         `json:"totalStudents"`
}

func activityResponseFromDomain(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          string(a.ID),
		Title:       a.Title,
		Type:        string(a.Type),
		Date:        a.Date,
		Location:    a.Location,
		Description: a.Description,
		CreatedAt:   domain.NewTimestamp(a.CreatedAt),
	}
}

func registrationResponseFromDomain(r domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           string(r.ID),
		ActivityID:   string(r.ActivityID),
		StudentName:  r.StudentName,
		StudentRoll:  r.StudentRoll,
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt,
	}
}

func dashboardResponseFromView(v adminview.AdminView) DashboardResponse {
	out := DashboardResponse{
		Activities:          make([]ActivityStatsResponse, 0, len(v.Activities)),
		RecentRegistrations: make([]RegistrationEntryResponse, 0, len(v.RecentRegistrations)),
		Students:            make([]StudentProfileResponse, 0, len(v.Students)),
		TotalActivities:     v.TotalActivities,
		TotalRegistrations:  v.TotalRegistrations,
		TotalStudents:       v.TotalStudents,
	}
	for _, a := range v.Activities {
		out.Activities = append(out.Activities, ActivityStatsResponse{
			ActivityResponse: activityResponseFromDomain(a.Activity),
			RegisteredCount:  a.RegisteredCount,
		})
	}
	for _, r := range v.RecentRegistrations {
		out.RecentRegistrations = append(out.RecentRegistrations, RegistrationEntryResponse{
			RegistrationResponse: registrationResponseFromDomain(r.Registration),
			ActivityTitle:        r.ActivityTitle,
		})
	}
	for _, p := range v.Students {
		out.Students = append(out.Students, StudentProfileResponse{
			Subject:   string(p.Subject),
			Name:      p.Name,
			Email:     p.Email,
			CreatedAt: domain.NewTimestamp(p.CreatedAt),
			UpdatedAt: domain.NewTimestamp(p.UpdatedAt),
		})
	}
	return out
}
