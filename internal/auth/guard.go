package auth

import (
	"github.com/spec-kit/doctor-portal/internal/domain"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

// Action names an operation the guard can be asked about.
type Action string

const (
	ActionListPatients      Action = "patients:list"
	ActionReadPatient       Action = "patients:read"
	ActionCreateAppointment Action = "appointments:create"
	ActionUpdateAppointment Action = "appointments:update"
	ActionListDoctors       Action = "doctors:list"
	ActionChat              Action = "assistant:chat"
)

func (a Action) isWrite() bool {
	return a == ActionCreateAppointment || a == ActionUpdateAppointment
}

// PatientScope controls which patients a doctor may see.
type PatientScope string

const (
	// ScopeAssigned limits doctors to patients assigned to them.
	ScopeAssigned PatientScope = "assigned"
	// ScopeGlobal lets every doctor see every patient.
	ScopeGlobal PatientScope = "global"
)

var (
	errNoSession       = apperrors.NewUnauthorized("unauthorized")
	errForbidden       = apperrors.NewForbidden("forbidden")
	errDoctorRequired  = apperrors.NewForbidden("doctor role required")
	errNoDoctorProfile = apperrors.NewForbidden("doctor profile required")
)

// Guard decides whether a session may perform an action. It holds no per-request state;
// every decision is recomputed from the session claims and the target.
type Guard struct {
	scope PatientScope
}

// NewGuard builds a guard. Unknown scopes fall back to ScopeAssigned.
func NewGuard(scope PatientScope) *Guard {
	if scope != ScopeGlobal {
		scope = ScopeAssigned
	}
	return &Guard{scope: scope}
}

// Scope returns the configured patient scope.
func (g *Guard) Scope() PatientScope {
	return g.scope
}

// Authorize checks role and identity before the target is loaded. patientID is the
// requested patient, or 0 for actions without a patient target.
func (g *Guard) Authorize(session *domain.Session, action Action, patientID int64) error {
	if session == nil {
		return errNoSession
	}

	switch session.Role {
	case domain.RoleDoctor:
		if action.isWrite() && session.DoctorID == nil {
			return errNoDoctorProfile
		}
		return nil
	case domain.RolePatient:
		switch action {
		case ActionListDoctors:
			return nil
		case ActionChat:
			if patientID == 0 {
				return nil
			}
		case ActionReadPatient:
		case ActionListPatients, ActionCreateAppointment, ActionUpdateAppointment:
			return errDoctorRequired
		default:
			return errForbidden
		}
		if session.PatientID == nil || *session.PatientID != patientID {
			return errForbidden
		}
		return nil
	default:
		return errNoSession
	}
}

// AuthorizePatient re-checks the action against a loaded patient record, applying the
// doctor scope.
func (g *Guard) AuthorizePatient(session *domain.Session, action Action, patient *domain.PatientProfile) error {
	if err := g.Authorize(session, action, patient.ID); err != nil {
		return err
	}
	if !session.IsDoctor() || g.scope == ScopeGlobal {
		return nil
	}
	if session.DoctorID == nil || !patient.AssignedTo(*session.DoctorID) {
		return errForbidden
	}
	return nil
}

// ListScope returns the doctor id patient listings must be filtered by, or nil when
// the session may list every patient.
func (g *Guard) ListScope(session *domain.Session) *int64 {
	if g.scope == ScopeGlobal || !session.IsDoctor() {
		return nil
	}
	if session.DoctorID == nil {
		none := int64(-1)
		return &none
	}
	id := *session.DoctorID
	return &id
}
