package domain

// Session is the claim set carried inside the session cookie. It is never stored server-side.
type Session struct {
	AccountID int64  `json:"uid"`
	Role      Role   `json:"role"`
	PatientID *int64 `json:"patient_id,omitempty"`
	DoctorID  *int64 `json:"doctor_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// IsDoctor reports whether the session belongs to a doctor.
func (s *Session) IsDoctor() bool {
	return s != nil && s.Role == RoleDoctor
}

// Consistent reports whether the linked profile ids match the role.
func (s *Session) Consistent() bool {
	switch s.Role {
	case RoleDoctor:
		return s.PatientID == nil
	case RolePatient:
		return s.DoctorID == nil && s.PatientID != nil
	default:
		return false
	}
}
