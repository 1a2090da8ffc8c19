package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantMsg string
	}{
		{"valid appointment", CreateAppointmentRequest{PatientID: 1, Date: "2025-01-01"}, ""},
		{"missing patient", CreateAppointmentRequest{Date: "2025-01-01"}, "patient_id is required"},
		{"negative patient", CreateAppointmentRequest{PatientID: -1, Date: "2025-01-01"}, "patient_id is invalid"},
		{"long notes", CreateAppointmentRequest{PatientID: 1, Date: "x", Notes: strings.Repeat("a", 10001)}, "notes is too long"},
		{"chat without message", ChatRequest{}, "message is required"},
		{"chat bad history role", ChatRequest{Message: "hi", History: []ChatMessage{{Role: "tool"}}}, "role is invalid"},
		{"login is lenient", LoginRequest{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			domainErr := apperrors.ToDomainError(err)
			require.NotNil(t, domainErr)
			assert.Equal(t, apperrors.CodeMalformedRequest, domainErr.Code)
			assert.Equal(t, tt.wantMsg, domainErr.Message)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-03-04T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.UTC().Hour())

	_, err = ParseDate("04/03/2025")
	assert.Equal(t, apperrors.CodeMalformedRequest, apperrors.ToDomainError(err).Code)
}
