package validation

import (
	"testing"

	. "github.com/onsi/gomega"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/model/request"
)

func TestValidator_IsValid(t *testing.T) {
	g := NewWithT(t)
	v := New()

	g.Expect(v.IsValid("any_email@mail.com")).To(BeTrue())
	g.Expect(v.IsValid("invalid_email")).To(BeFalse())
	g.Expect(v.IsValid("@mail.com")).To(BeFalse())
}

func TestValidator_ValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     request.SignUpRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  request.SignUpRequest{Email: "new@example.com", Password: "12345678"},
		},
		{
			name:    "missing email",
			req:     request.SignUpRequest{Password: "12345678"},
			wantErr: "missing param: email",
		},
		{
			name:    "invalid email",
			req:     request.SignUpRequest{Email: "invalid_email", Password: "12345678"},
			wantErr: "invalid param: email",
		},
		{
			name:    "missing password",
			req:     request.SignUpRequest{Email: "new@example.com"},
			wantErr: "missing param: password",
		},
		{
			name:    "short password",
			req:     request.SignUpRequest{Email: "new@example.com", Password: "123"},
			wantErr: "invalid param: password",
		},
	}

	v := New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			err := v.ValidateStruct(tt.req)

			if tt.wantErr == "" {
				g.Expect(err).ToNot(HaveOccurred())
				return
			}

			g.Expect(err).To(MatchError(tt.wantErr))
			g.Expect(domain.IsValidationError(err)).To(BeTrue())
		})
	}
}
