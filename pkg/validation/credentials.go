package validation

import (
	"strings"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/internal/domain/entity"
)

const minPasswordLen = 6

// Form field names used in per-field error maps.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
	FieldOnboarding      = "onboarding"
)

// ValidateEmail checks the trimmed address is present and has a local@domain.tld shape.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if validate.Var(email, "required") != nil {
		return apperror.Validation(FieldEmail, "Email is required")
	}
	if validate.Var(email, "emailshape") != nil {
		return apperror.Validation(FieldEmail, "Please enter a valid email address")
	}
	return nil
}

// ValidatePassword checks the trimmed password is present and at least six characters.
func ValidatePassword(password string) error {
	return validatePassword(FieldPassword, password)
}

func validatePassword(field, password string) error {
	password = strings.TrimSpace(password)
	if validate.Var(password, "required") != nil {
		return apperror.Validation(field, "Password is required")
	}
	if validate.Var(password, "pwd") != nil {
		return apperror.Validation(field, "Password must be at least 6 characters")
	}
	return nil
}

// ValidateConfirmPassword requires a non-blank confirmation that equals password
// exactly. Unlike ValidatePassword, the comparison does not trim.
func ValidateConfirmPassword(password, confirm string) error {
	if validate.Var(strings.TrimSpace(confirm), "required") != nil {
		return apperror.Validation(FieldConfirmPassword, "Please confirm your password")
	}
	if validate.VarWithValue(confirm, password, "eqfield") != nil {
		return apperror.Validation(FieldConfirmPassword, "Passwords do not match")
	}
	return nil
}

// TrimCredentials returns both fields trimmed.
func TrimCredentials(email, password string) entity.Credentials {
	return entity.Credentials{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
}

// ValidateLoginForm returns per-field messages; the map is empty when the form is valid.
func ValidateLoginForm(email, password string) map[string]string {
	out := map[string]string{}
	collect(out, ValidateEmail(email))
	collect(out, ValidatePassword(password))
	return out
}

// ValidatePasswordChangeForm validates the new password and its confirmation.
func ValidatePasswordChangeForm(newPassword, confirm string) map[string]string {
	out := map[string]string{}
	collect(out, validatePassword(FieldNewPassword, newPassword))
	collect(out, ValidateConfirmPassword(newPassword, confirm))
	return out
}

// ValidateOnboarding requires both document references before submission.
func ValidateOnboarding(sub entity.DriverOnboardingSubmission) error {
	if strings.TrimSpace(sub.DriverLicense) == "" || strings.TrimSpace(sub.ProfilePicture) == "" {
		return apperror.Validation(FieldOnboarding, "Please upload both your driver's license and profile picture to continue.")
	}
	return nil
}

func collect(out map[string]string, err error) {
	if err == nil {
		return
	}
	if e, ok := err.(*apperror.Error); ok && e.Field != "" {
		out[e.Field] = e.Message
	}
}
