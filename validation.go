package allauth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// normalize validates the request and returns a copy with the phone
// identifier, when present, normalized to E.164.
func (r LoginRequest) normalize() (LoginRequest, error) {
	if err := validateCredentials(&r.Username, &r.Email, &r.Phone, &r.Password); err != nil {
		return r, err
	}
	return r, nil
}

func (r SignupRequest) normalize() (SignupRequest, error) {
	if err := validateCredentials(&r.Username, &r.Email, &r.Phone, &r.Password); err != nil {
		return r, err
	}
	return r, nil
}

func validateCredentials(username, email, phone, password *string) error {
	if *username == "" && *email == "" && *phone == "" {
		return ErrMissingLoginIdentifier
	}

	if err := validation.Validate(*password, validation.Required); err != nil {
		return ErrInvalidPayload.WithMetadata(map[string]any{
			"param":  "password",
			"reason": err.Error(),
		})
	}

	if *email != "" {
		if err := validation.Validate(*email, is.Email); err != nil {
			return ErrInvalidPayload.WithMetadata(map[string]any{
				"param":  "email",
				"reason": err.Error(),
			})
		}
	}

	if *phone != "" {
		normalized, err := normalizePhone(*phone)
		if err != nil {
			return err
		}
		*phone = normalized
	}

	return nil
}

// normalizePhone parses an international phone identifier and formats it to
// E.164 so the same number always maps to the same account.
func normalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", ErrInvalidPhoneIdentifier.WithMetadata(map[string]any{
			"reason": err.Error(),
		})
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalidPhoneIdentifier.WithMetadata(map[string]any{
			"reason": "number is not dialable",
		})
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
