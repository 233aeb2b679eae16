package casestudy

import (
	"fmt"
	"strings"
)

// ValidateDetail validates fields required to store a case study.
func ValidateDetail(d *Detail) error {
	if d == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Country) == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.PolicyName) == "" {
		return fmt.Errorf("%w: policy_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(string(d.PolicyType)) == "" {
		return fmt.Errorf("%w: policy_type is required", ErrInvalidInput)
	}
	if !d.DataQuality.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidInput, ErrUnknownQuality, d.DataQuality)
	}
	return nil
}

// ParseDataQuality maps free text onto the closed quality set.
func ParseDataQuality(raw string) (DataQuality, error) {
	q := DataQuality(strings.ToLower(strings.TrimSpace(raw)))
	if !q.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuality, raw)
	}
	return q, nil
}
