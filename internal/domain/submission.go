package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSubmission marks a submission that failed option-set validation.
var ErrInvalidSubmission = errors.New("invalid submission")

// Submission is the outbound request to the prediction service. The key
// names are fixed by the service's API contract, spaces included.
type Submission struct {
	Region           string `json:"Region" validate:"required"`
	RoadType         string `json:"Road Type" validate:"required,oneof=Residential Suburban Rural Urban"`
	WeatherCondition string `json:"Weather Condition" validate:"required,oneof=Fine Rain Snow Fog"`
	SpeedLimit       int    `json:"Speed Limit" validate:"required,oneof=20 30 40 50 60 70"`
	TimeOfDay        string `json:"Time of Day" validate:"required,oneof=Morning Afternoon Evening Night"`
	NumberOfVehicles int    `json:"Number of Vehicles" validate:"required,min=1"`
}

var submissionValidator = validator.New()

// Validate checks the submission against the option sets the prediction
// service accepts. The returned error wraps ErrInvalidSubmission.
func (s Submission) Validate() error {
	if err := submissionValidator.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			f := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed %s validation", ErrInvalidSubmission, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return nil
}

// CacheKey returns a deterministic key over all submission fields, used by
// the prediction cache. Identical conditions produce identical predictions.
func (s Submission) CacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%d|%s|%d",
		s.Region, s.RoadType, s.WeatherCondition, s.SpeedLimit, s.TimeOfDay, s.NumberOfVehicles)
}
