package stats

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/model"
)

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateRecord checks field constraints of a drill record.
func ValidateRecord(r model.DrillRecord) *apperr.MalformedRecordError {
	err := recordValidator.Struct(r)
	if err == nil {
		return nil
	}
	malformed := &apperr.MalformedRecordError{RecordID: r.ID, DrillID: r.DrillID}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		malformed.Field = fe.Field()
		malformed.Reason = describeFieldError(fe)
		return malformed
	}
	malformed.Reason = err.Error()
	return malformed
}

// FilterValid drops records that fail validation and reports them.
func FilterValid(records []model.DrillRecord) (valid []model.DrillRecord, rejected []*apperr.MalformedRecordError) {
	valid = make([]model.DrillRecord, 0, len(records))
	for _, r := range records {
		if bad := ValidateRecord(r); bad != nil {
			rejected = append(rejected, bad)
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be before %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
