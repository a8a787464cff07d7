package grc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// validate is safe for concurrent use; it only caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return v
}

// notBlank rejects empty and whitespace-only strings
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateRecord returns the reasons a record cannot take part in
// correlation, or nil when it is well formed.
func ValidateRecord(r model.ControlRecord) []string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "notblank":
			reasons = append(reasons, "missing "+strings.ToLower(fe.Field()))
		default:
			reasons = append(reasons, fmt.Sprintf("invalid %s", strings.ToLower(fe.Field())))
		}
	}
	return reasons
}

// partition splits records into well-formed ones and skip reports,
// keeping input order in both.
func partition(fw model.Framework, records []model.ControlRecord) ([]model.ControlRecord, []model.SkippedRecord) {
	valid := make([]model.ControlRecord, 0, len(records))
	var skipped []model.SkippedRecord
	for i, r := range records {
		if reasons := ValidateRecord(r); reasons != nil {
			skipped = append(skipped, model.SkippedRecord{
				Framework: fw,
				ID:        r.ID,
				Index:     i,
				Reasons:   reasons,
			})
			continue
		}
		valid = append(valid, r)
	}
	return valid, skipped
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
