package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	birthDateRe = regexp.MustCompile(`^[0-9]{8}$`)
	dashDateRe  = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
	// DNI: 7-8 digits + control letter. NIE: X/Y/Z + 7 digits + control letter.
	nationalIDRe = regexp.MustCompile(`^(?:[0-9]{7,8}[A-Z]|[XYZ][0-9]{7}[A-Z])$`)
	digitsRe     = regexp.MustCompile(`[^0-9]`)
)

// Submission is the raw /api/sign request body.
type Submission struct {
	Nom           string `json:"nom" validate:"required,max=30"`
	Cognom1       string `json:"cognom1" validate:"required,max=50"`
	Cognom2       string `json:"cognom2" validate:"omitempty,max=50"`
	Address       string `json:"address" validate:"omitempty,max=200"`
	DataNaixement string `json:"datanaixement" validate:"required,birthdate8"`
	TipusID       string `json:"tipusid" validate:"required,nationalid"`
	CaptchaToken  string `json:"captchaToken" validate:"required"`
}

// NumID returns the digit-only portion of the national ID, used as the
// ID-dimension rate limit key and stored alongside the record.
func (s Submission) NumID() string {
	return digitsRe.ReplaceAllString(s.TipusID, "")
}

// FieldErrors maps a request field name to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("birthdate8", func(fl validator.FieldLevel) bool {
		return birthDateRe.MatchString(fl.Field().String())
	})

	v.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
		return nationalIDRe.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate normalizes the submission and checks every field, returning the
// normalized copy and a map with one entry per failing field. Normalization:
// names and address are trimmed, the national ID is uppercased, and a
// dash-separated birth date from the UI is folded to YYYYMMDD before the rules
// run.
func (v *Validator) Validate(sub Submission) (Submission, FieldErrors) {
	sub.Nom = strings.TrimSpace(sub.Nom)
	sub.Cognom1 = strings.TrimSpace(sub.Cognom1)
	sub.Cognom2 = strings.TrimSpace(sub.Cognom2)
	sub.Address = strings.TrimSpace(sub.Address)
	sub.DataNaixement = dashDateRe.ReplaceAllString(strings.TrimSpace(sub.DataNaixement), "$1$2$3")
	sub.TipusID = strings.ToUpper(strings.TrimSpace(sub.TipusID))

	err := v.validate.Struct(sub)
	if err == nil {
		return sub, nil
	}

	fieldErrs := make(FieldErrors)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrs["_"] = []string{"invalid payload"}
		return sub, fieldErrs
	}

	for _, fe := range validationErrs {
		field := fe.Field()
		fieldErrs[field] = append(fieldErrs[field], message(fe))
	}

	return sub, fieldErrs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "birthdate8":
		return "datanaixement must be YYYYMMDD"
	case "nationalid":
		return "Invalid DNI/NIE"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
