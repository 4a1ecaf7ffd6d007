package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MinClientAge = 20
	MaxClientAge = 100
)

// Rules holds the enumerations the categorical request fields are checked against.
type Rules struct {
	educationTypes    map[string]struct{}
	organizationTypes map[string]struct{}
}

func NewRules(educationTypes, organizationTypes []string) *Rules {
	return &Rules{
		educationTypes:    toSet(educationTypes),
		organizationTypes: toSet(organizationTypes),
	}
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

// Register installs the named rules on v and reports field errors by json name.
func (r *Rules) Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)
	for tag, fn := range map[string]validator.Func{
		"ext_source":        IsExtSource,
		"client_age":        IsClientAge,
		"education_type":    r.IsEducationType,
		"organization_type": r.IsOrganizationType,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBinding installs the rules on gin's request validator used by ShouldBindJSON.
func (r *Rules) RegisterBinding() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not a validator.Validate")
	}
	return r.Register(v)
}

// New returns a standalone validator reading the same "binding" tags as gin.
func (r *Rules) New() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := r.Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// IsExtSource accepts external scores in [0, 1].
func IsExtSource(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v := fl.Field().Float()
		return v >= 0 && v <= 1
	}
	return false
}

// IsClientAge accepts whole years in [MinClientAge, MaxClientAge].
func IsClientAge(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := fl.Field().Int()
		return v >= MinClientAge && v <= MaxClientAge
	}
	return false
}

func (r *Rules) IsEducationType(fl validator.FieldLevel) bool {
	return inSet(fl, r.educationTypes)
}

func (r *Rules) IsOrganizationType(fl validator.FieldLevel) bool {
	return inSet(fl, r.organizationTypes)
}

func inSet(fl validator.FieldLevel, set map[string]struct{}) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, ok := set[fl.Field().String()]
	return ok
}
