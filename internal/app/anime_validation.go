package app

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Les messages utilisent les noms JSON, pas les noms Go.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

type NameQuery struct {
	Name string `json:"name" validate:"required"`
}

type GenreQuery struct {
	Genre  Genres         `json:"genre" validate:"required"`
	Status *domain.Status `json:"status" validate:"omitnil,oneof=FINISHED ONGOING UPCOMING UNKNOWN"`
}

type YearQuery struct {
	Year *float64 `json:"year" validate:"required"`
}

// Genres accepte une chaîne unique ou un tableau de chaînes.
// Une chaîne vide ou null laisse la valeur à nil (donc "required" échoue);
// un tableau vide est accepté.
type Genres []string

type genreShapeError struct{}

func (genreShapeError) Error() string { return "genre must be a string or an array of strings" }

func (g *Genres) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return genreShapeError{}
		}
		if s == "" {
			*g = nil
			return nil
		}
		*g = Genres{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return genreShapeError{}
	}
	if list == nil {
		list = []string{}
	}
	*g = list
	return nil
}

func ValidateNameQuery(payload []byte) (NameQuery, error) {
	var q NameQuery
	if err := decodeAndValidate(payload, &q); err != nil {
		return NameQuery{}, err
	}
	return q, nil
}

func ValidateGenreQuery(payload []byte) (GenreQuery, error) {
	var q GenreQuery
	if err := decodeAndValidate(payload, &q); err != nil {
		return GenreQuery{}, err
	}
	// "status": null laisse le pointeur à nil et échappe à omitnil.
	if q.Status == nil && hasField(payload, "status") {
		return GenreQuery{}, invalidInput([]string{"status"}, fmt.Sprintf(errorMessageWithParam["oneof"], "status", statusChoices()))
	}
	return q, nil
}

// hasField: la clé est présente dans l'objet, quelle que soit sa valeur.
func hasField(payload []byte, name string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return false
	}
	_, ok := fields[name]
	return ok
}

func statusChoices() string {
	statuses := domain.Statuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return strings.Join(out, " ")
}

func ValidateYearQuery(payload []byte) (YearQuery, error) {
	var q YearQuery
	if err := decodeAndValidate(payload, &q); err != nil {
		return YearQuery{}, err
	}
	return q, nil
}

func decodeAndValidate(payload []byte, dst any) error {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		// Corps absent: équivalent à {}.
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return decodeError(err)
	}
	return validateStruct(dst)
}

func decodeError(err error) *ValidationError {
	var shape genreShapeError
	if errors.As(err, &shape) {
		return invalidInput([]string{"genre"}, shape.Error())
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalidInput([]string{typeErr.Field}, fmt.Sprintf("%s must be a %s", typeErr.Field, kindName(typeErr.Type)))
	}
	if strings.Contains(err.Error(), shape.Error()) {
		return invalidInput([]string{"genre"}, shape.Error())
	}
	return invalidInput(nil, "invalid json body")
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}

func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalidInput(nil, err.Error())
	}
	fields := make([]string, 0, len(fieldErrs))
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		messages = append(messages, translateError(fe))
	}
	return invalidInput(fields, messages...)
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
}

func translateError(fe validator.FieldError) string {
	if tmpl, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
