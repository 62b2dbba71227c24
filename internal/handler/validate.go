package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateLayout は予約日付の形式（YYYY-MM-DD）。
const dateLayout = "2006-01-02"

// Validator はリクエストボディの入力値検証を行う。
type Validator struct {
	validate *validator.Validate
}

// NewValidator はカスタムルールを登録したValidatorを生成する。
// エラーメッセージのフィールド名はJSONタグ名を使う。
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// date_ymd: YYYY-MM-DD として解釈できる日付
	v.RegisterValidation("date_ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// Validate は構造体を検証する。失敗時は*ValidationErrorを返す。
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return newValidationError(errs)
}

// ValidationError はフィールドごとの検証エラーを保持する。
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error はerrorインターフェースを実装する。フィールド名の順に並べる。
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e.Errors[field])
	}
	return strings.Join(messages, ", ")
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "oneof":
			out[field] = fmt.Sprintf("%s must be one of [%s]", field, err.Param())
		case "date_ymd":
			out[field] = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &ValidationError{Errors: out}
}
