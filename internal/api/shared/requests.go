package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidBody is returned when a request body cannot be decoded at all.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrBodyTooLarge is returned when a request body exceeds the size cap
	// installed by http.MaxBytesReader.
	ErrBodyTooLarge = errors.New("request body too large")
)

var (
	validate    = newValidator()
	formDecoder = newFormDecoder()
)

// newValidator returns a validator that reports JSON or form field names
// instead of Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	return d
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored; an
// empty or malformed body fails with ErrInvalidBody, and a body cut off by
// http.MaxBytesReader fails with ErrBodyTooLarge.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// DecodeForm parses an urlencoded or multipart form body into v using the
// `form` struct tags. maxMemory bounds the multipart parts kept in memory.
func DecodeForm(r *http.Request, v any, maxMemory int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return DecodeValues(r.PostForm, v)
}

// DecodeValues decodes url.Values (a query string or a parsed form) into v.
func DecodeValues(values url.Values, v any) error {
	if err := formDecoder.Decode(v, values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
// Types with their own Validate method are validated by it after the struct tags.
func ValidateRequest(v any) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return nil
}
