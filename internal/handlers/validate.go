package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tweetarchive/internal/archive"
	"tweetarchive/internal/query"
)

var validate = newValidator()

// newValidator reports fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// parseListParams reads the optional listing parameters from the query
// string. Absent or empty values stay nil so Normalize applies defaults.
func parseListParams(v url.Values) (query.Params, error) {
	var p query.Params
	var err error

	if p.PageSize, err = intParam(v, "page_size"); err != nil {
		return p, err
	}
	if p.PageNumber, err = intParam(v, "page_number"); err != nil {
		return p, err
	}
	if p.HideArchived, err = boolParam(v, "hide_archived"); err != nil {
		return p, err
	}
	if p.HideCategorized, err = boolParam(v, "hide_categorized"); err != nil {
		return p, err
	}
	if v.Has("search") {
		s := v.Get("search")
		p.Search = &s
	}
	if query.Normalize(p).OffsetOverflows() {
		return p, errors.New("page_number and page_size overflow the row offset")
	}
	return p, nil
}

func intParam(v url.Values, key string) (*int64, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &n, nil
}

func boolParam(v url.Values, key string) (*bool, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &b, nil
}

// validatePatch checks field constraints and returns the first error found.
func validatePatch(p archive.Patch) string {
	err := validate.Struct(p)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters)", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
