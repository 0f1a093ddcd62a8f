// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/pdf-cards/internal/cards"
	"github.com/pdiddy/pdf-cards/internal/convert"
	"github.com/pdiddy/pdf-cards/internal/render"
	"github.com/pdiddy/pdf-cards/pkg/types"
)

// plan is a validated run: compiled patterns, resolved page formats and
// the parsed page range.
type plan struct {
	segmenter *cards.Segmenter
	renderer  *render.Renderer
	pages     convert.PageRange
}

var validate = newValidator()

// newValidator reports fields by their flag names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks opts without touching the filesystem. Every failure
// wraps ErrConfig.
func Validate(opts types.Options) error {
	_, err := compile(opts)
	return err
}

func compile(opts types.Options) (plan, error) {
	if err := validate.Struct(opts); err != nil {
		return plan{}, fmt.Errorf("%w: %s", ErrConfig, describe(err))
	}

	seg, err := cards.NewSegmenter(opts.TitlePattern, opts.HeaderPattern)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	r, err := render.NewRenderer(opts.TitlePageFormat, opts.ContentPageFormat)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	pages, err := convert.ParsePageRange(opts.PageRange)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return plan{segmenter: seg, renderer: r, pages: pages}, nil
}

// describe turns validator errors into flag-level messages.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		flag := "--" + fe.Field()
		switch fe.Tag() {
		case "required_without":
			msgs = append(msgs, "provide a PDF with --input or a markdown file with --markdown")
		case "required", "required_if":
			msgs = append(msgs, flag+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s, got %q", flag, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", flag, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
