package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return style.IsHexColor(fl.Field().String())
	})
	validate.RegisterValidation("currencyid", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if id == "" {
			return true
		}
		_, err := currency.Lookup(id)
		return err == nil
	})
}

// ErrInvalidInput wraps every validation failure of an Input.
var ErrInvalidInput = errors.New("invalid input")

// Input is a partial edit of the form, bound from JSON or a form body.
// Nil fields are left unchanged.
type Input struct {
	Text       *string `json:"text" form:"text" validate:"omitempty,max=4096"`
	CurrencyID *string `json:"currency" form:"currency" validate:"omitempty,currencyid"`
	Amount     *string `json:"amount" form:"amount" validate:"omitempty,max=64"`
	Label      *string `json:"label" form:"label" validate:"omitempty,max=256"`
	Message    *string `json:"message" form:"message" validate:"omitempty,max=512"`
	Invoice    *bool   `json:"invoice" form:"invoice"`

	DotColor        *string `json:"dotColor" form:"dotColor" validate:"omitempty,hexcolor6"`
	UseGradient     *bool   `json:"useGradient" form:"useGradient"`
	GradientColor   *string `json:"gradientColor" form:"gradientColor" validate:"omitempty,hexcolor6"`
	GradientType    *string `json:"gradientType" form:"gradientType" validate:"omitempty,oneof=linear radial"`
	BackgroundColor *string `json:"backgroundColor" form:"backgroundColor" validate:"omitempty,hexcolor6"`
	DotShape        *string `json:"dotShape" form:"dotShape" validate:"omitempty,oneof=square dots rounded extra-rounded classy classy-rounded"`
	CornerShape     *string `json:"cornerShape" form:"cornerShape" validate:"omitempty,oneof=square dot extra-rounded"`
	SizePx          *int    `json:"sizePx" form:"sizePx" validate:"omitempty,min=100,max=2000"`
	ClearLogo       bool    `json:"clearLogo" form:"clearLogo"`
}

// Validate reports every failing field in one error wrapping ErrInvalidInput.
func (in Input) Validate() error {
	err := validate.Struct(&in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}

// ApplyStyle feeds the style fields through the resolver's setters.
func (in Input) ApplyStyle(r *style.Resolver) {
	if in.DotColor != nil {
		r.SetDotColor(*in.DotColor)
	}
	if in.UseGradient != nil {
		r.SetUseGradient(*in.UseGradient)
	}
	if in.GradientColor != nil {
		r.SetGradientColor(*in.GradientColor)
	}
	if in.GradientType != nil {
		if t, err := style.ParseGradientType(*in.GradientType); err == nil {
			r.SetGradientType(t)
		}
	}
	if in.BackgroundColor != nil {
		r.SetBackgroundColor(*in.BackgroundColor)
	}
	if in.DotShape != nil {
		if s, err := style.ParseDotShape(*in.DotShape); err == nil {
			r.SetDotShape(s)
		}
	}
	if in.CornerShape != nil {
		if s, err := style.ParseCornerShape(*in.CornerShape); err == nil {
			r.SetCornerShape(s)
		}
	}
	if in.SizePx != nil {
		r.SetSize(*in.SizePx)
	}
	if in.ClearLogo {
		r.SetLogo("")
	}
}
