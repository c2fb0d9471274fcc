package inventory

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("product_status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})

	return v
}

type FieldError struct {
	Field  string `json:"field,omitempty"`
	Rule   string `json:"rule"`
	Detail string `json:"detail,omitempty"`
}

// requestError is a malformed request, rejected before the store is consulted.
type requestError struct {
	status  int
	msg     string
	details []FieldError
}

func (e *requestError) Error() string { return e.msg }

func invalid(msg string, details ...FieldError) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, msg: msg, details: details}
}

type createCategoryReq struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (req createCategoryReq) command() CreateCategoryCommand {
	return CreateCategoryCommand{
		Name:        *req.Name,
		Description: req.Description,
	}
}

type createProductReq struct {
	Name        *string  `json:"name" validate:"required"`
	SKU         *string  `json:"sku" validate:"required"`
	Stock       *int     `json:"stock" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	CategoryID  *int     `json:"category_id" validate:"required"`
	Status      *Status  `json:"status" validate:"required,product_status"`
	Description *string  `json:"description"`
}

func (req createProductReq) command() CreateProductCommand {
	return CreateProductCommand{
		Name:        *req.Name,
		SKU:         *req.SKU,
		Stock:       *req.Stock,
		Price:       *req.Price,
		CategoryID:  *req.CategoryID,
		Status:      *req.Status,
		Description: req.Description,
	}
}

func decodeCreateCategory(w http.ResponseWriter, r *http.Request) (CreateCategoryCommand, error) {
	var req createCategoryReq
	if err := decodeJSON(w, r, &req); err != nil {
		return CreateCategoryCommand{}, err
	}
	if err := validateStruct(req); err != nil {
		return CreateCategoryCommand{}, err
	}
	return req.command(), nil
}

func decodeCreateProduct(w http.ResponseWriter, r *http.Request) (CreateProductCommand, error) {
	var req createProductReq
	if err := decodeJSON(w, r, &req); err != nil {
		return CreateProductCommand{}, err
	}
	if err := validateStruct(req); err != nil {
		return CreateProductCommand{}, err
	}
	return req.command(), nil
}

func decodeUpdateCategory(w http.ResponseWriter, r *http.Request) (UpdateCategoryCommand, error) {
	var cmd UpdateCategoryCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		return UpdateCategoryCommand{}, err
	}

	details := rejectNull(nil, "name", cmd.Name)
	if len(details) > 0 {
		return UpdateCategoryCommand{}, invalid("validation failed", details...)
	}
	return cmd, nil
}

func decodeUpdateProduct(w http.ResponseWriter, r *http.Request) (UpdateProductCommand, error) {
	var cmd UpdateProductCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		return UpdateProductCommand{}, err
	}

	var details []FieldError
	details = rejectNull(details, "name", cmd.Name)
	details = rejectNull(details, "sku", cmd.SKU)
	details = rejectNull(details, "stock", cmd.Stock)
	details = rejectNull(details, "price", cmd.Price)
	details = rejectNull(details, "category_id", cmd.CategoryID)
	details = rejectNull(details, "status", cmd.Status)

	if cmd.Status.Set && !cmd.Status.Null {
		if err := validate.Var(string(cmd.Status.Value), "product_status"); err != nil {
			details = append(details, FieldError{Field: "status", Rule: "product_status"})
		}
	}

	if len(details) > 0 {
		return UpdateProductCommand{}, invalid("validation failed", details...)
	}
	return cmd, nil
}

// rejectNull flags fields that may be omitted from an update but not cleared.
func rejectNull[T any](details []FieldError, field string, o Optional[T]) []FieldError {
	if o.Set && o.Null {
		return append(details, FieldError{Field: field, Rule: "not_null"})
	}
	return details
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return invalid("validation failed", FieldError{Rule: "invalid", Detail: err.Error()})
	}

	details := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return invalid("validation failed", details...)
}

// decodeJSON reads exactly one JSON object into dst. Unknown keys are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return invalid("bad json", FieldError{Rule: "single_object", Detail: "extra data after json object"})
	}

	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		return invalid("bad json", FieldError{Rule: "object", Detail: "body must be a json object"})
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, io.EOF):
		return invalid("bad json", FieldError{Rule: "required", Detail: "empty body"})
	case errors.As(err, &maxErr):
		return &requestError{status: http.StatusRequestEntityTooLarge, msg: "body too large"}
	case errors.As(err, &syntaxErr):
		return invalid("bad json", FieldError{Rule: "syntax", Detail: syntaxErr.Error()})
	case errors.As(err, &typeErr):
		return invalid("validation failed", FieldError{
			Field:  typeErr.Field,
			Rule:   "type",
			Detail: "expected " + typeErr.Type.String(),
		})
	default:
		return invalid("bad json", FieldError{Rule: "syntax", Detail: err.Error()})
	}
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("invalid id", FieldError{Field: "id", Rule: "int", Detail: raw})
	}
	return id, nil
}
