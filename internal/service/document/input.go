package document

import (
	"strings"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

const (
	MaxNameLength = 200
	DefaultLimit  = 50
	MaxLimit      = 200
)

// CreateDocumentInput holds the parameters for creating a document. When
// Template is set the document is built from that catalogue entry and
// Width/Height are ignored; Name overrides the template's name if given.
type CreateDocumentInput struct {
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Fill     string  `json:"fill"`
	Template string  `json:"template"`
}

// Validate checks all fields and collects all errors.
func (i CreateDocumentInput) Validate() error {
	var errs []domain.FieldError

	if len(strings.TrimSpace(i.Name)) > MaxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.Width < 0 {
		errs = append(errs, domain.FieldError{Field: "width", Message: "must be >= 0"})
	}
	if i.Height < 0 {
		errs = append(errs, domain.FieldError{Field: "height", Message: "must be >= 0"})
	}
	if i.Fill != "" && !domain.IsValidColor(i.Fill) {
		errs = append(errs, domain.FieldError{Field: "fill", Message: "must be a hex colour"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing documents.
type ListInput struct {
	Search *string
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ListInput) filter() domain.DocumentFilter {
	f := domain.DocumentFilter{Limit: i.Limit, Offset: i.Offset}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if i.Search != nil {
		if q := strings.TrimSpace(*i.Search); q != "" {
			f.Search = &q
		}
	}
	return f
}
