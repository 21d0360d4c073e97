package types

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Validation
// ------------------------------

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ErrEmptyStats is returned for a heartbeat without any count.
var ErrEmptyStats = errors.New("stats update needs servers or shards")

// ValidateIDPresent checks that a path identifier was supplied.
func ValidateIDPresent(id, name string) error {
	if err := validatorInstance().Var(id, "required,excludesall=/?#"); err != nil {
		return fmt.Errorf("%s: %q is not a valid identifier", name, id)
	}
	return nil
}

// ValidateStats checks a heartbeat body before it is sent.
func ValidateStats(s StatsUpdate) error {
	if s.Servers == nil && s.Shards == nil {
		return ErrEmptyStats
	}
	if err := validatorInstance().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("stats update: %s must be >= 0", verrs[0].Field())
		}
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}

// ValidateWidgetType checks the widget selector.
func ValidateWidgetType(w WidgetType) error {
	if err := validatorInstance().Var(string(w), "oneof=votes servers status"); err != nil {
		return fmt.Errorf("widget type %q is not one of votes, servers, status", w)
	}
	return nil
}
