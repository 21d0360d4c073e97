package legacy

import (
	"errors"
	"fmt"
)

var errInvalidJSON = errors.New("response is not valid JSON")

func errMissing(what string) error { return fmt.Errorf("%s is required", what) }
