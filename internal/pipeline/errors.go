package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/vnquant/portfolio-daily/internal/external/simplize"
	"github.com/vnquant/portfolio-daily/pkg/httputil"
)

// errKind maps a fetch failure onto a short machine-readable kind for
// the row's error tag.
func errKind(err error) string {
	var (
		statusErr *httputil.StatusError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		netErr    net.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("status_%d", statusErr.Code)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return "decode"
	case errors.Is(err, simplize.ErrMissingPrice):
		return "missing_field"
	}
	return "transport"
}
