package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/response"
)

// Echo responds with a dump of the request it received.
func Echo(_ context.Context, fc *funcctx.Context) (*response.Envelope, error) {
	fc.Log("echo handler invoked")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	req := fc.Req

	sections := []struct {
		title string
		value any
	}{
		{"Headers", req.Headers},
		{"Query", req.Query},
		{"Body", req.Body},
		{"Env", req.Env},
	}

	lines := make([]string, 0, len(sections)+2)
	for _, s := range sections {
		pretty, err := beautify(s.value)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%s: %s", s.title, pretty))
	}

	lines = append(lines,
		fmt.Sprintf("CWD: %s", cwd),
		fmt.Sprintf("Go: %s", runtime.Version()),
	)

	return response.FromParts(http.StatusOK, map[string]string{}, strings.Join(lines, "\n")), nil
}

func beautify(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
