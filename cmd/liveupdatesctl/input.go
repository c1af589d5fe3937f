package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/okian/liveupdates/internal/adapters/http/api"
	"github.com/spf13/cobra"
)

// readEvent decodes a push payload from the named file, or stdin when the
// name is "-" or missing.
func readEvent(cmd *cobra.Command, args []string) (api.EventRequest, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return api.EventRequest{}, fmt.Errorf("open event file: %w", err)
		}
		defer f.Close()
		r = f
		name = args[0]
	}

	var req api.EventRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return api.EventRequest{}, fmt.Errorf("decode event from %s: %w", name, err)
	}
	return req, nil
}

func withID(req api.EventRequest) api.EventRequest {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return req
}
