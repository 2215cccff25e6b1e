package endpoints

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/internal/llmcall"
	"github.com/vclens/vclens/internal/svcctx"
)

// CallsResponse lists recorded model calls.
type CallsResponse struct {
	Calls []*llmcall.Call `json:"calls"`
	Total int             `json:"total"`
}

// ListCallsEndpoint handles GET /calls.
type ListCallsEndpoint struct{}

var _ api.Endpoint = (*ListCallsEndpoint)(nil)

func (e *ListCallsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/calls", e.handler
}

func (e *ListCallsEndpoint) RequiresInit() bool { return true }

func (e *ListCallsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	calls := svcctx.CallsFrom(r.Context())
	if calls == nil {
		writeError(w, http.StatusServiceUnavailable, "call log not initialized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list := calls.List(limit)
	writeJSON(w, http.StatusOK, CallsResponse{Calls: list, Total: calls.Len()})
}

func (e *ListCallsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List recorded model calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp CallsResponse
			path := "/calls"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of calls to return")
	return cmd
}

// GetCallEndpoint handles GET /calls/{id}.
type GetCallEndpoint struct{}

var _ api.Endpoint = (*GetCallEndpoint)(nil)

func (e *GetCallEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/calls/{id}", e.handler
}

func (e *GetCallEndpoint) RequiresInit() bool { return true }

func (e *GetCallEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	calls := svcctx.CallsFrom(r.Context())
	if calls == nil {
		writeError(w, http.StatusServiceUnavailable, "call log not initialized")
		return
	}

	call, err := calls.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, call)
}

func (e *GetCallEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "call <id>",
		Short: "Get one recorded model call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var call llmcall.Call
			if err := client.Get(cmd.Context(), "/calls/"+args[0], &call); err != nil {
				return err
			}
			return api.Output(call)
		},
	}
}
