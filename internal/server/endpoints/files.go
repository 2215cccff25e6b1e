package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/internal/svcctx"
)

// FilesResponse lists stored contract identifiers.
type FilesResponse struct {
	Files []string `json:"files"`
}

// FilesEndpoint handles GET /files.
type FilesEndpoint struct{}

var _ api.Endpoint = (*FilesEndpoint)(nil)

func (e *FilesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/files", e.handler
}

func (e *FilesEndpoint) RequiresInit() bool { return true }

func (e *FilesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	service := svcctx.ContractsFrom(r.Context())
	if service == nil {
		writeError(w, http.StatusServiceUnavailable, "contract service not initialized")
		return
	}

	docs, err := service.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list documents: %v", err))
		return
	}

	resp := FilesResponse{Files: make([]string, 0, len(docs))}
	for _, doc := range docs {
		resp.Files = append(resp.Files, doc.ID)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *FilesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List uploaded contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp FilesResponse
			if err := client.Get(cmd.Context(), "/files", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
