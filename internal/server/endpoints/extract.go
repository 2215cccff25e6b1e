package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/internal/contracts"
	"github.com/vclens/vclens/internal/normalize"
	"github.com/vclens/vclens/internal/store"
	"github.com/vclens/vclens/internal/svcctx"
)

// ExtractResult is the outcome for one uploaded file.
type ExtractResult struct {
	FileName        string            `json:"file_name"`
	ContractID      string            `json:"contract_id,omitempty"`
	ContractDetails normalize.Details `json:"contract_details,omitempty"`
	Error           string            `json:"error,omitempty"`
}

// ExtractResponse is the response for POST /extract.
type ExtractResponse struct {
	Results []ExtractResult `json:"results"`
}

// ExtractEndpoint handles POST /extract with multipart file upload.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form with 100MB max memory
	const maxMemory = 100 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	// Validate all files before touching the store so a bad batch is
	// rejected whole.
	for _, fh := range files {
		if _, err := store.KindOf(fh.Filename); err != nil {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("unsupported file type: %s (only PDF and DOCX are accepted)", fh.Filename))
			return
		}
	}

	service := svcctx.ContractsFrom(r.Context())
	if service == nil {
		writeError(w, http.StatusServiceUnavailable, "contract service not initialized")
		return
	}

	resp := ExtractResponse{Results: make([]ExtractResult, 0, len(files))}
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
			return
		}
		result, err := service.Extract(r.Context(), fh.Filename, src)
		src.Close()

		if err != nil {
			if errors.Is(err, contracts.ErrEmptyText) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			var gwErr *contracts.GatewayError
			if errors.As(err, &gwErr) {
				// One failed gateway call doesn't sink the batch.
				resp.Results = append(resp.Results, ExtractResult{
					FileName: fh.Filename,
					Error:    gwErr.Error(),
				})
				continue
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp.Results = append(resp.Results, ExtractResult{
			FileName:        result.Document.FileName,
			ContractID:      result.Document.ID,
			ContractDetails: result.Details,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file> [file...]",
		Short: "Upload contracts and extract their details",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			if err := client.PostFiles(cmd.Context(), "/extract", "files", args, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
