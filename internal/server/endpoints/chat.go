package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/internal/contracts"
	"github.com/vclens/vclens/internal/normalize"
	"github.com/vclens/vclens/internal/store"
	"github.com/vclens/vclens/internal/svcctx"
)

// ChatResult is one entry in a chat response.
type ChatResult struct {
	FileName        string            `json:"file_name"`
	ContractDetails normalize.Details `json:"contract_details"`
}

// ChatResponse is the response for POST /chat/{contract_id}.
type ChatResponse struct {
	Results []ChatResult `json:"results"`
}

type chatRequestBody struct {
	Message string `json:"message"`
}

// ChatEndpoint handles POST /chat/{contract_id}. It re-runs extraction
// for a stored contract with the user's question appended to the prompt.
type ChatEndpoint struct{}

var _ api.Endpoint = (*ChatEndpoint)(nil)

func (e *ChatEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/chat/{contract_id}", e.handler
}

func (e *ChatEndpoint) RequiresInit() bool { return true }

func (e *ChatEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("contract_id")

	// Message comes from the query string, or a JSON body as fallback.
	message := r.URL.Query().Get("message")
	if message == "" && r.Body != nil {
		var body chatRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			message = body.Message
		}
	}
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	service := svcctx.ContractsFrom(r.Context())
	if service == nil {
		writeError(w, http.StatusServiceUnavailable, "contract service not initialized")
		return
	}

	result, err := service.Chat(r.Context(), contractID, message)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "contract not found: "+contractID)
		case errors.Is(err, store.ErrUnsupportedKind):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, contracts.ErrEmptyText):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			var gwErr *contracts.GatewayError
			if errors.As(err, &gwErr) {
				writeError(w, http.StatusBadGateway, gwErr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Results: []ChatResult{{
		FileName:        result.Document.FileName,
		ContractDetails: result.Details,
	}}})
}

func (e *ChatEndpoint) Command(getServerURL func() string) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "chat <contract-id>",
		Short: "Ask a question about an uploaded contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ChatResponse
			path := "/chat/" + args[0]
			if err := client.Post(cmd.Context(), path, chatRequestBody{Message: message}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "question to ask about the contract")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
