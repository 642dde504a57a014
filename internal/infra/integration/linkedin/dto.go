package linkedin

type sendInviteRequest struct {
	ProfileURL string `json:"profile_url"`
	Message    string `json:"message"`
}

type sendMessageRequest struct {
	ProfileURL string `json:"profile_url"`
	Body       string `json:"body"`
}

type sendResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
