package response_models

type ReportEmailedResponse struct {
	Filename string `json:"filename"`
	To       string `json:"to"`
}
