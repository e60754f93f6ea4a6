package verification

type SubmitRequest struct {
	ProfileID   int64  `json:"profile_id" validate:"required,gt=0"`
	PhotoURL    string `json:"photo_url" validate:"required,url"`
	DocumentURL string `json:"document_url" validate:"required,url"`
	Notes       string `json:"notes" validate:"max=500"`
}
