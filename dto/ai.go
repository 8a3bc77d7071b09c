package dto

// SummarizeRequest asks for a summary of arbitrary text. The 50-character
// floor rejects short input before any external call is made.
type SummarizeRequest struct {
	Text      string `json:"text" binding:"required,min=50,max=10000"`
	MaxLength int    `json:"maxLength" binding:"omitempty,min=50,max=500"`
}

// SummarizeNoteRequest tunes summarization of a stored note. The body may be
// empty entirely; maxLength then defaults to 150.
type SummarizeNoteRequest struct {
	MaxLength int `json:"maxLength" binding:"omitempty,min=50,max=500"`
}

type GenerateTagsRequest struct {
	Text    string `json:"text" binding:"required,min=10,max=10000"`
	MaxTags int    `json:"maxTags" binding:"omitempty,min=1,max=10"`
}
