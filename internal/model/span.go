package model

// Modality identifies the medium a text span was extracted from
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityPDF   Modality = "pdf"
	ModalityImage Modality = "image"
	ModalityVideo Modality = "video"
	ModalityAudio Modality = "audio"
)

// TextSpan locates a passage inside a supporting document
type TextSpan struct {
	DocID    string    `json:"doc_id"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
	Text     string    `json:"text"`
	Page     *int      `json:"page,omitempty"`
	BBox     []float64 `json:"bbox,omitempty"` // x0, y0, x1, y1 when page-positioned
	Modality Modality  `json:"modality,omitempty"`
}
