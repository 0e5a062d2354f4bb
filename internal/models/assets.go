package models

// GeneratedAssets is the full bundle produced by one generation call.
// ImageURL is the only field allowed to be empty on partial failure; every
// other field is expected non-empty on success.
type GeneratedAssets struct {
	TextPost        string   `json:"text_post"`
	ImagePrompt     string   `json:"image_prompt"`
	VideoScript     string   `json:"video_script"`
	XThread         []string `json:"x_thread,omitempty"`
	SubstackEssay   string   `json:"substack_essay,omitempty"`
	AudioScript     string   `json:"audio_script,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	ThumbnailPrompt string   `json:"thumbnail_prompt,omitempty"`
	VisualConcept   string   `json:"visual_concept,omitempty"`
	RAGConcepts     []string `json:"rag_concepts,omitempty"`
}
