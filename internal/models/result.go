// ABOUTME: Retrieval result types returned by the engine
// ABOUTME: Each result carries the full score breakdown for the caller
package models

// Steering methods reported on a retrieval response.
const (
	SteeringMethodNone    = "none"
	SteeringMethodLearned = "learned"
)

// RetrievalResult is one ranked passage with its score breakdown.
type RetrievalResult struct {
	Text           string        `json:"text"`
	Metadata       ChunkMetadata `json:"metadata"`
	BaseSimilarity float64       `json:"base_similarity"`
	DialAlignment  float64       `json:"dial_alignment"`
	BlendedScore   float64       `json:"blended_score"`
	DocDials       DialVector    `json:"doc_dials"`
}

// RetrievalResponse is the full answer to one retrieve call.
type RetrievalResponse struct {
	Results         []RetrievalResult `json:"results"`
	TotalCandidates int               `json:"total_candidates"`
	RetrievalTimeMs float64           `json:"retrieval_time_ms"`
	SteeringMethod  string            `json:"steering_method"`
}
