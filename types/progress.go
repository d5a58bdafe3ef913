package types

// Progress is one observation of scan progress, recomputed after every
// completed extraction task. ETASeconds is nil while the throughput is
// still zero.
type Progress struct {
	Processed  int      `json:"processed"`
	Total      int      `json:"total"`
	Errors     int      `json:"errors"`
	Elapsed    float64  `json:"elapsedSeconds"`
	Rate       float64  `json:"rate"`
	ETASeconds *float64 `json:"etaSeconds,omitempty"`
}
