package types

// AudioExtensions is the default set of lowercase file extensions treated
// as audio during discovery.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".mp4":  true,
	".aac":  true,
	".ogg":  true,
	".wav":  true,
	".wma":  true,
}

// FileRecord is the per-file result of metadata extraction. A record is
// either metadata-shaped (tag fields, duration, bitrate) or error-shaped
// (Path + Error), never both. Files no parser recognized produce no record
// at all: they travel through the scan as nil entries.
//
// Multi-valued tag fields are joined with ";" before storage; genre
// normalization re-splits on the common separators downstream.
type FileRecord struct {
	Path     string  `json:"path"`
	Title    string  `json:"title,omitempty"`
	Artist   string  `json:"artist,omitempty"`
	Album    string  `json:"album,omitempty"`
	Genre    string  `json:"genre,omitempty"`
	Date     string  `json:"date,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Bitrate  int     `json:"bitrate,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// NewErrorRecord builds an error-shaped record for a file that could not
// be extracted.
func NewErrorRecord(path, message string) *FileRecord {
	return &FileRecord{Path: path, Error: message}
}

// IsError reports whether the record is error-shaped.
func (r *FileRecord) IsError() bool {
	return r.Error != ""
}
