package moodapi

// Song is one recommendation. Title is the key within a result set.
type Song struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Image        string `json:"image,omitempty"`
	PreviewAudio string `json:"preview_audio,omitempty"`
	Link         string `json:"link,omitempty"`
}

// Emotion is one scored label of the classifier.
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Prediction is the response of /predict.
type Prediction struct {
	Mood            string    `json:"mood"`
	Confidence      float64   `json:"confidence"`
	Emotions        []Emotion `json:"emotions,omitempty"`
	Recommendations []Song    `json:"recommendations"`
	Genres          []string  `json:"genres,omitempty"`
	PlaylistLink    string    `json:"playlist_link,omitempty"`
}

// AudioResolution is the response of /get_youtube_audio.
// The service reports extraction failures in Error with a 200 status.
type AudioResolution struct {
	AudioURL string  `json:"audio_url"`
	VideoID  string  `json:"video_id,omitempty"`
	Title    string  `json:"title,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Health is the response of the service root.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Models accepted by /predict.
const (
	ModelSimple   = "simple"
	ModelAdvanced = "advanced"
)

type predictRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type songRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type errorBody struct {
	Detail string `json:"detail"`
}
