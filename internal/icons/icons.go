// Package icons provides the glyphs used by the player bar and result list,
// in nerd-font, unicode and plain variants.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Song       string
	Play       string
	Pause      string
	Loading    string
	Failed     string
	Preview    string
	Volume     string
	VolumeMute string
	Favorite   string
}

var (
	nerdIcons = Icons{
		Song:       "\uf001 ",    // nf-fa-music
		Play:       "\uf04b",     // nf-fa-play
		Pause:      "\uf04c",     // nf-fa-pause
		Loading:    "\uf110",     // nf-fa-spinner
		Failed:     "\uf071",     // nf-fa-warning
		Preview:    "\U000f040a", // nf-md-play_circle
		Volume:     "\U000f057e", // nf-md-volume_high
		VolumeMute: "\U000f0581", // nf-md-volume_off
		Favorite:   "\U000f02d1", // nf-md-heart
	}

	unicodeIcons = Icons{
		Song:       "🎵 ",
		Play:       "▶",
		Pause:      "⏸",
		Loading:    "…",
		Failed:     "⚠",
		Preview:    "◔",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Favorite:   "♥",
	}

	noneIcons = Icons{
		Song:       "",
		Play:       ">",
		Pause:      "||",
		Loading:    "...",
		Failed:     "!",
		Preview:    "[preview]",
		Volume:     "vol",
		VolumeMute: "mute",
		Favorite:   "*",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// FormatSong formats a song title with the appropriate icon.
func FormatSong(title string) string {
	return current.Song + title
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Loading returns the indicator shown while a source is being resolved.
func Loading() string {
	return current.Loading
}

// Failed returns the indicator shown for a failed session.
func Failed() string {
	return current.Failed
}

// Preview returns the badge marking playback of the bundled preview clip.
func Preview() string {
	return current.Preview
}

// Volume returns the volume icon, or the mute icon at zero volume.
func Volume(level float64) string {
	if level <= 0 {
		return current.VolumeMute
	}
	return current.Volume
}

// Favorite returns the favorite/heart icon.
func Favorite() string {
	return current.Favorite
}
