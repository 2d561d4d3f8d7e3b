package youtube

import "regexp"

// validURL is the permissive shape of an acceptable YouTube link: optional
// scheme, optional www., youtube.com or youtu.be, then a non-empty path.
var validURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// idPatterns extract the video ID from the common YouTube URL forms.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
}

// ValidURL reports whether s looks like a YouTube video link.
func ValidURL(s string) bool {
	return validURL.MatchString(s)
}

// ExtractVideoID pulls the video ID out of a YouTube URL. A string that
// matches no known URL form is returned unchanged, so bare IDs pass through.
func ExtractVideoID(url string) string {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return url
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
