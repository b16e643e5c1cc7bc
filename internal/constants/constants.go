// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "8080"
	DefaultDBPath       = "icho.db"
	DefaultTagWorkers   = 2
	DefaultHTTPTimeout  = 10 * time.Second
	CoverArtHTTPTimeout = 15 * time.Second
	DefaultRetryCount   = 3
	DefaultRetryBase    = 1 * time.Second
)

// Remote metadata services
const (
	DefaultMusicBrainzURL = "https://musicbrainz.org/ws/2"
	DefaultCoverArtURL    = "https://coverartarchive.org"

	// UserAgent identifies us to MusicBrainz and the Cover Art Archive on
	// every request, per their API etiquette.
	UserAgent = "icho/1.0 (https://github.com/cesargomez89/icho)"

	// MinRequestInterval keeps us under the MusicBrainz rate limit of
	// roughly one request per second.
	MinRequestInterval = 1050 * time.Millisecond

	CoverArtPreferredSize = 500
)

// Playlist registry limits
const (
	MaxRecentPlaylists = 5
	MaxPinnedPlaylists = 10
)

// Albums without an album tag are grouped under this bucket.
const UnknownAlbum = "Unknown Album"

// File Extensions
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
)

// AudioExtensions lists the file extensions picked up by a library scan.
var AudioExtensions = map[string]bool{
	ExtFLAC: true,
	ExtMP3:  true,
	ExtM4A:  true,
	ExtMP4:  true,
	ExtOGG:  true,
	ExtWAV:  true,
}

// MIME Types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Volume bounds accepted by the playback backend.
const (
	MinVolume = 0
	MaxVolume = 100
)

// UI/UX
const (
	MaxJobHistoryItems = 50
	EventBufferSize    = 16
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
