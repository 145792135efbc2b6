package audio

import (
	"fmt"

	"github.com/minbarapp/minbar/pkg/errcodes"
)

// Chapter numbers are surah numbers: 1 through 114 inclusive.
const (
	MinChapter = 1
	MaxChapter = 114
)

// PublicUploadPrefix is the public URL path uploads are served under.
const PublicUploadPrefix = "/audio/uploads"

// alafasyAliases is the set of reciter identifiers known to map to the
// Alafasy archival mirror's naming convention.
var alafasyAliases = map[string]struct{}{
	"afasy":    {},
	"mishary":  {},
	"al-afasy": {},
}

const (
	primaryMirrorTemplate   = "https://server8.mp3quran.net/afs/0%s.mp3"
	secondaryMirrorTemplate = "https://download.quranicaudio.com/quran/mishaari_raashid_al_3afaasee/%s.mp3"
	alafasyArchiveTemplate  = "https://ia800302.us.archive.org/11/items/Alafasy_Quran/%s.mp3"
	genericArchiveTemplate  = "https://archive.org/download/quran_%s/%s.mp3"
	tertiaryMirrorTemplate  = "https://everyayah.com/data/Alafasy_128kbps/%s.mp3"
)

// ValidateChapter checks the surah number is within 1-114.
func ValidateChapter(chapter int) error {
	if chapter < MinChapter || chapter > MaxChapter {
		return errcodes.ValidationError(fmt.Sprintf("%q must be between %d and %d", "surah", MinChapter, MaxChapter))
	}
	return nil
}

// PadChapter renders a surah number as a fixed-width, zero-padded 3-digit
// decimal string, which every URL template expects.
func PadChapter(chapter int) string {
	return fmt.Sprintf("%03d", chapter)
}

// UploadFilename returns the deterministic filename for an uploaded
// recitation of the given surah by the given reciter.
func UploadFilename(reciterID string, chapter int) string {
	return fmt.Sprintf("surah_%s_%s.mp3", PadChapter(chapter), reciterID)
}

// LocalUploadPath returns the public path of a locally uploaded recitation.
func LocalUploadPath(reciterID string, chapter int) string {
	return PublicUploadPrefix + "/" + UploadFilename(reciterID, chapter)
}

// BuildCandidateList produces the ordered list of playback URL candidates for
// a surah: the local upload first, then public mirrors in fixed priority
// order. The function is pure; it performs no I/O and the same inputs always
// produce the same list. Any reciter ID yields a full list, even ones outside
// the Alafasy alias set.
func BuildCandidateList(reciterID string, chapter int) ([]string, error) {
	if err := ValidateChapter(chapter); err != nil {
		return nil, err
	}

	padded := PadChapter(chapter)

	archival := fmt.Sprintf(genericArchiveTemplate, reciterID, padded)
	if _, ok := alafasyAliases[reciterID]; ok {
		archival = fmt.Sprintf(alafasyArchiveTemplate, padded)
	}

	return []string{
		LocalUploadPath(reciterID, chapter),
		fmt.Sprintf(primaryMirrorTemplate, padded),
		fmt.Sprintf(secondaryMirrorTemplate, padded),
		archival,
		fmt.Sprintf(tertiaryMirrorTemplate, padded),
	}, nil
}

// AbsoluteCandidates rewrites relative candidates (the local upload path)
// against the given base URL so they can be probed over HTTP. Absolute
// candidates are passed through unchanged.
func AbsoluteCandidates(candidates []string, baseURL string) []string {
	out := make([]string, len(candidates))
	for i, candidate := range candidates {
		if len(candidate) > 0 && candidate[0] == '/' {
			out[i] = baseURL + candidate
		} else {
			out[i] = candidate
		}
	}
	return out
}
