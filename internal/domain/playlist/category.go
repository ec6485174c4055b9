package playlist

import "strings"

var genreCategories = map[string]string{
	"pop":           "pop",
	"rock":          "rock",
	"indie":         "indie_alt",
	"indie rock":    "indie_alt",
	"indie folk":    "indie_alt",
	"alternative":   "indie_alt",
	"electronic":    "edm_dance",
	"jazz":          "jazz",
	"folk":          "folk",
	"metal":         "metal",
	"hip-hop":       "hiphop",
	"hip hop":       "hiphop",
	"rap":           "hiphop",
	"r&b":           "rnb",
	"country":       "country",
	"classical":     "classical",
	"blues":         "blues",
	"reggae":        "reggae",
	"punk":          "punk",
	"funk":          "funk",
	"soul":          "soul",
	"chill":         "chill",
	"lo-fi":         "chill",
	"lo-fi hip hop": "chill",
	"ambient":       "chill",
	"acoustic":      "acoustic",
	"workout":       "workout",
	"party":         "party",
}

// CategoryFor maps a genre to the coarser catalog category used by the browse fallback.
func CategoryFor(genre string) (string, bool) {
	id, ok := genreCategories[strings.ToLower(genre)]
	return id, ok
}
