package assetvault

import (
	"net/url"
	"strings"
)

// BuildAssetIndex maps each relative file path to its public fetch URL under
// the static-serving endpoint. Keys are the paths with the final extension
// stripped; values keep the extension so the URLs resolve to real files, with
// each path segment percent-encoded so names with spaces stay valid URLs.
// If two files normalize to the same key, the last one wins.
func BuildAssetIndex(baseURL, clientName string, files []string) AssetIndex {
	base := strings.TrimSuffix(baseURL, "/")

	index := make(AssetIndex, len(files))
	for _, rel := range files {
		index[StripExtension(rel)] = base + "/assets/" + url.PathEscape(clientName) + "/" + escapePath(rel)
	}

	return index
}

// StripExtension removes text after the last dot of the final path segment.
// A leading dot is not an extension separator, so a dotfile like ".env"
// keeps its full name.
func StripExtension(rel string) string {
	dot := strings.LastIndexByte(rel, '.')
	if dot > strings.LastIndexByte(rel, '/')+1 {
		return rel[:dot]
	}
	return rel
}

// escapePath percent-encodes each segment of a slash-separated path, keeping
// the separators intact.
func escapePath(rel string) string {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
