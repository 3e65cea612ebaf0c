package textutil

import "strings"

// fileNameReplacer drops characters that are unsafe in filenames on
// Windows, macOS or Linux.
var fileNameReplacer = strings.NewReplacer(
	"/", "",
	"\\", "",
	":", "",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName removes filesystem-unsafe characters from a filename
// component and trims surrounding whitespace. Control characters are removed
// as well.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
