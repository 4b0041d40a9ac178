package renderer

// qualityDirs maps a render quality flag to the directory the renderer
// writes videos into.
var qualityDirs = map[string]string{
	"l": "480p15",
	"m": "720p30",
	"h": "1080p60",
	"p": "1440p60",
	"k": "2160p60",
}

const DefaultQuality = "m"

// QualityDir returns the output directory for quality, falling back to the
// default quality for unknown flags.
func QualityDir(quality string) (string, string) {
	if dir, ok := qualityDirs[quality]; ok {
		return quality, dir
	}
	return DefaultQuality, qualityDirs[DefaultQuality]
}
