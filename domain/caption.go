package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CaptionFrameRate is the frame rate the rendering engine composes at, used
// to convert subtitle timestamps into frame indices.
const CaptionFrameRate = 30

// Caption is one rendered subtitle cue, derived on demand from the stored
// captions artifact and never persisted on its own.
type Caption struct {
	StartFrame int
	EndFrame   int
	Text       string
}

var captionTimingRegexp = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3}) --> (\d{2}):(\d{2}):(\d{2})[,.](\d{3})$`)

// ParseCaptions parses SubRip-style markup into frame-indexed cues. Cue
// numbers are ignored, multi-line cue text is joined with a space, and
// malformed blocks are an error rather than silently skipped.
func ParseCaptions(markup string) ([]Caption, error) {
	captions := make([]Caption, 0)
	blocks := strings.Split(strings.ReplaceAll(markup, "\r\n", "\n"), "\n\n")

	for _, block := range blocks {
		lines := make([]string, 0)
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		if len(lines) == 0 {
			continue
		}

		timingIdx := 0
		if !captionTimingRegexp.MatchString(lines[0]) && len(lines) > 1 {
			timingIdx = 1
		}
		if timingIdx >= len(lines) || !captionTimingRegexp.MatchString(lines[timingIdx]) {
			return nil, fmt.Errorf("caption block missing timing line: %q", block)
		}
		if len(lines) <= timingIdx+1 {
			return nil, fmt.Errorf("caption block missing text: %q", block)
		}

		match := captionTimingRegexp.FindStringSubmatch(lines[timingIdx])
		start := timestampToFrame(match[1], match[2], match[3], match[4])
		end := timestampToFrame(match[5], match[6], match[7], match[8])

		captions = append(captions, Caption{
			StartFrame: start,
			EndFrame:   end,
			Text:       strings.Join(lines[timingIdx+1:], " "),
		})
	}

	return captions, nil
}

func timestampToFrame(hours, minutes, seconds, millis string) int {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	totalMillis := ((h*60+m)*60+s)*1000 + ms
	return totalMillis * CaptionFrameRate / 1000
}
