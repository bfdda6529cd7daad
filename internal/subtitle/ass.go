// Package subtitle renders caption timelines into ASS documents with
// word-level highlight timing, ready for ffmpeg's subtitles filter or
// any standalone player.
package subtitle

import (
	"fmt"
	"strings"

	"github.com/ivlev/scene2video/internal/captions"
)

// Generator builds ASS documents sized for a given output resolution.
type Generator struct {
	PlayResX int
	PlayResY int
}

func NewGenerator(width, height int) *Generator {
	return &Generator{PlayResX: width, PlayResY: height}
}

// WordTrack renders one Dialogue event per word. For the word active at
// its start time, the text shows spoken words plainly, the active word
// bold + highlighted + scaled to 110%, and upcoming words of the batch
// dimmed through the alpha channel. Events tile the track: each event
// runs to the next word's start, the last to the final word's end.
//
// An empty word list produces an empty document, not a header-only one.
func (g *Generator) WordTrack(words []captions.WordTimestamp, style captions.Style) string {
	if len(words) == 0 {
		return ""
	}

	batches := captions.BuildBatches(words, style.WordsPerBatch)

	var b strings.Builder
	g.writeHeader(&b, style)

	for i, w := range words {
		end := w.End
		if i+1 < len(words) {
			end = words[i+1].Start
		}

		batch := captions.BatchFor(batches, i)
		text := g.renderBatchText(batch, i, style)

		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Caption,,0,0,0,,%s\n",
			FormatTime(w.Start), FormatTime(end), text)
	}

	return b.String()
}

// SceneLine is the whole-line fallback for callers that only want
// scene-level captions: a single plain Dialogue spanning the full scene.
func (g *Generator) SceneLine(text string, duration float64, style captions.Style) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	g.writeHeader(&b, style)
	fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Caption,,0,0,0,,%s\n",
		FormatTime(0), FormatTime(duration), escapeText(style.ApplyTransform(text)))
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, style captions.Style) {
	bold := 0
	if style.FontWeight == "bold" {
		bold = -1
	}

	fmt.Fprintf(b, "[Script Info]\n")
	fmt.Fprintf(b, "ScriptType: v4.00+\n")
	fmt.Fprintf(b, "PlayResX: %d\n", g.PlayResX)
	fmt.Fprintf(b, "PlayResY: %d\n", g.PlayResY)
	fmt.Fprintf(b, "WrapStyle: 2\n")
	fmt.Fprintf(b, "\n[V4+ Styles]\n")
	fmt.Fprintf(b, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(b, "Style: Caption,%s,%d,%s,%s,&H00000000,&H00000000,%d,0,0,0,100,100,0,0,1,2,1,2,30,30,%d,1\n",
		style.FontFamily, style.FontSize,
		Color(style.InactiveColor), Color(style.ActiveColor),
		bold, style.PositionFromBottom)
	fmt.Fprintf(b, "\n[Events]\n")
	fmt.Fprintf(b, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
}

// renderBatchText lays per-word override tags around the active word.
func (g *Generator) renderBatchText(batch captions.Batch, activeIndex int, style captions.Style) string {
	dimAlpha := AlphaFromOpacity(style.DimmedOpacity)

	parts := make([]string, 0, len(batch.Words))
	for j, w := range batch.Words {
		word := escapeText(style.ApplyTransform(w.Word))
		idx := batch.StartIndex + j

		switch {
		case idx == activeIndex:
			parts = append(parts, fmt.Sprintf("{\\b1\\c%s&\\fscx110\\fscy110}%s{\\r}", Color(style.ActiveColor), word))
		case idx > activeIndex:
			parts = append(parts, fmt.Sprintf("{\\alpha%s}%s{\\r}", dimAlpha, word))
		default:
			parts = append(parts, word)
		}
	}
	return strings.Join(parts, " ")
}

// escapeText keeps user words from being parsed as override blocks.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", "\\N")
	return s
}
