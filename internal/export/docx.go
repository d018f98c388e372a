package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// Export writes the transcription to <dir>/<name>_transcript.docx with
// the source name as a bold title and one paragraph per speaker block,
// speaker names in bold. Blocks with no text are left out, matching
// the plain-text transcript.
func (e *implExporter) Export(ctx context.Context, tr *transcript.Transcription, dir string) (string, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), tr.Name, true, titleSize)
	doc.AddParagraph("")

	for _, blk := range tr.Blocks() {
		if blk.Text == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(tr.SpeakerName(blk.Speaker) + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
		p.AddText(blk.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, tr.Name+"_transcript.docx")
	if err := doc.SaveTo(path); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	e.logger.Info(ctx, "Exported DOCX transcript: %s", path)
	return path, nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
