package processor

import (
	"context"
	"os"
)

// removeArtifact deletes a derived file, logging when an existing file
// cannot be removed.
func (p *implProcessor) removeArtifact(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to remove artifact %s: %v", path, err)
		}
		return
	}
	p.logger.Debug(ctx, "Removed artifact: %s", path)
}
