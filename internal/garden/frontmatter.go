package garden

import (
	"strings"

	"gopkg.in/yaml.v3"

	gerrors "github.com/Chemchu/guslee/internal/errors"
)

const frontMatterFence = "---"

// ParseDocument splits raw file text into front matter and body and
// returns the constructed document. filePath must be relative to the
// content root; fileName is its leaf name.
func ParseDocument(fileName, filePath, raw string) (*Document, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName: fileName,
		FilePath: filePath,
		Metadata: meta,
		Content:  body,
	}, nil
}

// splitFrontMatter separates the YAML front matter block from the body.
// The block must start on the first line between two "---" fences. A file
// without a front matter block is valid; its metadata is empty and the
// whole text is the body.
func splitFrontMatter(raw string) (Metadata, string, error) {
	var meta Metadata

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterFence+"\n") {
		return meta, normalized, nil
	}

	// The closing fence must occupy a whole line; a line that merely
	// starts with "---" (a thematic break, say) does not close the block.
	rest := normalized[len(frontMatterFence)+1:]
	var block, body string
	if end := strings.Index(rest, "\n"+frontMatterFence+"\n"); end >= 0 {
		block = rest[:end]
		body = rest[end+len(frontMatterFence)+2:]
	} else if strings.HasSuffix(rest, "\n"+frontMatterFence) {
		block = rest[:len(rest)-len(frontMatterFence)-1]
	} else {
		return meta, "", gerrors.New(gerrors.ErrCodeFrontMatter,
			"front matter fence is not closed", nil)
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return meta, "", gerrors.New(gerrors.ErrCodeFrontMatter,
			"front matter is not valid YAML", err)
	}

	return meta, body, nil
}
